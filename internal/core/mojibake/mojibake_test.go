package mojibake

import (
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// garble reproduces the accident: UTF-8 bytes decoded with the wrong code page
func garble(t *testing.T, cm *charmap.Charmap, s string) string {
	t.Helper()
	out, err := cm.NewDecoder().String(s)
	if err != nil {
		t.Fatalf("garble: %v", err)
	}
	return out
}

func TestRepair_CodePages(t *testing.T) {
	const want = "Привіт, світ! Це тест."

	tests := []struct {
		name string
		cm   *charmap.Charmap
	}{
		{"windows-1251", charmap.Windows1251},
		{"koi8-r", charmap.KOI8R},
		{"cp866", charmap.CodePage866},
		{"latin-1", charmap.ISO8859_1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bad := garble(t, tc.cm, want)
			if bad == want {
				t.Fatal("garble did nothing")
			}
			if got := Repair(bad); got != want {
				t.Fatalf("Repair(%q) = %q, want %q", bad, got, want)
			}
		})
	}
}

func TestRepair_LeavesCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"empty", "", ""},
		{"ascii", "plain ascii text.", "plain ascii text."},
		{"ukrainian", "Зустріч відбудеться у м. Львів.", "Зустріч відбудеться у м. Львів."},
		{"marker but no fix", "Ціна 5€ за кг", "Ціна 5€ за кг"},
		{"nfc", "cafe\u0301", "caf\u00e9"},
		{"superscript unit", "Площа квартири 50 м².", "Площа квартири 50 м²."},
		{"symbols", "Ціна 5 € за м². Ті самі ± 2™.", "Ціна 5 € за м². Ті самі ± 2™."},
		{"short words", "Ої, Ті, Сі.", "Ої, Ті, Сі."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Repair(tc.in); got != tc.out {
				t.Fatalf("Repair(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestRepair_MixedTokens(t *testing.T) {
	in := "Новини: " + garble(t, charmap.Windows1251, "Привіт світ")
	if got, want := Repair(in), "Новини: Привіт світ"; got != want {
		t.Fatalf("Repair = %q, want %q", got, want)
	}
}

func TestRepair_OnlyGarbledTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"clean word beside garbled", "Вулиця Ої, буд. 5 — " + garble(t, charmap.Windows1251, "Привіт"), "Вулиця Ої, буд. 5 — Привіт"},
		{"unit beside garbled", "50 м² " + garble(t, charmap.Windows1251, "площа"), "50 м² площа"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Repair(tc.in); got != tc.out {
				t.Fatalf("Repair(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestRepair_Idempotent(t *testing.T) {
	bad := garble(t, charmap.Windows1251, "Всі раді.")
	once := Repair(bad)
	if twice := Repair(once); twice != once {
		t.Fatalf("not idempotent: %q then %q", once, twice)
	}
}

func TestNew_RestrictsPages(t *testing.T) {
	r := New(charmap.Windows1251)
	bad := garble(t, charmap.CodePage866, "Привіт")
	if got := r.Repair(bad); got != bad {
		t.Fatalf("cp1251-only repairer changed cp866 text: %q", got)
	}
	if r.Name() != "mojibake" {
		t.Fatalf("Name = %q", r.Name())
	}
}
