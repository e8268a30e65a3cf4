package segment

import (
	"reflect"
	"strings"
	"testing"

	"textprep/internal/core/locale"
	"textprep/internal/core/patterns"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"abbreviation", "Зустріч відбудеться у м. Львів. Всі раді.",
			[]string{"Зустріч відбудеться у м. Львів.", "Всі раді."}},
		{"decimal", "Ріст склав 15.5%. Це рекорд.",
			[]string{"Ріст склав 15.5%.", "Це рекорд."}},
		{"initials", "Про це заявив В.О. Зеленський. Він додав деталі.",
			[]string{"Про це заявив В.О. Зеленський.", "Він додав деталі."}},
		{"lowercase continuation", "done. end", []string{"done. end"}},
		{"empty", "", []string{}},
		{"blank", "   ", []string{}},
		{"no terminal", "Просто текст без крапки", []string{"Просто текст без крапки"}},
		{"question and bang", "Чому? Тому! Ось так.", []string{"Чому?", "Тому!", "Ось так."}},
		{"ellipsis", "Ну… Добре.", []string{"Ну…", "Добре."}},
		{"digit opener", "Рахунок такий. 3 голи.", []string{"Рахунок такий.", "3 голи."}},
		{"quote opener", `Він сказав. "Так" і все.`, []string{"Він сказав.", `"Так" і все.`}},
		{"abbrev uppercase", "Див. Додаток. Кінець.", []string{"Див. Додаток.", "Кінець."}},
		{"multi-dot abbrev", "Овочі, фрукти т.д. Інше.", []string{"Овочі, фрукти т.д. Інше."}},
		{"longer abbrev first", "У 1990-2000 рр. Україна росла.", []string{"У 1990-2000 рр. Україна росла."}},
		{"abbrev inside word ignored", "Це наш час. Далі.", []string{"Це наш час.", "Далі."}},
		{"version number", "Версія 1.2.3. Нова.", []string{"Версія 1.2.3.", "Нова."}},
		{"latin initial", "Автор J. Smith пише. Так.", []string{"Автор J. Smith пише.", "Так."}},
		{"stray sentinel", "А\x00Б. В.", []string{"АБ.", "В."}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Segment(tc.in)
			if got == nil {
				t.Fatal("Segment returned nil")
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Segment(%q)\n got %q\nwant %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSegment_Properties(t *testing.T) {
	inputs := []string{
		"Зустріч відбудеться у м. Львів. Всі раді.",
		"Про це заявив В.О. Зеленський. Він додав деталі. Ріст склав 15.5%.",
		"Чому? Тому! Ось так… А далі?",
		"одне речення",
	}
	for _, in := range inputs {
		got := Segment(in)
		for _, s := range got {
			if s == "" || s != strings.TrimSpace(s) {
				t.Fatalf("untrimmed or empty sentence %q from %q", s, in)
			}
			if strings.Contains(s, Sentinel) {
				t.Fatalf("sentinel leaked in %q", s)
			}
		}
		// single-spaced input is rebuilt exactly by joining with a space
		if joined := strings.Join(got, " "); joined != in {
			t.Fatalf("join = %q, want %q", joined, in)
		}
	}
}

func TestProtect(t *testing.T) {
	s := New(nil)
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		out  string
	}{
		{"abbrev", s.ProtectAbbreviations, "у м. Львів", "у м\x00 Львів"},
		{"abbrev case kept", s.ProtectAbbreviations, "ВУЛ. Січова", "ВУЛ\x00 Січова"},
		{"abbrev needs boundary", s.ProtectAbbreviations, "Будинок.", "Будинок."},
		{"abbrev two periods", s.ProtectAbbreviations, "т.п.", "т.п\x00"},
		{"decimal", ProtectDecimals, "15.5 і 1.2.3", "15\x005 і 1\x002\x003"},
		{"decimal needs both sides", ProtectDecimals, "15. 5 .5", "15. 5 .5"},
		{"initial", s.ProtectInitials, "В. Зеленський", "В\x00 Зеленський"},
		{"initial needs boundary", s.ProtectInitials, "ЛьвівА.", "ЛьвівА."},
		{"initial lowercase", s.ProtectInitials, "кінець в.", "кінець в."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in); got != tc.out {
				t.Fatalf("got %q, want %q", got, tc.out)
			}
		})
	}
}

func TestSplitRestore(t *testing.T) {
	s := New(nil)
	got := s.Split("Перше. Друге!  Третє")
	want := []string{"Перше.", "Друге!", "Третє"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}

	if got := Restore([]string{" а\x00б ", "", "  "}); !reflect.DeepEqual(got, []string{"а.б"}) {
		t.Fatalf("Restore = %q", got)
	}
	if got := Restore(nil); got == nil || len(got) != 0 {
		t.Fatalf("Restore(nil) = %#v", got)
	}
}

func TestSpans(t *testing.T) {
	s := New(nil)
	in := "  Зустріч у м. Львів.  Всі раді. "
	spans := s.Spans(in)
	if len(spans) != 2 {
		t.Fatalf("len = %d, spans %+v", len(spans), spans)
	}
	sentences := s.Segment(in)
	for i, sp := range spans {
		if sp.Text != sentences[i] {
			t.Fatalf("span %d text %q, want %q", i, sp.Text, sentences[i])
		}
		if in[sp.Start:sp.End] != sp.Text {
			t.Fatalf("span %d offsets [%d,%d) cover %q", i, sp.Start, sp.End, in[sp.Start:sp.End])
		}
	}
	if got := s.Spans("   "); len(got) != 0 {
		t.Fatalf("blank spans = %+v", got)
	}
}

func TestSegmenter_CustomLocale(t *testing.T) {
	loc := &locale.Locale{
		Version:       1,
		Code:          "xx",
		Name:          "Test",
		Upper:         "А-ЯІЇЄҐ",
		Lower:         "а-яіїєґ",
		Abbreviations: []string{"ред"},
	}
	s := New(patterns.MustNew(loc))
	// "м" is not an abbreviation here, so the split happens
	got := s.Segment("Ред. Новий текст у м. Львів.")
	want := []string{"Ред. Новий текст у м.", "Львів."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}
