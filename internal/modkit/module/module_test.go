package module

import (
	"context"
	"testing"

	phttp "textprep/internal/platform/net/http"
	kit "textprep/internal/platform/testkit"
)

type Segmenter interface {
	Segment(context.Context, string) []string
}

type segPort struct{}

func (segPort) Segment(_ context.Context, s string) []string { return []string{s} }

type ports struct {
	Seg   Segmenter
	other int
}

type stubModule struct {
	name  string
	ports any
}

func (s stubModule) MountRoutes(phttp.Router) {}
func (s stubModule) Ports() any               { return s.ports }
func (s stubModule) Name() string             { return s.name }

func TestPortsOf(t *testing.T) {
	tests := []struct {
		name  string
		ports any
		ok    bool
	}{
		{"nil ports", nil, false},
		{"direct", segPort{}, true},
		{"struct field", ports{Seg: segPort{}}, true},
		{"nil field", ports{}, false},
		{"unrelated", 42, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PortsOf[Segmenter](stubModule{ports: tc.ports})
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.Segment(context.Background(), "x")[0] != "x" {
				t.Fatal("wrong port returned")
			}
		})
	}
}

func TestMustPortsOf(t *testing.T) {
	kit.MustNotPanic(t, func() { _ = MustPortsOf[Segmenter](stubModule{ports: ports{Seg: segPort{}}}) })
	kit.MustPanic(t, func() { _ = MustPortsOf[Segmenter](stubModule{name: "meta"}) })
}

func TestRegistry(t *testing.T) {
	kit.Serial(t)
	Reset()
	t.Cleanup(Reset)

	Register("documents", ports{Seg: segPort{}})
	if p, ok := PortsAs[ports]("documents"); !ok || p.Seg == nil {
		t.Fatalf("PortsAs = %+v, %v", p, ok)
	}
	if _, ok := PortsAs[ports]("missing"); ok {
		t.Fatal("missing name should not resolve")
	}
	if _, ok := PortsAs[int]("documents"); ok {
		t.Fatal("wrong type should not resolve")
	}
	if names := Names(); len(names) != 1 || names[0] != "documents" {
		t.Fatalf("Names = %v", names)
	}
}
