package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "textprep/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"   nonsense   ", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInit_Named_C(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "textprep-test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})
	if Get() == nil {
		t.Fatal("Get returned nil after Init")
	}

	Named("pipeline").Info().Msg("named-msg")

	ctx := WithDocument(WithRequest(context.Background(), "req-123"), "doc-9")
	C(ctx).Info().Msg("ctx-msg")
	C(context.Background()).Info().Msg("bare-msg")

	out := buf.String()
	if buf.Len() == 0 {
		// root was initialized earlier by another test in this binary
		t.Skip("root logger already initialized elsewhere")
	}
	kit.MustContain(t, out, `"component":"pipeline"`)
	kit.MustContain(t, out, `"request_id":"req-123"`)
	kit.MustContain(t, out, `"document_id":"doc-9"`)
	kit.MustContain(t, out, `"service":"textprep-test"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, "bare-msg")
}

func TestBuild_SamplingAndConsole(t *testing.T) {
	var buf bytes.Buffer
	log := build(Options{Level: "info", Format: "console", Writer: &buf, Component: "c", SampleEvery: 1000})
	for i := 0; i < 3; i++ {
		log.Info().Msg("sampled")
	}
	if n := strings.Count(buf.String(), "sampled"); n != 1 {
		t.Fatalf("sampled lines = %d, want 1", n)
	}
	kit.MustContain(t, buf.String(), "component=")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "textprep" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample = %+v", opt)
	}
}

func TestWithRequest_Empty(t *testing.T) {
	ctx := context.Background()
	if WithRequest(ctx, "") != ctx || WithDocument(ctx, "") != ctx {
		t.Fatal("empty ids should not wrap the context")
	}
	kit.MustNotPanic(t, func() { Nop().Info().Msg("dropped") })
}
