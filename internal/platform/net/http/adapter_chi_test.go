package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func tag(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			w.Header().Add("X-Layer", name)
			next.ServeHTTP(w, r)
		})
	}
}

func write(status int, body string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestAdaptChi_Mounting(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Use(tag("root"))
	r.Get("/health", write(200, "ok"))
	r.Handle("/std", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte("std")) }))
	r.Group(func(g Router) {
		g.Use(tag("group"))
		g.Delete("/g", write(204, ""))
	})
	r.Route("/api", func(api Router) {
		api.Use(tag("api"))
		api.Route("/v1", func(v1 Router) {
			v1.Post("/documents/preprocess", write(201, "created"))
			v1.Put("/documents", write(202, "put"))
			v1.Method(stdhttp.MethodPatch, "/documents", write(200, "patched"))
		})
	})

	tests := []struct {
		method, path string
		status       int
		body         string
		layers       []string
	}{
		{"GET", "/health", 200, "ok", []string{"root"}},
		{"GET", "/std", 200, "std", []string{"root"}},
		{"DELETE", "/g", 204, "", []string{"root", "group"}},
		{"POST", "/api/v1/documents/preprocess", 201, "created", []string{"root", "api"}},
		{"PUT", "/api/v1/documents", 202, "put", []string{"root", "api"}},
		{"PATCH", "/api/v1/documents", 200, "patched", []string{"root", "api"}},
		{"GET", "/api/v1/documents/preprocess", 405, "", nil},
		{"GET", "/nope", 404, "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.body != "" && rec.Body.String() != tc.body {
				t.Fatalf("body = %q", rec.Body.String())
			}
			if tc.layers == nil {
				return
			}
			got := rec.Header().Values("X-Layer")
			if len(got) != len(tc.layers) {
				t.Fatalf("layers = %v, want %v", got, tc.layers)
			}
			for i := range got {
				if got[i] != tc.layers[i] {
					t.Fatalf("layers = %v, want %v", got, tc.layers)
				}
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Route("/api/v1", func(api Router) {
		api.Post("/documents/segment", write(200, ""))
		api.Post("/documents/preprocess", write(200, ""))
		api.Get("/meta", write(200, ""))
	})

	got := Routes(r)
	want := []Route{
		{"POST", "/api/v1/documents/preprocess"},
		{"POST", "/api/v1/documents/segment"},
		{"GET", "/api/v1/meta"},
	}
	if len(got) != len(want) {
		t.Fatalf("Routes = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Routes[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParam(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Route("/documents", func(d Router) {
		d.Get("/{id}", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			_, _ = w.Write([]byte(Param(req, "id") + "|" + Param(req, "missing")))
		})
	})
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/documents/abc", nil))
	if rec.Body.String() != "abc|" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
