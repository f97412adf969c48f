package scenario

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDerivesStableID(t *testing.T) {
	a := New("A", "box();", "")
	b := New("B", "box();", "different explanation")
	if a.ID != b.ID {
		t.Error("identical source should yield identical IDs across providers")
	}
	c := New("A", "sphere(1);", "")
	if a.ID == c.ID {
		t.Error("different source should yield different IDs")
	}
}

func TestLookup(t *testing.T) {
	cases := []struct {
		topic string
		title string
	}{
		{"pendulum", "Simple Pendulum"},
		{"a swinging PENDULUM", "Simple Pendulum"},
		{"orbit of the moon", "Two-Body Orbit"},
		{"bouncing balls", "Bouncing Balls"},
		{"spring", "Spring Oscillator"},
	}
	for _, tc := range cases {
		unit, ok := Lookup(tc.topic)
		if !ok {
			t.Errorf("Lookup(%q) found nothing", tc.topic)
			continue
		}
		if unit.Title != tc.title {
			t.Errorf("Lookup(%q) = %q, want %q", tc.topic, unit.Title, tc.title)
		}
	}
	if _, ok := Lookup("quantum chromodynamics"); ok {
		t.Error("unmatched topic should miss")
	}
	if _, ok := Lookup("   "); ok {
		t.Error("blank topic should miss")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "double-pendulum.js")
	if err := os.WriteFile(path, []byte("box();\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	unit, err := FromFile(path)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if unit.Title != "double-pendulum" {
		t.Errorf("title = %q", unit.Title)
	}
	if unit.Source != "box();\n" {
		t.Errorf("source = %q", unit.Source)
	}

	bad := filepath.Join(dir, "scenario.exe")
	if err := os.WriteFile(bad, []byte("box();"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(bad); err == nil {
		t.Error("unsupported extension accepted")
	}

	empty := filepath.Join(dir, "empty.js")
	if err := os.WriteFile(empty, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(empty); err == nil {
		t.Error("blank file accepted")
	}

	if _, err := FromFile(filepath.Join(dir, "missing.js")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestHTTPGeneratorSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Prompt != "a pendulum" {
			t.Errorf("prompt = %q", req.Prompt)
		}
		json.NewEncoder(w).Encode(generateResponse{
			Title:       "Generated Pendulum",
			Source:      "sphere(0.2);",
			Explanation: "test",
			Links:       []Link{{Title: "ref", URI: "https://example.com"}},
		})
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "test-model", time.Second, nil)
	unit, err := g.Generate(context.Background(), "a pendulum")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if unit.Title != "Generated Pendulum" || unit.Source != "sphere(0.2);" {
		t.Errorf("unexpected unit: %+v", unit)
	}
	if len(unit.Links) != 1 {
		t.Errorf("links lost: %v", unit.Links)
	}
}

func TestHTTPGeneratorErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "model overloaded"})
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "", time.Second, nil)
	_, err := g.Generate(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("expected the model's message to surface, got %v", err)
	}
}

func TestHTTPGeneratorBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "", time.Second, nil)
	if _, err := g.Generate(context.Background(), "anything"); err == nil {
		t.Error("bad status accepted")
	}
}

func TestHTTPGeneratorEmptySource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Title: "Empty"})
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "", time.Second, nil)
	if _, err := g.Generate(context.Background(), "anything"); err == nil {
		t.Error("response without source accepted")
	}
}

func TestHTTPGeneratorNoEndpoint(t *testing.T) {
	g := NewHTTPGenerator("", "", time.Second, nil)
	if _, err := g.Generate(context.Background(), "anything"); err == nil {
		t.Error("missing endpoint should fail fast")
	}
}
