package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	c := New("https://training.galaxyproject.org/training-material")

	if c.BaseURL != "https://training.galaxyproject.org/training-material" {
		t.Errorf("Unexpected BaseURL: %s", c.BaseURL)
	}
	if c.HTTP == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if c.Retry.MaxAttempts != 1 {
		t.Errorf("Expected single-attempt retry config, got %d attempts", c.Retry.MaxAttempts)
	}
}

func TestListTopics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/topics.json" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"variant-analysis": {"title": "Variant Analysis"}, "admin": {"title": "Admin"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	topics, err := c.ListTopics(context.Background())
	if err != nil {
		t.Fatalf("ListTopics failed: %v", err)
	}

	if !reflect.DeepEqual(topics, []string{"admin", "variant-analysis"}) {
		t.Errorf("Expected sorted topic names, got %v", topics)
	}
}

func TestListTopicsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListTopics(context.Background()); err == nil {
		t.Error("Expected error for non-200 topic index")
	}
}

func TestMaterials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/topics/admin.json" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"materials": [
			{"topic_name": "admin", "tutorial_name": "intro", "level": "Introductory", "extra_field": 7},
			{"topic_name": "admin", "tutorial_name": "backup", "level": "Advanced"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	records, err := c.Materials(context.Background(), "admin")
	if err != nil {
		t.Fatalf("Materials failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Identity() != "admin_intro" {
		t.Errorf("Unexpected identity: %s", records[0].Identity())
	}
	// Raw must keep fields the struct does not model.
	if len(records[0].Raw) == 0 {
		t.Fatal("Expected Raw to be set")
	}
	var raw map[string]any
	if err := json.Unmarshal(records[0].Raw, &raw); err != nil {
		t.Fatalf("Raw not valid JSON: %v", err)
	}
	if raw["extra_field"] != float64(7) {
		t.Errorf("Expected extra_field preserved in Raw, got %v", raw["extra_field"])
	}
}
