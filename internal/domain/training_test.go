package domain

import (
	"testing"
)

const sampleRecord = `{
    "contributors": [{"id": "jdoe", "name": "Jane Doe", "email": "j@x.org"}],
    "id": "admin-intro",
    "level": "Introductory",
    "objectives": ["Learn X"],
    "time_estimation": "1H",
    "topic_name": "admin",
    "tutorial_name": "intro",
    "url": "/topics/admin/tutorials/intro/tutorial.html"
}`

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord([]byte(sampleRecord))
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}

	if rec.TopicName != "admin" {
		t.Errorf("Expected TopicName 'admin', got '%s'", rec.TopicName)
	}
	if rec.TutorialName != "intro" {
		t.Errorf("Expected TutorialName 'intro', got '%s'", rec.TutorialName)
	}
	if rec.Identity() != "admin_intro" {
		t.Errorf("Expected identity 'admin_intro', got '%s'", rec.Identity())
	}
	if len(rec.Contributors) != 1 || rec.Contributors[0].Name != "Jane Doe" {
		t.Errorf("Contributors not parsed: %+v", rec.Contributors)
	}
	if rec.Contributions != nil {
		t.Error("Expected Contributions to be nil when absent")
	}
	if len(rec.Raw) == 0 {
		t.Error("Expected Raw to keep the original bytes")
	}
}

func TestParseRecordInvalid(t *testing.T) {
	if _, err := ParseRecord([]byte("{not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestCanonicalJSONStable(t *testing.T) {
	a := []byte(`{"b": 2, "a": 1}`)
	b := []byte(`{"a": 1, "b": 2}`)

	ca, err := CanonicalJSON(a)
	if err != nil {
		t.Fatalf("CanonicalJSON failed: %v", err)
	}
	cb, err := CanonicalJSON(b)
	if err != nil {
		t.Fatalf("CanonicalJSON failed: %v", err)
	}

	if string(ca) != string(cb) {
		t.Errorf("Expected identical canonical output, got %q vs %q", ca, cb)
	}
}

func TestStructurallyEqual(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"identical", `{"x":1}`, `{"x":1}`, true},
		{"reordered fields", `{"a":1,"b":[1,2]}`, `{"b":[1,2],"a":1}`, true},
		{"different value", `{"x":1}`, `{"x":2}`, false},
		{"missing field", `{"x":1,"y":2}`, `{"x":1}`, false},
		{"reordered array differs", `{"a":[1,2]}`, `{"a":[2,1]}`, false},
		{"invalid json", `{`, `{}`, false},
	}

	for _, tc := range testCases {
		got := StructurallyEqual([]byte(tc.a), []byte(tc.b))
		if got != tc.expected {
			t.Errorf("%s: StructurallyEqual(%s, %s) = %v, want %v", tc.name, tc.a, tc.b, got, tc.expected)
		}
	}
}
