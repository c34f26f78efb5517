package eosc

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCheckProfileSchemaValid(t *testing.T) {
	result := Map(sampleRecord())
	if result.Failed() {
		t.Fatalf("Expected mapping to succeed, got error: %s", result.Err)
	}

	body, err := json.Marshal(result.Resource)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := CheckProfileSchema(body); err != nil {
		t.Errorf("Expected mapped resource to pass the profile schema, got: %v", err)
	}
}

func TestCheckProfileSchemaViolations(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		field string
	}{
		{
			"missing required field",
			`{"title": "x"}`,
			"(root)",
		},
		{
			"bad url",
			mutate(t, func(r *TrainingResource) { r.URL = "not-a-url" }),
			"url",
		},
		{
			"bad access rights vocabulary",
			mutate(t, func(r *TrainingResource) { r.AccessRights = "open" }),
			"accessRights",
		},
		{
			"empty authors",
			mutate(t, func(r *TrainingResource) { r.Authors = []string{} }),
			"authors",
		},
	}

	for _, tc := range testCases {
		err := CheckProfileSchema([]byte(tc.body))
		if err == nil {
			t.Errorf("%s: expected schema violation", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.field) {
			t.Errorf("%s: expected error mentioning %q, got %q", tc.name, tc.field, err.Error())
		}
	}
}

// mutate maps the sample record, applies fn and returns the serialized body.
func mutate(t *testing.T, fn func(*TrainingResource)) string {
	t.Helper()
	result := Map(sampleRecord())
	if result.Failed() {
		t.Fatalf("Expected mapping to succeed, got error: %s", result.Err)
	}
	fn(result.Resource)
	body, err := json.Marshal(result.Resource)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return string(body)
}
