package eosc

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"eosc-harvest/internal/domain"
)

func sampleRecord() domain.TrainingRecord {
	return domain.TrainingRecord{
		ID:             "admin-intro",
		TopicName:      "admin",
		TutorialName:   "intro",
		Contributors:   []domain.Contributor{{ID: "jdoe", Name: "Jane Doe", Email: "j@x.org"}},
		Objectives:     []string{"Learn X"},
		Level:          "Introductory",
		TimeEstimation: "1H",
		URL:            "/admin/intro",
	}
}

func TestTranslateLevel(t *testing.T) {
	testCases := []struct {
		level    string
		expected string
	}{
		{"Introductory", "tr_expertise_level-beginner"},
		{"Any", "tr_expertise_level-all"},
		{"Intermediate", "tr_expertise_level-intermediate"},
		{"Advanced", "tr_expertise_level-advanced"},
		{"", "tr_expertise_level-advanced"},
		{"Expert", "tr_expertise_level-advanced"},
	}

	for _, tc := range testCases {
		if got := TranslateLevel(tc.level); got != tc.expected {
			t.Errorf("TranslateLevel(%q) = %q, want %q", tc.level, got, tc.expected)
		}
	}
}

func TestMapHappyPath(t *testing.T) {
	result := Map(sampleRecord())

	if result.Failed() {
		t.Fatalf("Expected mapping to succeed, got error: %s", result.Err)
	}
	res := result.Resource

	if res.ExpertiseLevel != "tr_expertise_level-beginner" {
		t.Errorf("Expected expertiseLevel 'tr_expertise_level-beginner', got '%s'", res.ExpertiseLevel)
	}
	if !reflect.DeepEqual(res.Authors, []string{"Jane Doe"}) {
		t.Errorf("Expected authors [Jane Doe], got %v", res.Authors)
	}
	wantContact := Contact{FirstName: "Jane", LastName: "Doe", Email: "j@x.org"}
	if res.Contact != wantContact {
		t.Errorf("Expected contact %+v, got %+v", wantContact, res.Contact)
	}
	if res.URL != "https://training.galaxyproject.org/training-material/admin/intro" {
		t.Errorf("Unexpected url: %s", res.URL)
	}
	if res.ResourceOrganisation != "uni-freiburg" {
		t.Errorf("Unexpected organisation: %s", res.ResourceOrganisation)
	}
	if res.Duration != "1H" {
		t.Errorf("Unexpected duration: %s", res.Duration)
	}
	if !reflect.DeepEqual(res.LearningOutcomes, []string{"Learn X"}) {
		t.Errorf("Unexpected learning outcomes: %v", res.LearningOutcomes)
	}
	if result.Identity != "admin_intro" {
		t.Errorf("Expected identity 'admin_intro', got '%s'", result.Identity)
	}
}

func TestMapAuthorshipFilter(t *testing.T) {
	rec := sampleRecord()
	rec.Contributors = []domain.Contributor{
		{ID: "jdoe", Name: "Jane Doe"},
		{ID: "reviewer", Name: "Rick Reviewer"},
		{ID: "jdoe2", Name: "Jane Doe"},
	}
	rec.Contributions = &domain.Contributions{Authorship: []string{"jdoe", "jdoe2"}}

	result := Map(rec)
	if result.Failed() {
		t.Fatalf("Expected mapping to succeed, got error: %s", result.Err)
	}

	// Only authorship contributors, duplicate names removed, order kept.
	if !reflect.DeepEqual(result.Resource.Authors, []string{"Jane Doe"}) {
		t.Errorf("Expected authors [Jane Doe], got %v", result.Resource.Authors)
	}
}

func TestMapAllContributorsWhenNoAuthorship(t *testing.T) {
	rec := sampleRecord()
	rec.Contributors = []domain.Contributor{
		{ID: "a", Name: "Alice A"},
		{ID: "b", Name: "Bob B"},
	}

	result := Map(rec)
	if result.Failed() {
		t.Fatalf("Expected mapping to succeed, got error: %s", result.Err)
	}
	if !reflect.DeepEqual(result.Resource.Authors, []string{"Alice A", "Bob B"}) {
		t.Errorf("Expected all contributor names, got %v", result.Resource.Authors)
	}
}

func TestMapNoObjectivesUsesSentinel(t *testing.T) {
	rec := sampleRecord()
	rec.Objectives = nil

	result := Map(rec)
	if result.Failed() {
		t.Fatalf("Expected mapping to succeed without objectives, got error: %s", result.Err)
	}
	want := []string{"No learning outcomes available"}
	if !reflect.DeepEqual(result.Resource.LearningOutcomes, want) {
		t.Errorf("Expected sentinel outcomes %v, got %v", want, result.Resource.LearningOutcomes)
	}
}

func TestMapZeroContributors(t *testing.T) {
	rec := sampleRecord()
	rec.Contributors = nil

	result := Map(rec)
	if !result.Failed() {
		t.Fatal("Expected mapping error for record without contributors")
	}
	if !strings.Contains(result.Err, "authors") {
		t.Errorf("Expected error naming the authors field, got %q", result.Err)
	}
	if result.Resource != nil {
		t.Error("Expected no resource on mapping failure")
	}
}

func TestMapMissingID(t *testing.T) {
	rec := sampleRecord()
	rec.ID = ""

	result := Map(rec)
	if !result.Failed() {
		t.Fatal("Expected mapping error for record without id")
	}
	if !strings.Contains(result.Err, "mandatory field id") {
		t.Errorf("Expected error naming the id field, got %q", result.Err)
	}
}

func TestMapSingleTokenContactName(t *testing.T) {
	rec := sampleRecord()
	rec.Contributors = []domain.Contributor{{ID: "x", Name: "Plato"}}

	result := Map(rec)
	if result.Failed() {
		t.Fatalf("Expected mapping to succeed, got error: %s", result.Err)
	}
	c := result.Resource.Contact
	if c.FirstName != "Plato" || c.LastName != "Plato" {
		t.Errorf("Expected first and last name 'Plato', got %+v", c)
	}
	if c.Email != "place_holder@uni-freiburg.com" {
		t.Errorf("Expected placeholder email, got %q", c.Email)
	}
}

func TestMapFirstFailureWins(t *testing.T) {
	rec := sampleRecord()
	rec.ID = ""
	rec.TutorialName = ""

	result := Map(rec)
	if !result.Failed() {
		t.Fatal("Expected mapping error")
	}
	// id is checked before title; only the first failure is reported.
	if !strings.Contains(result.Err, "mandatory field id") {
		t.Errorf("Expected first failing field (id), got %q", result.Err)
	}
}

func TestResourceRoundTrip(t *testing.T) {
	result := Map(sampleRecord())
	if result.Failed() {
		t.Fatalf("Expected mapping to succeed, got error: %s", result.Err)
	}

	data, err := json.Marshal(result.Resource)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back TrainingResource
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(*result.Resource, back) {
		t.Errorf("Round trip changed the resource:\n%+v\nvs\n%+v", *result.Resource, back)
	}
}
