package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// TrainingRecord is the canonical representation of one GTN tutorial inside
// this service. The catalog fetcher maps API materials into this model, and
// the EOSC mapper maps from it.
//
// Raw keeps the full material object as returned by the API, because the
// snapshot on disk must preserve every field (change detection compares whole
// records, not just the ones we map).
type TrainingRecord struct {
	ID             string         `json:"id,omitempty"`
	TopicName      string         `json:"topic_name"`
	TutorialName   string         `json:"tutorial_name"`
	Contributors   []Contributor  `json:"contributors,omitempty"`
	Contributions  *Contributions `json:"contributions,omitempty"`
	Objectives     []string       `json:"objectives,omitempty"`
	Level          string         `json:"level,omitempty"`
	TimeEstimation string         `json:"time_estimation,omitempty"`
	URL            string         `json:"url,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type Contributor struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Contributions lists contributor ids per contribution kind. Only authorship
// matters for the EOSC mapping.
type Contributions struct {
	Authorship []string `json:"authorship,omitempty"`
}

// Identity is the composite key used for snapshot files, failure files and
// validated output. Unique within a topic.
func (r TrainingRecord) Identity() string {
	return fmt.Sprintf("%s_%s", r.TopicName, r.TutorialName)
}

// ParseRecord decodes a snapshot file (or API material) back into a
// TrainingRecord, keeping the original bytes in Raw.
func ParseRecord(data []byte) (TrainingRecord, error) {
	var r TrainingRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return TrainingRecord{}, fmt.Errorf("domain: parse record: %w", err)
	}
	r.Raw = append(json.RawMessage(nil), data...)
	return r, nil
}

// CanonicalJSON re-marshals a raw record with sorted keys and stable
// indentation, so byte comparison of snapshot files is meaningful and diffs
// stay readable.
func CanonicalJSON(raw json.RawMessage) ([]byte, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("domain: canonicalize: %w", err)
	}
	return json.MarshalIndent(v, "", "    ")
}

// StructurallyEqual compares two JSON documents on parsed content. Field
// order never causes a false positive.
func StructurallyEqual(a, b []byte) bool {
	var va, vb any
	if err := json.Unmarshal(a, &va); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}
