package eosc

import (
	"fmt"
	"strings"

	"eosc-harvest/internal/domain"
)

// Fixed profile values. The portal expects vocabulary ids, not labels.
const (
	providerID       = "uni-freiburg"
	licenseURL       = "https://spdx.org/licenses/CC-BY-4.0"
	accessRights     = "tr_access_right-open_access"
	versionDate      = "2024-01-01"
	placeholderEmail = "place_holder@uni-freiburg.com"

	// GTN material urls are relative to this.
	gtnBaseURL = "https://training.galaxyproject.org/training-material"

	noOutcomesSentinel = "No learning outcomes available"
)

var targetGroups = []string{"target_user-researchers", "target_user-students"}

var levelMapping = map[string]string{
	"Introductory": "tr_expertise_level-beginner",
	"Any":          "tr_expertise_level-all",
	"Intermediate": "tr_expertise_level-intermediate",
	"Advanced":     "tr_expertise_level-advanced",
}

// TranslateLevel maps a GTN level onto the EOSC expertise vocabulary.
// Unknown levels conservatively become advanced. The empty-value fallback to
// "all" mirrors the historical rule even though no mapping target is empty
// today.
func TranslateLevel(level string) string {
	mapped, ok := levelMapping[level]
	if !ok {
		return "tr_expertise_level-advanced"
	}
	if mapped == "" {
		return "tr_expertise_level-all"
	}
	return mapped
}

// MapResult is either a mapped resource or a mapping error, always tied to
// the source identity.
type MapResult struct {
	Identity string
	Topic    string
	Resource *TrainingResource
	Err      string
}

func (r MapResult) Failed() bool { return r.Err != "" }

// Map derives a TrainingResource from one training record and checks every
// mandatory field. First falsy field wins; mapping never accumulates errors
// and never panics past this boundary.
func Map(rec domain.TrainingRecord) (result MapResult) {
	result = MapResult{Identity: rec.Identity(), Topic: rec.TopicName}

	defer func() {
		if r := recover(); r != nil {
			result.Resource = nil
			result.Err = fmt.Sprintf("for %s there was an error: %v", result.Identity, r)
		}
	}()

	res := TrainingResource{
		ID:                         rec.ID,
		Title:                      rec.TutorialName,
		ResourceOrganisation:       providerID,
		Authors:                    deriveAuthors(rec),
		URL:                        gtnBaseURL + rec.URL,
		License:                    licenseURL,
		AccessRights:               accessRights,
		VersionDate:                versionDate,
		TargetGroups:               targetGroups,
		LearningOutcomes:           deriveLearningOutcomes(rec),
		ExpertiseLevel:             TranslateLevel(rec.Level),
		Duration:                   rec.TimeEstimation,
		Languages:                  []string{"en"},
		GeographicalAvailabilities: []string{"WW"},
		ScientificDomains: []ScientificDomain{{
			ScientificDomain:    "scientific_domain-generic",
			ScientificSubdomain: "scientific_subdomain-generic-generic",
		}},
		Contact: deriveContact(rec),
	}

	if msg := checkMandatory(result.Identity, res); msg != "" {
		result.Err = msg
		return result
	}

	result.Resource = &res
	return result
}

// deriveAuthors picks contributors named in contributions.authorship when that
// list exists, otherwise all contributors. Duplicates removed, first-seen
// order kept.
func deriveAuthors(rec domain.TrainingRecord) []string {
	var names []string
	if rec.Contributions != nil && rec.Contributions.Authorship != nil {
		authorIDs := map[string]bool{}
		for _, id := range rec.Contributions.Authorship {
			authorIDs[id] = true
		}
		for _, c := range rec.Contributors {
			if authorIDs[c.ID] {
				names = append(names, c.Name)
			}
		}
	} else {
		for _, c := range rec.Contributors {
			names = append(names, c.Name)
		}
	}

	seen := map[string]bool{}
	out := names[:0]
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Objectives are recommended, not strictly mandatory: an empty list becomes a
// sentinel instead of a mapping error.
func deriveLearningOutcomes(rec domain.TrainingRecord) []string {
	if len(rec.Objectives) == 0 {
		return []string{noOutcomesSentinel}
	}
	return append([]string(nil), rec.Objectives...)
}

// deriveContact splits the first contributor's name on whitespace: first
// token is the first name, last token the last name. Single-token names use
// the same token for both.
func deriveContact(rec domain.TrainingRecord) Contact {
	if len(rec.Contributors) == 0 {
		return Contact{}
	}
	main := rec.Contributors[0]

	var first, last string
	if tokens := strings.Fields(main.Name); len(tokens) > 0 {
		first = tokens[0]
		last = tokens[len(tokens)-1]
	}

	email := main.Email
	if email == "" {
		email = placeholderEmail
	}

	return Contact{FirstName: first, LastName: last, Email: email}
}

type mandatoryField struct {
	name  string
	value any
}

// checkMandatory returns the first-failure error message, or "" when every
// mandatory field is set. The contact block is checked per inner value.
func checkMandatory(identity string, res TrainingResource) string {
	fields := []mandatoryField{
		{"id", res.ID},
		{"title", res.Title},
		{"resourceOrganisation", res.ResourceOrganisation},
		{"authors", res.Authors},
		{"url", res.URL},
		{"license", res.License},
		{"accessRights", res.AccessRights},
		{"versionDate", res.VersionDate},
		{"targetGroups", res.TargetGroups},
		{"learningOutcomes", res.LearningOutcomes},
		{"expertiseLevel", res.ExpertiseLevel},
		{"languages", res.Languages},
		{"geographicalAvailabilities", res.GeographicalAvailabilities},
		{"scientificDomains", res.ScientificDomains},
	}

	for _, f := range fields {
		if isFalsy(f.value) {
			return fmt.Sprintf("for %s the mandatory field %s is not set", identity, f.name)
		}
	}

	contact := map[string]string{
		"firstName": res.Contact.FirstName,
		"lastName":  res.Contact.LastName,
		"email":     res.Contact.Email,
	}
	for _, key := range []string{"firstName", "lastName", "email"} {
		if contact[key] == "" {
			return fmt.Sprintf("for %s the mandatory field %s is not set", identity, key)
		}
	}
	return ""
}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	case []ScientificDomain:
		return len(x) == 0
	default:
		return v == nil
	}
}
