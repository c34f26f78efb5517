// Package eosc maps training records into the EOSC training-resource profile
// and talks to the provider portal.
package eosc

// TrainingResource is the subset of the EOSC training-resource profile this
// harvester fills. Optional profile fields we never populate are omitted.
type TrainingResource struct {
	ID                         string             `json:"id"`
	Title                      string             `json:"title"`
	ResourceOrganisation       string             `json:"resourceOrganisation"`
	Authors                    []string           `json:"authors"`
	URL                        string             `json:"url"`
	License                    string             `json:"license"`
	AccessRights               string             `json:"accessRights"`
	VersionDate                string             `json:"versionDate"`
	TargetGroups               []string           `json:"targetGroups"`
	LearningOutcomes           []string           `json:"learningOutcomes"`
	ExpertiseLevel             string             `json:"expertiseLevel"`
	Duration                   string             `json:"duration,omitempty"`
	Languages                  []string           `json:"languages"`
	GeographicalAvailabilities []string           `json:"geographicalAvailabilities"`
	ScientificDomains          []ScientificDomain `json:"scientificDomains"`
	Contact                    Contact            `json:"contact"`
}

type ScientificDomain struct {
	ScientificDomain    string `json:"scientificDomain"`
	ScientificSubdomain string `json:"scientificSubdomain"`
}

type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
