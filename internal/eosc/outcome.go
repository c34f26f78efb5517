package eosc

import "fmt"

// OutcomeKind tags a ValidationOutcome.
type OutcomeKind int

const (
	// KindMappingError: the record never became a valid resource.
	KindMappingError OutcomeKind = iota
	// KindAPIError: the validation endpoint returned a non-success status.
	KindAPIError
	// KindAccepted: the validation call succeeded. The verdict still decides
	// whether the resource actually passed.
	KindAccepted
)

// ValidationOutcome is the single result produced for every identity that
// enters the pipeline. Never mutated after creation.
type ValidationOutcome struct {
	Kind     OutcomeKind
	Identity string
	Topic    string

	// Message holds the mapping or API error text.
	Message string

	// Verdict and Resource are set for KindAccepted.
	Verdict  string
	Resource *TrainingResource
}

// Passed reports whether an accepted outcome's verdict is the literal valid
// marker. The endpoint answers a bare JSON true, which stringifies as "True";
// a quoted "true" is accepted too.
func (o ValidationOutcome) Passed() bool {
	return o.Kind == KindAccepted && (o.Verdict == "True" || o.Verdict == "true")
}

// Describe renders the outcome for the failure log.
func (o ValidationOutcome) Describe() string {
	switch o.Kind {
	case KindMappingError:
		return fmt.Sprintf("%s: json conversion error: %s", o.Identity, o.Message)
	case KindAPIError:
		return fmt.Sprintf("%s: API error: %s", o.Identity, o.Message)
	default:
		return fmt.Sprintf("%s: validation rejected: verdict=%s", o.Identity, o.Verdict)
	}
}
