package eosc

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed trainingresource.schema.json
var profileSchema string

// CheckProfileSchema validates a serialized resource against the embedded
// profile schema before it goes over the wire. Catching shape problems here
// saves a doomed API call and yields a field-level message.
func CheckProfileSchema(resourceJSON []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(profileSchema)
	documentLoader := gojsonschema.NewBytesLoader(resourceJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("profile schema check failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return fmt.Errorf("profile schema violation: %s", strings.Join(msgs, "; "))
}
