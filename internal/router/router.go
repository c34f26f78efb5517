// Package router persists validation outcomes: passed resources into the
// validated store, everything else into the failure store plus the permanent
// failure log.
package router

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"eosc-harvest/internal/eosc"
	"eosc-harvest/internal/logging"
	"eosc-harvest/internal/workspace"
)

// Route writes each outcome to exactly one store. Only filesystem errors are
// returned; a rejected record is not an error, it is a routed result.
func Route(ws workspace.Workspace, outcomes []eosc.ValidationOutcome, cat workspace.Category) error {
	for _, o := range outcomes {
		if o.Passed() {
			if err := writeValidated(ws, o, cat); err != nil {
				return err
			}
			continue
		}

		if err := ws.CopyToFailures(cat, o.Topic, o.Identity); err != nil {
			return err
		}
		if err := ws.AppendFailureLog(fmt.Sprintf("%s %s", cat, o.Describe())); err != nil {
			return err
		}
		logging.WithFields(logrus.Fields{
			"id":       o.Identity,
			"category": string(cat),
		}).Warn("record routed to failures")
	}
	return nil
}

func writeValidated(ws workspace.Workspace, o eosc.ValidationOutcome, cat workspace.Category) error {
	data, err := json.MarshalIndent(o.Resource, "", "    ")
	if err != nil {
		return fmt.Errorf("router: serialize %s: %w", o.Identity, err)
	}
	return ws.WriteValidated(cat, o.Identity, data)
}
