// Package sync classifies the current snapshot against the previous one.
package sync

import (
	"fmt"

	"eosc-harvest/internal/domain"
	"eosc-harvest/internal/workspace"
)

// RecordRef addresses one snapshot record.
type RecordRef struct {
	Topic string
	ID    string
}

// ChangeSet partitions the current snapshot's identities.
// - New: absent from the previous snapshot, or failed as new last run
// - Updated: present but structurally different, or failed as updated last run
// Unchanged records are dropped silently.
type ChangeSet struct {
	New     []RecordRef
	Updated []RecordRef
}

// Classify walks the current snapshot in sorted order (topics, then ids) so
// identical inputs always yield the same ChangeSet. Identities from the
// previous run's failure buckets are re-queued into their original bucket, so
// a failed record is retried every run until it succeeds or its content is
// fixed. Each identity lands in at most one bucket.
func Classify(ws workspace.Workspace) (ChangeSet, error) {
	var cs ChangeSet
	seen := map[string]bool{}

	topics, err := ws.Topics(workspace.Current)
	if err != nil {
		return ChangeSet{}, err
	}

	for _, topic := range topics {
		ids, err := ws.RecordIDs(workspace.Current, topic)
		if err != nil {
			return ChangeSet{}, err
		}

		for _, id := range ids {
			ref := RecordRef{Topic: topic, ID: id}

			if !ws.HasRecord(workspace.Previous, topic, id) {
				cs.New = append(cs.New, ref)
				seen[id] = true
				continue
			}

			changed, err := recordChanged(ws, topic, id)
			if err != nil {
				return ChangeSet{}, err
			}
			if changed {
				cs.Updated = append(cs.Updated, ref)
				seen[id] = true
				continue
			}

			// Unchanged, but retry if the previous run failed on it.
			switch {
			case ws.HasFailure(workspace.Previous, workspace.CategoryNew, id):
				cs.New = append(cs.New, ref)
				seen[id] = true
			case ws.HasFailure(workspace.Previous, workspace.CategoryUpdated, id):
				cs.Updated = append(cs.Updated, ref)
				seen[id] = true
			}
		}
	}

	return cs, nil
}

func recordChanged(ws workspace.Workspace, topic, id string) (bool, error) {
	current, err := ws.ReadRecord(workspace.Current, topic, id)
	if err != nil {
		return false, fmt.Errorf("sync: %w", err)
	}
	previous, err := ws.ReadRecord(workspace.Previous, topic, id)
	if err != nil {
		return false, fmt.Errorf("sync: %w", err)
	}
	return !domain.StructurallyEqual(current, previous), nil
}
