// Package workspace owns the on-disk state of the harvester: the current and
// previous snapshot, the per-run failure stores, the validated output store
// and the append-only failure log.
package workspace

// Generation selects which snapshot (or failure store) to address.
type Generation int

const (
	Current Generation = iota
	Previous
)

// Category splits failure and validated stores the same way the change
// detector splits records.
type Category string

const (
	CategoryNew     Category = "new_trainings"
	CategoryUpdated Category = "updated_trainings"
)

// Workspace is the storage contract the pipeline runs against. The directory
// implementation below matches the historical layout; tests use it on a temp
// dir.
type Workspace interface {
	// Reset rotates the current snapshot and failure store into their
	// "previous" slots (dropping what was there) and recreates empty current
	// stores. Safe on first run.
	Reset() error

	// Snapshot records.
	WriteRecord(topic, id string, data []byte) error
	ReadRecord(gen Generation, topic, id string) ([]byte, error)
	HasRecord(gen Generation, topic, id string) bool
	Topics(gen Generation) ([]string, error)
	RecordIDs(gen Generation, topic string) ([]string, error)

	// Failure store.
	HasFailure(gen Generation, cat Category, id string) bool
	CopyToFailures(cat Category, topic, id string) error
	AppendFailureLog(line string) error

	// Validated output store.
	WriteValidated(cat Category, id string, data []byte) error
	ReadValidated(cat Category, id string) ([]byte, error)
	ValidatedIDs(cat Category) ([]string, error)
}
