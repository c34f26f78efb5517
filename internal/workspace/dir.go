package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	topicsDir       = "topics"
	oldTopicsDir    = "old_topics"
	failuresDir     = "upload_failures"
	oldFailuresDir  = "old_upload_failures"
	validatedDir    = "validated_eosc_jsons"
	failureLogFile  = "upload_failures.txt"
	recordExtension = ".json"
)

// Dir implements Workspace on a directory tree.
type Dir struct {
	Root string
}

func NewDir(root string) *Dir {
	if root == "" {
		root = "."
	}
	return &Dir{Root: root}
}

// Reset rotates topics -> old_topics and upload_failures ->
// old_upload_failures (whatever occupied the old slot is deleted), then
// recreates empty current directories. The validated store is wiped, not
// rotated. The failure log is left alone: it is permanent history.
func (d *Dir) Reset() error {
	if err := d.rotate(topicsDir, oldTopicsDir); err != nil {
		return err
	}
	if err := os.MkdirAll(d.path(topicsDir), 0o755); err != nil {
		return fmt.Errorf("workspace: create %s: %w", topicsDir, err)
	}

	if err := d.rotate(failuresDir, oldFailuresDir); err != nil {
		return err
	}
	for _, cat := range []Category{CategoryNew, CategoryUpdated} {
		if err := os.MkdirAll(d.path(failuresDir, string(cat)), 0o755); err != nil {
			return fmt.Errorf("workspace: create %s/%s: %w", failuresDir, cat, err)
		}
	}

	if err := os.RemoveAll(d.path(validatedDir)); err != nil {
		return fmt.Errorf("workspace: remove %s: %w", validatedDir, err)
	}
	for _, cat := range []Category{CategoryNew, CategoryUpdated} {
		if err := os.MkdirAll(d.path(validatedDir, string(cat)), 0o755); err != nil {
			return fmt.Errorf("workspace: create %s/%s: %w", validatedDir, cat, err)
		}
	}
	return nil
}

func (d *Dir) rotate(current, previous string) error {
	if err := os.RemoveAll(d.path(previous)); err != nil {
		return fmt.Errorf("workspace: remove %s: %w", previous, err)
	}
	if _, err := os.Stat(d.path(current)); err == nil {
		if err := os.Rename(d.path(current), d.path(previous)); err != nil {
			return fmt.Errorf("workspace: rotate %s -> %s: %w", current, previous, err)
		}
	}
	return nil
}

func (d *Dir) WriteRecord(topic, id string, data []byte) error {
	dir := d.path(topicsDir, topic)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("workspace: create topic dir %s: %w", topic, err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+recordExtension), data, 0o644); err != nil {
		return fmt.Errorf("workspace: write record %s/%s: %w", topic, id, err)
	}
	return nil
}

func (d *Dir) ReadRecord(gen Generation, topic, id string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.snapshotDir(gen), topic, id+recordExtension))
	if err != nil {
		return nil, fmt.Errorf("workspace: read record %s/%s: %w", topic, id, err)
	}
	return data, nil
}

func (d *Dir) HasRecord(gen Generation, topic, id string) bool {
	fi, err := os.Stat(filepath.Join(d.snapshotDir(gen), topic, id+recordExtension))
	return err == nil && fi.Mode().IsRegular()
}

func (d *Dir) Topics(gen Generation) ([]string, error) {
	return listDirNames(d.snapshotDir(gen), func(e os.DirEntry) bool { return e.IsDir() })
}

func (d *Dir) RecordIDs(gen Generation, topic string) ([]string, error) {
	names, err := listDirNames(filepath.Join(d.snapshotDir(gen), topic), func(e os.DirEntry) bool {
		return !e.IsDir() && strings.HasSuffix(e.Name(), recordExtension)
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(names))
	for _, n := range names {
		ids = append(ids, strings.TrimSuffix(n, recordExtension))
	}
	return ids, nil
}

func (d *Dir) HasFailure(gen Generation, cat Category, id string) bool {
	base := failuresDir
	if gen == Previous {
		base = oldFailuresDir
	}
	fi, err := os.Stat(d.path(base, string(cat), id+recordExtension))
	return err == nil && fi.Mode().IsRegular()
}

// CopyToFailures copies the current-snapshot record file into the failure
// store so the next run retries it even if the catalog stops changing.
func (d *Dir) CopyToFailures(cat Category, topic, id string) error {
	src, err := os.Open(d.path(topicsDir, topic, id+recordExtension))
	if err != nil {
		return fmt.Errorf("workspace: open source record %s/%s: %w", topic, id, err)
	}
	defer src.Close()

	dst, err := os.Create(d.path(failuresDir, string(cat), id+recordExtension))
	if err != nil {
		return fmt.Errorf("workspace: create failure copy %s: %w", id, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("workspace: copy failure %s: %w", id, err)
	}
	return nil
}

func (d *Dir) AppendFailureLog(line string) error {
	f, err := os.OpenFile(d.path(failureLogFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("workspace: open failure log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("workspace: append failure log: %w", err)
	}
	return nil
}

func (d *Dir) WriteValidated(cat Category, id string, data []byte) error {
	p := d.path(validatedDir, string(cat), id+recordExtension)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("workspace: write validated %s: %w", id, err)
	}
	return nil
}

func (d *Dir) ReadValidated(cat Category, id string) ([]byte, error) {
	data, err := os.ReadFile(d.path(validatedDir, string(cat), id+recordExtension))
	if err != nil {
		return nil, fmt.Errorf("workspace: read validated %s: %w", id, err)
	}
	return data, nil
}

func (d *Dir) ValidatedIDs(cat Category) ([]string, error) {
	names, err := listDirNames(d.path(validatedDir, string(cat)), func(e os.DirEntry) bool {
		return !e.IsDir() && strings.HasSuffix(e.Name(), recordExtension)
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(names))
	for _, n := range names {
		ids = append(ids, strings.TrimSuffix(n, recordExtension))
	}
	return ids, nil
}

// ValidatedPath exposes the validated store root for the bundle builder.
func (d *Dir) ValidatedPath() string {
	return d.path(validatedDir)
}

func (d *Dir) snapshotDir(gen Generation) string {
	if gen == Previous {
		return d.path(oldTopicsDir)
	}
	return d.path(topicsDir)
}

func (d *Dir) path(parts ...string) string {
	return filepath.Join(append([]string{d.Root}, parts...)...)
}

// listDirNames returns matching entry names sorted, or an empty list when the
// directory does not exist (first run has no previous generation).
func listDirNames(dir string, keep func(os.DirEntry) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("workspace: list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if keep(e) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
