package snapshot

import (
	"encoding/json"
	"os"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
)

// DefaultFile is the snapshot filename used when no path is configured.
const DefaultFile = "system_snapshot.json"

// Store persists exactly one snapshot generation as the comparison
// baseline. Save overwrites the previous generation.
type Store struct {
	path string
}

// NewStore creates a store writing to the given path. An empty path uses
// DefaultFile in the working directory.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (st *Store) Path() string {
	return st.path
}

// LoadPrevious returns the persisted baseline snapshot, or nil when no
// usable baseline exists. A missing or corrupt file is treated as "no
// history", never as an error.
func (st *Store) LoadPrevious() (*Snapshot, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return nil, nil
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, nil
	}
	return &s, nil
}

// Save overwrites the baseline with the given snapshot. Write failures
// are surfaced, unlike read failures.
func (st *Store) Save(s *Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Failed to encode snapshot",
			"This is a bug; please report it.")
	}

	if err := os.WriteFile(st.path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Failed to write snapshot file "+st.path,
			"Check the directory exists and is writable.")
	}
	return nil
}
