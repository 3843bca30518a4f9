package snapshot

import (
	"reflect"
	"sort"
)

// Change records the before/after values for one section. Old is nil when
// the section appeared for the first time in the new snapshot.
type Change struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// Diff maps section keys to changes. Sections with structurally equal
// values are omitted entirely; sections present only in the old snapshot
// are never reported (comparison is new-snapshot-driven).
type Diff map[string]Change

// Compare structurally compares two snapshots section by section.
// A nil old snapshot yields a change for every section in new.
func Compare(old, new *Snapshot) Diff {
	diff := make(Diff)
	if new == nil {
		return diff
	}

	oldSections := old.Sections()
	for key, newVal := range new.Sections() {
		oldVal, ok := oldSections[key]
		if !ok {
			diff[key] = Change{Old: nil, New: newVal}
			continue
		}
		if !reflect.DeepEqual(oldVal, newVal) {
			diff[key] = Change{Old: oldVal, New: newVal}
		}
	}
	return diff
}

// Has reports whether the diff contains a change for the given section key.
func (d Diff) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Keys returns the changed section keys in sorted order.
func (d Diff) Keys() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
