// Package progress persists per-question state (flagged ids, answered ids)
// across sessions, plus the theme preference. Stored collections are gated
// by a schema version tag so stale data from an older question layout is
// discarded instead of silently misread.
package progress

import "encoding/json"

// SchemaVersion tags every stored collection. Bump it when question ids
// change so old flags and answered marks are invalidated.
const SchemaVersion = "1.0"

// Storage keys.
const (
	keyVersion  = "life_uk_version"
	keyFlagged  = "life_uk_flagged"
	keyAnswered = "life_uk_answered"
	keyTheme    = "life_uk_theme"
)

// Store is the durable progress record. Implementations are not safe for
// concurrent use; the app is single-threaded and last write wins.
type Store interface {
	FlaggedIDs() ([]int, error)
	SaveFlaggedIDs(ids []int) error
	AnsweredIDs() ([]int, error)
	SaveAnsweredIDs(ids []int) error

	// Theme is the UI theme preference, not version-gated.
	Theme() (string, error)
	SaveTheme(theme string) error

	// Reset clears both id collections.
	Reset() error
}

// kv is the minimal key-value surface the version-gate logic needs. Both
// the sqlite store and the in-memory fake provide it.
type kv interface {
	get(key string) (string, bool, error)
	put(key, value string) error
	del(key string) error
}

// versioned implements the Store contract on top of any kv backend.
type versioned struct {
	kv
}

// idList reads a stored id collection. A missing or stale version tag
// clears the collection, rewrites the tag and yields an empty result: the
// getter heals the store as a side effect of reading. A payload that fails
// to decode is likewise treated as empty rather than surfaced as an error.
func (v versioned) idList(key string) ([]int, error) {
	version, ok, err := v.get(keyVersion)
	if err != nil {
		return nil, err
	}
	if !ok || version != SchemaVersion {
		if err := v.del(key); err != nil {
			return nil, err
		}
		if err := v.put(keyVersion, SchemaVersion); err != nil {
			return nil, err
		}
		return []int{}, nil
	}

	raw, ok, err := v.get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []int{}, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []int{}, nil
	}
	return ids, nil
}

// saveIDList writes an id collection. The version tag is rewritten
// alongside the value, so a save always heals the version.
func (v versioned) saveIDList(key string, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := v.put(keyVersion, SchemaVersion); err != nil {
		return err
	}
	return v.put(key, string(raw))
}

func (v versioned) FlaggedIDs() ([]int, error)      { return v.idList(keyFlagged) }
func (v versioned) SaveFlaggedIDs(ids []int) error  { return v.saveIDList(keyFlagged, ids) }
func (v versioned) AnsweredIDs() ([]int, error)     { return v.idList(keyAnswered) }
func (v versioned) SaveAnsweredIDs(ids []int) error { return v.saveIDList(keyAnswered, ids) }

func (v versioned) Theme() (string, error) {
	theme, _, err := v.get(keyTheme)
	return theme, err
}

func (v versioned) SaveTheme(theme string) error {
	return v.put(keyTheme, theme)
}

func (v versioned) Reset() error {
	if err := v.saveIDList(keyFlagged, nil); err != nil {
		return err
	}
	return v.saveIDList(keyAnswered, nil)
}
