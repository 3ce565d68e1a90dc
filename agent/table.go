package agent

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
	"sort"

	"othello3/game"

	"github.com/pkg/errors"
)

const tableFormatVersion = 1

// Table maps a state key to one value per action. Rows are created all-zero
// on first access and never removed. It is not safe for concurrent use.
type Table struct {
	actions int
	values  map[game.StateKey][]float64
	visits  map[game.StateKey][]uint32
}

func NewTable(actions int) *Table {
	if actions <= 0 {
		panic("table needs at least one action")
	}
	return &Table{
		actions: actions,
		values:  make(map[game.StateKey][]float64),
		visits:  make(map[game.StateKey][]uint32),
	}
}

// Actions returns the row length, the number of cells on the board.
func (t *Table) Actions() int { return t.actions }

// Len returns the number of states with a row.
func (t *Table) Len() int { return len(t.values) }

// Row returns the values of key, creating a zero row if the state is new. The
// returned slice aliases the table.
func (t *Table) Row(key game.StateKey) []float64 {
	row, ok := t.values[key]
	if !ok {
		row = make([]float64, t.actions)
		t.values[key] = row
		t.visits[key] = make([]uint32, t.actions)
	}
	return row
}

// Value reads one entry without creating a row.
func (t *Table) Value(key game.StateKey, action int) float64 {
	if row, ok := t.values[key]; ok {
		return row[action]
	}
	return 0
}

// Visits returns how many updates the state-action pair has received.
func (t *Table) Visits(key game.StateKey, action int) uint32 {
	if counts, ok := t.visits[key]; ok {
		return counts[action]
	}
	return 0
}

// visit counts one more update of the pair and returns the new total.
func (t *Table) visit(key game.StateKey, action int) uint32 {
	t.Row(key)
	counts := t.visits[key]
	counts[action]++
	return counts[action]
}

// Keys lists every stored state in ascending byte order.
func (t *Table) Keys() []game.StateKey {
	keys := make([]game.StateKey, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	return keys
}

type tableEntry struct {
	Key    game.StateKey
	Values []float64
	Visits []uint32
}

type tableSnapshot struct {
	Version int
	Actions int
	Entries []tableEntry
}

// Save writes the table to path. The snapshot goes to a temporary file in the
// same directory first and is renamed over path, so an interrupted save never
// leaves a truncated table behind.
func (t *Table) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create table directory")
	}

	snapshot := tableSnapshot{
		Version: tableFormatVersion,
		Actions: t.actions,
		Entries: make([]tableEntry, 0, len(t.values)),
	}
	for _, k := range t.Keys() {
		snapshot.Entries = append(snapshot.Entries, tableEntry{
			Key:    k,
			Values: t.values[k],
			Visits: t.visits[k],
		})
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary table file")
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op once renamed

	if err := gob.NewEncoder(f).Encode(snapshot); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to encode table to %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to close temporary table file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}

// Load reads a table written by Save.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open table")
	}
	defer f.Close()

	var snapshot tableSnapshot
	if err := gob.NewDecoder(f).Decode(&snapshot); err != nil {
		return nil, errors.Wrapf(err, "malformed table file %s", path)
	}
	if snapshot.Version != tableFormatVersion {
		return nil, errors.Errorf("unsupported table version %d in %s", snapshot.Version, path)
	}
	if snapshot.Actions <= 0 {
		return nil, errors.Errorf("table %s has %d actions", path, snapshot.Actions)
	}

	t := NewTable(snapshot.Actions)
	for _, e := range snapshot.Entries {
		if len(e.Values) != t.actions {
			return nil, errors.Errorf("table %s: state %s has %d values, want %d", path, e.Key, len(e.Values), t.actions)
		}
		visits := e.Visits
		if visits == nil {
			visits = make([]uint32, t.actions)
		}
		if len(visits) != t.actions {
			return nil, errors.Errorf("table %s: state %s has %d visit counts, want %d", path, e.Key, len(visits), t.actions)
		}
		t.values[e.Key] = e.Values
		t.visits[e.Key] = visits
	}
	return t, nil
}

// LoadOrNew loads the table at path, or starts an empty one when the file does
// not exist yet. A stored table for a different board size is an error.
func LoadOrNew(path string, actions int) (*Table, error) {
	t, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewTable(actions), nil
	}
	if err != nil {
		return nil, err
	}
	if t.Actions() != actions {
		return nil, errors.Errorf("table %s has %d actions, board has %d cells", path, t.Actions(), actions)
	}
	return t, nil
}
