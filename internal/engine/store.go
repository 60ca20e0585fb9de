package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tartampluch/go-meetingtime/internal/config"
)

// KVStore is the durable key/value storage the selection is persisted to.
// fyne.Preferences satisfies it.
type KVStore interface {
	String(key string) string
	SetString(key string, value string)
}

// SelectionState is the chosen reference time plus the ordered, unique zone list.
type SelectionState struct {
	ReferenceTime ReferenceTime
	Timezones     []string
}

// DefaultState is the state used on first run or after a corrupt read.
func DefaultState() SelectionState {
	return SelectionState{
		ReferenceTime: DefaultReferenceTime(),
		Timezones:     []string{},
	}
}

// Clone returns a deep copy.
func (s SelectionState) Clone() SelectionState {
	zones := make([]string, len(s.Timezones))
	copy(zones, s.Timezones)
	return SelectionState{ReferenceTime: s.ReferenceTime, Timezones: zones}
}

// persistedState is the on-disk record. Version is bumped on incompatible changes.
type persistedState struct {
	Version      int      `json:"version"`
	SelectedTime string   `json:"selectedTime"`
	Timezones    []string `json:"timezones"`
}

// SelectionStore owns the SelectionState and persists it after every mutation.
// It is not safe for concurrent use; the UI drives it from one goroutine.
type SelectionStore struct {
	storage   KVStore
	key       string
	state     SelectionState
	listeners []func(SelectionState)
}

// NewSelectionStore creates a store with default state.
// Call Restore to load the persisted selection.
func NewSelectionStore(storage KVStore) *SelectionStore {
	return &SelectionStore{
		storage: storage,
		key:     config.PrefSelectionState,
		state:   DefaultState(),
	}
}

// OnChange registers a listener receiving a snapshot after each persisted mutation.
func (s *SelectionStore) OnChange(fn func(SelectionState)) {
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a copy of the current state.
func (s *SelectionStore) Snapshot() SelectionState {
	return s.state.Clone()
}

// AddTimezone appends id to the selection.
func (s *SelectionStore) AddTimezone(id string) error {
	if id == "" {
		return ErrEmptySelection
	}
	if slices.Contains(s.state.Timezones, id) {
		return &AlreadySelectedError{ID: id}
	}

	s.state.Timezones = append(s.state.Timezones, id)
	slog.Info(config.MsgZoneAdded,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyTimezone, id,
		config.LogKeyCount, len(s.state.Timezones))

	s.commit()
	return nil
}

// RemoveTimezone drops id from the selection. Removing an absent id is not an error.
func (s *SelectionStore) RemoveTimezone(id string) {
	s.state.Timezones = slices.DeleteFunc(s.state.Timezones, func(tz string) bool {
		return tz == id
	})
	slog.Info(config.MsgZoneRemoved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyTimezone, id,
		config.LogKeyCount, len(s.state.Timezones))

	s.commit()
}

// ClearAll empties the selection. It does nothing, and writes nothing, when
// the selection is already empty. Callers confirm with the user first.
func (s *SelectionStore) ClearAll() {
	if len(s.state.Timezones) == 0 {
		return
	}

	s.state.Timezones = []string{}
	slog.Info(config.MsgZonesCleared, config.LogKeyComponent, config.CompStore)

	s.commit()
}

// SetReferenceTime replaces the reference time.
func (s *SelectionStore) SetReferenceTime(hour, minute int) error {
	rt, err := NewReferenceTime(hour, minute)
	if err != nil {
		return err
	}

	s.state.ReferenceTime = rt
	slog.Debug(config.MsgTimeChanged,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyTime, rt.String())

	s.commit()
	return nil
}

// Persist writes the whole state under the store key, replacing any previous value.
func (s *SelectionStore) Persist() {
	data, err := encodeState(s.state)
	if err != nil {
		slog.Error(config.ErrStateEncode,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyError, err)
		return
	}

	s.storage.SetString(s.key, string(data))
	slog.Debug(config.MsgStatePersisted,
		config.LogKeyComponent, config.CompStore,
		config.LogKeySizeBytes, len(data))
}

// Restore loads the persisted state. A missing record yields defaults and nil.
// A malformed record yields the best-effort decoded state and a *StorageReadError;
// the store is usable either way.
func (s *SelectionStore) Restore() error {
	raw := s.storage.String(s.key)
	if raw == "" {
		s.state = DefaultState()
		slog.Info(config.MsgStateDefaults, config.LogKeyComponent, config.CompStore)
		return nil
	}

	state, err := decodeState(raw)
	s.state = state
	if err != nil {
		slog.Warn(config.ErrStorageRead,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyError, err)
		return err
	}

	slog.Info(config.MsgStateRestored,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyTime, state.ReferenceTime.String(),
		config.LogKeyCount, len(state.Timezones))
	return nil
}

// commit persists and then notifies listeners.
func (s *SelectionStore) commit() {
	s.Persist()
	for _, fn := range s.listeners {
		fn(s.Snapshot())
	}
}

func encodeState(state SelectionState) ([]byte, error) {
	zones := state.Timezones
	if zones == nil {
		zones = []string{}
	}
	return json.Marshal(persistedState{
		Version:      config.StateSchemaVersion,
		SelectedTime: state.ReferenceTime.String(),
		Timezones:    zones,
	})
}

// decodeState parses each field independently so that one bad field does not
// discard the others. It always returns a valid state.
func decodeState(raw string) (SelectionState, error) {
	state := DefaultState()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return state, &StorageReadError{Err: err}
	}

	var problems []error

	if v, ok := fields[config.FieldVersion]; ok {
		var version int
		if err := json.Unmarshal(v, &version); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", config.FieldVersion, err))
		}
	}

	if v, ok := fields[config.FieldSelectedTime]; ok {
		var selected string
		if err := json.Unmarshal(v, &selected); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", config.FieldSelectedTime, err))
		} else if rt, err := ParseReferenceTime(selected); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", config.FieldSelectedTime, err))
		} else {
			state.ReferenceTime = rt
		}
	}

	if v, ok := fields[config.FieldTimezones]; ok {
		var zones []string
		if err := json.Unmarshal(v, &zones); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", config.FieldTimezones, err))
		} else {
			state.Timezones = uniqueZones(zones)
		}
	}

	if len(problems) > 0 {
		return state, &StorageReadError{Err: errors.Join(problems...)}
	}
	return state, nil
}

// uniqueZones drops empty and repeated identifiers, keeping first occurrences in order.
func uniqueZones(zones []string) []string {
	out := make([]string, 0, len(zones))
	for _, id := range zones {
		if id == "" || slices.Contains(out, id) {
			slog.Debug(config.MsgDroppedZone,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyTimezone, id)
			continue
		}
		out = append(out, id)
	}
	return out
}
