// Package store persists the day's clock record and the pending auto
// clock-out deadline.
package store

import (
	"errors"
	"fmt"

	"github.com/Flyrell/clocker/internal/clockstate"
	"github.com/Flyrell/clocker/internal/kv"
)

const (
	// DeadlineKey holds the armed auto clock-out deadline.
	DeadlineKey = "broadcastSchedule"
	// DateKey holds the calendar date of the MORNING_IN slot.
	DateKey = "recordDate"
)

// ErrStorage wraps every persistence failure.
var ErrStorage = errors.New("storage failure")

// Store reads and writes clock state. It performs no validation.
type Store struct {
	kv kv.Store
}

// New returns a Store backed by the given key/value store.
func New(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// Load returns the persisted record. Missing keys read as empty.
func (s *Store) Load() (clockstate.Record, error) {
	r := clockstate.NewRecord()
	for i, o := range clockstate.Options {
		v, _, err := s.kv.Get(o.Key())
		if err != nil {
			return clockstate.Record{}, storageErr("load", err)
		}
		r.Slots[i] = v
	}
	date, _, err := s.kv.Get(DateKey)
	if err != nil {
		return clockstate.Record{}, storageErr("load", err)
	}
	r.Date = date
	return r, nil
}

// Save writes every slot of r in one update.
func (s *Store) Save(r clockstate.Record) error {
	values := make(map[string]string, len(clockstate.Options)+1)
	for _, o := range clockstate.Options {
		values[o.Key()] = r.Get(o)
	}
	values[DateKey] = r.Date
	if err := s.kv.Set(values); err != nil {
		return storageErr("save", err)
	}
	return nil
}

// Clear resets the record to all-empty. The deadline is left alone.
func (s *Store) Clear() error {
	return s.Save(clockstate.NewRecord())
}

// LoadDeadline returns the raw deadline, empty when none is armed.
func (s *Store) LoadDeadline() (string, error) {
	v, _, err := s.kv.Get(DeadlineKey)
	if err != nil {
		return "", storageErr("load deadline", err)
	}
	return v, nil
}

// SaveDeadline writes the raw deadline; an empty value disarms it.
func (s *Store) SaveDeadline(value string) error {
	if err := s.kv.Set(map[string]string{DeadlineKey: value}); err != nil {
		return storageErr("save deadline", err)
	}
	return nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
