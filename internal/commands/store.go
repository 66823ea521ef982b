// Package commands keeps a small named-command reference: shell snippets the
// operator wants to remember, stored as one document of name -> description.
package commands

import (
	"encoding/json"
	"fmt"
	"sync"

	"devtracker/internal/app"
)

const commandsKey = "commands"

// KVStore provides simple kv data storage.
type KVStore interface {
	ReadKey(key []byte) ([]byte, error)
	UpdateKey(key []byte, data []byte) error
}

// Store is a crud store for named commands. Mutating operations are
// serialized, the backing document is read-modify-write.
type Store struct {
	store KVStore
	mu    sync.Mutex
}

// NewStore creates new Store instance.
func NewStore(store KVStore) *Store {
	return &Store{store: store}
}

// All returns every stored command.
func (s *Store) All() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Set creates or updates one command and returns the full set.
func (s *Store) Set(cmd string, desc string) (map[string]string, error) {
	if cmd == "" || desc == "" {
		return nil, app.InvalidRequestError("cmd and desc required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	all[cmd] = desc
	if err := s.save(all); err != nil {
		return nil, err
	}

	return all, nil
}

// Delete removes one command and returns the remaining set.
func (s *Store) Delete(cmd string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	if _, ok := all[cmd]; !ok {
		return nil, app.NotFoundError("command not found: " + cmd)
	}
	delete(all, cmd)
	if err := s.save(all); err != nil {
		return nil, err
	}

	return all, nil
}

// Rename moves a command to a new name, optionally replacing its
// description, and returns the full set.
func (s *Store) Rename(oldCmd string, newCmd string, desc string) (map[string]string, error) {
	if oldCmd == "" || newCmd == "" {
		return nil, app.InvalidRequestError("oldCmd and newCmd required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	value, ok := all[oldCmd]
	if !ok {
		return nil, app.NotFoundError("command not found: " + oldCmd)
	}
	if desc != "" {
		value = desc
	}
	delete(all, oldCmd)
	all[newCmd] = value
	if err := s.save(all); err != nil {
		return nil, err
	}

	return all, nil
}

func (s *Store) load() (map[string]string, error) {
	data, err := s.store.ReadKey([]byte(commandsKey))
	if err != nil {
		return nil, fmt.Errorf("reading commands: %w", err)
	}
	if data == nil {
		return make(map[string]string), nil
	}

	var all map[string]string
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("unmarshalling commands: %w", err)
	}
	if all == nil {
		all = make(map[string]string)
	}

	return all, nil
}

func (s *Store) save(all map[string]string) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshalling commands: %w", err)
	}

	return s.store.UpdateKey([]byte(commandsKey), data)
}
