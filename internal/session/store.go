package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Backend persists the single serialized identity value.  Read reports
// whether a value was present at all so that "nothing stored" and "empty
// value" are distinguishable from read failures.
type Backend interface {
	Read() (data []byte, present bool, err error)
	Write(data []byte) error
	Clear() error
}

// FileBackend stores the identity as one JSON file on disk, the device
// equivalent of the browser's local-storage key.  Writes go through a
// temp file and rename so a crash mid-write never leaves a torn value.
type FileBackend struct {
	Path string
}

func (f *FileBackend) Read() ([]byte, bool, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileBackend) Write(data []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

func (f *FileBackend) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Store holds the active identity and keeps the persisted copy in sync.
// All writes are write-through: the in-memory identity and the backend
// value never diverge after a Login or Logout returns.
type Store struct {
	backend Backend
	active  *Identity
}

// NewStore builds a Store over an arbitrary backend.
func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// NewFileStore builds a Store persisting to the given file path.
func NewFileStore(path string) *Store {
	return NewStore(&FileBackend{Path: path})
}

// Restore loads a previously saved identity and makes it active.  Any
// failure to read, parse or validate the stored value clears it and
// reports "no identity"; corruption is never surfaced as an error.
func (s *Store) Restore() (Identity, bool) {
	data, present, err := s.backend.Read()
	if err != nil || !present {
		if err != nil {
			_ = s.backend.Clear()
		}
		return Identity{}, false
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil || !id.valid() {
		_ = s.backend.Clear()
		return Identity{}, false
	}
	s.active = &id
	return id, true
}

// Login makes id the active session, overwriting any prior identity in
// memory and in the persisted copy.
func (s *Store) Login(id Identity) error {
	if !id.valid() {
		return errors.New("session: identity missing id or role")
	}
	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	if err := s.backend.Write(data); err != nil {
		return err
	}
	s.active = &id
	return nil
}

// Logout clears the active identity and the persisted copy.
func (s *Store) Logout() error {
	s.active = nil
	return s.backend.Clear()
}

// Active returns the current identity, if any.
func (s *Store) Active() (Identity, bool) {
	if s.active == nil {
		return Identity{}, false
	}
	return *s.active, true
}

// IsAuthenticated reports whether an identity is active.
func (s *Store) IsAuthenticated() bool {
	return s.active != nil
}
