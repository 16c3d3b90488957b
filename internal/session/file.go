package session

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

// FileStore is a Store persisted as a JSON file, so signed-in sessions
// survive an application restart during development. Every mutation is
// written through; the Store interface carries no errors, so a failed
// write is logged rather than lost silently. Load errors on a missing file
// bootstrap an empty store.
type FileStore struct {
	mu       sync.Mutex
	path     string
	log      *zap.Logger
	Sessions map[string]map[string]string `json:"sessions"`
}

// NewFileStore returns a FileStore backed by path. Call Load before use.
func NewFileStore(path string, log *zap.Logger) *FileStore {
	return &FileStore{path: path, log: log, Sessions: make(map[string]map[string]string)}
}

// Load reads the backing file. A missing file is not an error: the store
// starts empty and the file is created on the first write.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.Sessions = make(map[string]map[string]string)
			return nil
		}
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(s); err != nil {
		return err
	}
	if s.Sessions == nil {
		s.Sessions = make(map[string]map[string]string)
	}
	return nil
}

// save writes the store to disk, logging a failed write. Caller holds the
// lock.
func (s *FileStore) save() {
	f, err := os.Create(s.path)
	if err != nil {
		s.log.Error("session snapshot write failed", zap.String("path", s.path), zap.Error(err))
		return
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(s); err != nil {
		s.log.Error("session snapshot write failed", zap.String("path", s.path), zap.Error(err))
	}
}

func (s *FileStore) Get(sid, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.Sessions[sid][key]
	return v, ok
}

func (s *FileStore) Set(sid, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Sessions[sid] == nil {
		s.Sessions[sid] = make(map[string]string)
	}
	s.Sessions[sid][key] = value
	s.save()
}

func (s *FileStore) Delete(sid, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Sessions[sid], key)
	s.save()
}

func (s *FileStore) Clear(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Sessions, sid)
	s.save()
}
