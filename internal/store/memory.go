package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryFileStore struct {
	mu    sync.Mutex
	files map[uuid.UUID]GeneratedFile
}

// NewMemoryFileStore returns a process-local FileStore, used when no database
// is configured.
func NewMemoryFileStore() FileStore {
	return &memoryFileStore{files: make(map[uuid.UUID]GeneratedFile)}
}

func (s *memoryFileStore) Save(_ context.Context, f *GeneratedFile) error {
	name, err := validName(f.FileName)
	if err != nil {
		return err
	}
	f.FileName = name
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[f.ID] = *f
	return nil
}

func (s *memoryFileStore) List(_ context.Context) ([]GeneratedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]GeneratedFile, 0, len(s.files))
	for _, f := range s.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryFileStore) Get(_ context.Context, id uuid.UUID) (*GeneratedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok {
		return nil, ErrFileNotFound
	}
	return &f, nil
}

func (s *memoryFileStore) Rename(_ context.Context, id uuid.UUID, fileName, filePath string) (*GeneratedFile, error) {
	name, err := validName(fileName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok {
		return nil, ErrFileNotFound
	}
	f.FileName = name
	f.FilePath = filePath
	s.files[id] = f
	return &f, nil
}

func (s *memoryFileStore) Delete(_ context.Context, id uuid.UUID) (*GeneratedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok {
		return nil, ErrFileNotFound
	}
	delete(s.files, id)
	return &f, nil
}
