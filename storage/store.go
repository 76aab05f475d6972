package storage

import (
	"sync"

	"vehicle-dashboard/models"
	"vehicle-dashboard/utils"
)

// Store owns the process-lifetime dataset cache. The default dataset is
// loaded from its source exactly once, on first access, and retained until
// process exit: an explicit lazily-initialized singleton rather than an
// ambient global. Uploaded datasets are held per session and never touch
// the default.
type Store struct {
	source DatasetSource
	logger *utils.Logger

	once    sync.Once
	def     *models.Dataset
	loadErr error

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	dataset  *models.Dataset
	filename string
	err      error
}

// SourceInfo describes where a resolved dataset came from, for the sidebar
// source note and the load-error banner.
type SourceInfo struct {
	Note string
	Err  error
}

// NewStore creates a Store over the given source.
func NewStore(source DatasetSource, logger *utils.Logger) *Store {
	return &Store{
		source:   source,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// Default returns the cached default dataset, loading it on first access.
// A load failure is remembered and surfaced to every render, never fatal:
// the empty dataset is substituted so all views stay displayable.
func (s *Store) Default() (*models.Dataset, error) {
	s.once.Do(func() {
		ds, err := s.source.Load()
		if err != nil {
			s.logger.Error("[store] Dataset load failed: %v", err)
			s.def = models.EmptyDataset()
			s.loadErr = err
			return
		}
		s.def = ds
		s.logger.Info("[store] Loaded %d listings from %s", ds.Len(), s.source.Describe())
	})
	return s.def, s.loadErr
}

// PutSession stores an uploaded dataset under the given session ID. A
// failed parse stores the empty dataset plus the error, matching the
// default-load failure behavior.
func (s *Store) PutSession(id, filename string, ds *models.Dataset, err error) {
	if ds == nil {
		ds = models.EmptyDataset()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{dataset: ds, filename: filename, err: err}
}

// ClearSession drops the uploaded dataset for the session, reverting it to
// the default.
func (s *Store) ClearSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// HasSession reports whether the session currently has an uploaded dataset.
func (s *Store) HasSession(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// Resolve returns the dataset a session should see: its own upload when one
// exists, the shared default otherwise. Every session holds a reference to
// an immutable dataset, so no copy is made.
func (s *Store) Resolve(sessionID string) (*models.Dataset, SourceInfo) {
	if sessionID != "" {
		s.mu.RLock()
		sess, ok := s.sessions[sessionID]
		s.mu.RUnlock()
		if ok {
			return sess.dataset, SourceInfo{Note: "Custom dataset: " + sess.filename, Err: sess.err}
		}
	}

	ds, err := s.Default()
	return ds, SourceInfo{Note: "Using default dataset: " + s.source.Describe(), Err: err}
}
