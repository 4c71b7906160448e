package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
)

// SessionRepository keeps sessions in memory and mirrors every change to a
// JSON snapshot file so sessions survive a restart.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	path     string // Empty disables the snapshot
	ready    atomic.Bool
	now      func() time.Time
}

var _ portsrepo.SessionRepositoryFacade = (*SessionRepository)(nil)

type snapshot struct {
	Sessions []domain.Session `json:"sessions"`
}

// NewSessionRepository returns an empty, not yet ready repository backed by path.
func NewSessionRepository(path string) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]domain.Session),
		path:     path,
		now:      time.Now,
	}
}

// Restore loads the snapshot. A missing file is an empty snapshot. On a
// malformed file the repository stays empty and the decode error is returned.
// Expired sessions are dropped. The repository is ready afterwards in every case.
func (r *SessionRepository) Restore(ctx context.Context) (int, error) {
	defer r.ready.Store(true)

	if r.path == "" {
		return 0, nil
	}
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read session snapshot %s: %w", r.path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return 0, fmt.Errorf("malformed session snapshot %s: %w", r.path, err)
	}

	now := r.now()
	restored := make(map[string]domain.Session, len(snap.Sessions))
	for _, s := range snap.Sessions {
		if s.ID == "" || s.Expired(now) {
			continue
		}
		restored[s.ID] = s
	}

	r.mu.Lock()
	r.sessions = restored
	r.mu.Unlock()
	return len(restored), nil
}

func (r *SessionRepository) Ready() bool {
	return r.ready.Load()
}

func (r *SessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (r *SessionRepository) SaveSession(ctx context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	if err := r.persistLocked(); err != nil {
		delete(r.sessions, session.ID)
		return err
	}
	return nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return nil
	}
	delete(r.sessions, sessionID)
	return r.persistLocked()
}

// persistLocked rewrites the snapshot through a temporary file and a rename. Callers hold mu.
func (r *SessionRepository) persistLocked() error {
	if r.path == "" {
		return nil
	}
	snap := snapshot{Sessions: make([]domain.Session, 0, len(r.sessions))}
	for _, s := range r.sessions {
		snap.Sessions = append(snap.Sessions, s)
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode session snapshot", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return apperrors.NewAppError(500, "failed to write session snapshot", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return apperrors.NewAppError(500, "failed to write session snapshot", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to write session snapshot", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return apperrors.NewAppError(500, "failed to replace session snapshot", err)
	}
	return nil
}
