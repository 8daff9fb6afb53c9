package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/editor"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driving"
	"github.com/custodia-labs/descriptor-studio/internal/idgen"
)

// Ensure editorService implements EditorService
var _ driving.EditorService = (*editorService)(nil)

const (
	submitLockPrefix  = "editor-submit:"
	sessionLockPrefix = "editor-session:"
	sessionLockPoll   = 10 * time.Millisecond
)

// EditorConfig holds editor session settings
type EditorConfig struct {
	// DraftTTL is how long an untouched session survives
	DraftTTL time.Duration

	// SubmitLockTTL bounds how long a crashed submit can block the next one
	SubmitLockTTL time.Duration

	// SessionLockTTL bounds one read-modify-write of a session
	SessionLockTTL time.Duration

	// SessionLockWait is how long a write waits for a concurrent one
	// before failing with ErrSessionBusy
	SessionLockWait time.Duration
}

// DefaultEditorConfig returns the settings used when none are configured
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		DraftTTL:        24 * time.Hour,
		SubmitLockTTL:   30 * time.Second,
		SessionLockTTL:  5 * time.Second,
		SessionLockWait: 2 * time.Second,
	}
}

// editorService implements the EditorService interface
type editorService struct {
	drafts     driven.DraftStore
	lock       driven.DistributedLock
	sources    driving.SourceService
	controller *editor.Controller
	config     EditorConfig
	logger     *slog.Logger
}

// NewEditorService creates a new EditorService
func NewEditorService(
	drafts driven.DraftStore,
	lock driven.DistributedLock,
	sources driving.SourceService,
	controller *editor.Controller,
	config EditorConfig,
	logger *slog.Logger,
) driving.EditorService {
	if controller == nil {
		controller = editor.NewController()
	}
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultEditorConfig()
	if config.DraftTTL <= 0 {
		config.DraftTTL = defaults.DraftTTL
	}
	if config.SubmitLockTTL <= 0 {
		config.SubmitLockTTL = defaults.SubmitLockTTL
	}
	if config.SessionLockTTL <= 0 {
		config.SessionLockTTL = defaults.SessionLockTTL
	}
	if config.SessionLockWait <= 0 {
		config.SessionLockWait = defaults.SessionLockWait
	}
	return &editorService{
		drafts:     drafts,
		lock:       lock,
		sources:    sources,
		controller: controller,
		config:     config,
		logger:     logger,
	}
}

// Open creates a new session in form mode
func (s *editorService) Open(ctx context.Context, creatorID string, req driving.OpenSessionRequest) (*domain.EditorSession, error) {
	id, err := idgen.SessionID()
	if err != nil {
		return nil, err
	}

	state := s.controller.New()
	if req.Descriptor != nil {
		state = s.controller.Open(*req.Descriptor)
	}

	now := time.Now()
	session := &domain.EditorSession{
		ID:        id,
		State:     state,
		CreatedBy: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.config.DraftTTL),
	}
	if err := s.drafts.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Debug("editor session opened", "session_id", id, "created_by", creatorID)
	return session, nil
}

// Get retrieves a session
func (s *editorService) Get(ctx context.Context, id string) (*domain.EditorSession, error) {
	return s.drafts.Get(ctx, id)
}

// Discard deletes a session without submitting it
func (s *editorService) Discard(ctx context.Context, id string) error {
	if _, err := s.drafts.Get(ctx, id); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, id)
}

// SwitchMode moves the session between form and json
func (s *editorService) SwitchMode(ctx context.Context, id string, mode domain.Mode) (*domain.EditorSession, error) {
	return s.update(ctx, id, func(state domain.EditorState) (domain.EditorState, error) {
		next, err := s.controller.SwitchMode(state, mode)
		if editor.IsInvalidJSON(err) {
			// the failure is carried in next.Error and the session stays usable
			return next, nil
		}
		return next, err
	})
}

// SetText replaces the raw json text
func (s *editorService) SetText(ctx context.Context, id string, text string) (*domain.EditorSession, error) {
	return s.update(ctx, id, func(state domain.EditorState) (domain.EditorState, error) {
		return s.controller.SetText(state, text)
	})
}

// SetFields applies scalar updates in order. One bad update rejects the batch.
func (s *editorService) SetFields(ctx context.Context, id string, updates []driving.FieldUpdate) (*domain.EditorSession, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no field updates", domain.ErrInvalidInput)
	}
	return s.update(ctx, id, func(state domain.EditorState) (domain.EditorState, error) {
		var err error
		for _, u := range updates {
			state, err = s.controller.SetScalar(state, u.Field, u.Value, editor.ScalarKind(u.Kind))
			if err != nil {
				return state, err
			}
		}
		return state, nil
	})
}

// AddItem appends a default item and returns its key
func (s *editorService) AddItem(ctx context.Context, id string, list string) (*domain.EditorSession, string, error) {
	name, err := editor.ParseListName(list)
	if err != nil {
		return nil, "", err
	}
	var key string
	session, err := s.update(ctx, id, func(state domain.EditorState) (domain.EditorState, error) {
		next, k, err := s.controller.AddItem(state, name)
		key = k
		return next, err
	})
	if err != nil {
		return nil, "", err
	}
	return session, key, nil
}

// UpdateItem changes one field of an item
func (s *editorService) UpdateItem(ctx context.Context, id string, list string, ref string, update driving.ItemUpdate) (*domain.EditorSession, error) {
	name, err := editor.ParseListName(list)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(state domain.EditorState) (domain.EditorState, error) {
		index, err := s.controller.ItemIndex(state, name, ref)
		if err != nil {
			return state, err
		}
		return s.controller.UpdateItem(state, name, index, update.Field, update.Value)
	})
}

// RemoveItem removes an item
func (s *editorService) RemoveItem(ctx context.Context, id string, list string, ref string) (*domain.EditorSession, error) {
	name, err := editor.ParseListName(list)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(state domain.EditorState) (domain.EditorState, error) {
		index, err := s.controller.ItemIndex(state, name, ref)
		if err != nil {
			return state, err
		}
		return s.controller.RemoveItem(state, name, index)
	})
}

// SetMapping maps an external response path to an internal field
func (s *editorService) SetMapping(ctx context.Context, id string, external, internal string) (*domain.EditorSession, error) {
	return s.update(ctx, id, func(state domain.EditorState) (domain.EditorState, error) {
		return s.controller.SetMapping(state, external, internal)
	})
}

// RemoveMapping drops a response mapping
func (s *editorService) RemoveMapping(ctx context.Context, id string, external string) (*domain.EditorSession, error) {
	return s.update(ctx, id, func(state domain.EditorState) (domain.EditorState, error) {
		return s.controller.RemoveMapping(state, external)
	})
}

// SetHeader sets an upstream request header
func (s *editorService) SetHeader(ctx context.Context, id string, name, value string) (*domain.EditorSession, error) {
	return s.update(ctx, id, func(state domain.EditorState) (domain.EditorState, error) {
		return s.controller.SetHeader(state, name, value)
	})
}

// RemoveHeader drops an upstream request header
func (s *editorService) RemoveHeader(ctx context.Context, id string, name string) (*domain.EditorSession, error) {
	return s.update(ctx, id, func(state domain.EditorState) (domain.EditorState, error) {
		return s.controller.RemoveHeader(state, name)
	})
}

// Submit builds the payload and creates the source.
// Only one submit per session runs at a time; a concurrent call gets
// ErrSubmissionPending.
func (s *editorService) Submit(ctx context.Context, id string, creatorID string) (*domain.Source, error) {
	lockName := submitLockPrefix + id
	acquired, err := s.lock.Acquire(ctx, lockName, s.config.SubmitLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !acquired {
		return nil, domain.ErrSubmissionPending
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), lockName); err != nil {
			s.logger.Warn("failed to release submit lock", "session_id", id, "error", err)
		}
	}()

	// The payload is taken from the state at the moment pending is set.
	// Edits made while the create call runs stay in the session.
	var snapshot domain.EditorSession
	err = s.withSessionLock(ctx, id, func() error {
		session, err := s.drafts.Get(ctx, id)
		if err != nil {
			return err
		}
		session.Pending = true
		if err := s.drafts.Save(ctx, session); err != nil {
			return err
		}
		snapshot = *session
		return nil
	})
	if err != nil {
		return nil, err
	}

	source, submitErr := s.submit(ctx, &snapshot, creatorID)
	if submitErr != nil {
		s.clearPending(context.WithoutCancel(ctx), id)
		s.logger.Info("editor submit rejected", "session_id", id, "error", submitErr)
		return nil, submitErr
	}

	err = s.withSessionLock(ctx, id, func() error {
		return s.drafts.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("failed to discard submitted session", "session_id", id, "error", err)
	}
	return source, nil
}

// clearPending reloads the session so concurrent edits survive, then
// drops the pending flag
func (s *editorService) clearPending(ctx context.Context, id string) {
	err := s.withSessionLock(ctx, id, func() error {
		session, err := s.drafts.Get(ctx, id)
		if err != nil {
			return err
		}
		session.Pending = false
		return s.drafts.Save(ctx, session)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Error("failed to clear pending flag", "session_id", id, "error", err)
	}
}

func (s *editorService) submit(ctx context.Context, session *domain.EditorSession, creatorID string) (*domain.Source, error) {
	payload, err := editor.BuildPayload(session.State)
	if err != nil {
		return nil, err
	}
	source, err := s.sources.Create(ctx, creatorID, payload)
	if err != nil {
		return nil, &editor.SubmitError{Err: err}
	}
	return source, nil
}

// update loads a session, applies fn and stores the result with a
// refreshed expiry. Nothing is stored when fn fails. The whole cycle runs
// under the session lock so overlapping writes cannot drop each other.
func (s *editorService) update(ctx context.Context, id string, fn func(domain.EditorState) (domain.EditorState, error)) (*domain.EditorSession, error) {
	var out *domain.EditorSession
	err := s.withSessionLock(ctx, id, func() error {
		session, err := s.drafts.Get(ctx, id)
		if err != nil {
			return err
		}

		next, err := fn(session.State)
		if err != nil {
			return err
		}

		now := time.Now()
		session.State = next
		session.UpdatedAt = now
		session.ExpiresAt = now.Add(s.config.DraftTTL)
		if err := s.drafts.Save(ctx, session); err != nil {
			return err
		}
		out = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// withSessionLock runs fn while holding the per-session write lock,
// polling until SessionLockWait runs out
func (s *editorService) withSessionLock(ctx context.Context, id string, fn func() error) error {
	name := sessionLockPrefix + id
	deadline := time.Now().Add(s.config.SessionLockWait)
	for {
		acquired, err := s.lock.Acquire(ctx, name, s.config.SessionLockTTL)
		if err != nil {
			return fmt.Errorf("acquire session lock: %w", err)
		}
		if acquired {
			break
		}
		if time.Now().After(deadline) {
			return domain.ErrSessionBusy
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sessionLockPoll):
		}
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), name); err != nil {
			s.logger.Warn("failed to release session lock", "session_id", id, "error", err)
		}
	}()
	return fn()
}
