package driving

import (
	"context"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

// OpenSessionRequest starts an editing session.
// Descriptor seeds the form; nil means a fresh descriptor with defaults.
type OpenSessionRequest struct {
	Descriptor *domain.SourceDescriptor `json:"descriptor,omitempty"`
}

// FieldUpdate sets one top-level descriptor field from form input.
// Kind is text, checkbox or number; empty infers it from the field.
type FieldUpdate struct {
	Field string `json:"field"`
	Value any    `json:"value"`
	Kind  string `json:"kind,omitempty"`
}

// ItemUpdate sets one field of a list item
type ItemUpdate struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// EditorService drives descriptor editing sessions (admin only).
// Every mutating call returns the session's new state.
type EditorService interface {
	// Open creates a new session in form mode
	Open(ctx context.Context, creatorID string, req OpenSessionRequest) (*domain.EditorSession, error)

	// Get retrieves a session
	Get(ctx context.Context, id string) (*domain.EditorSession, error)

	// Discard deletes a session without submitting it
	Discard(ctx context.Context, id string) error

	// SwitchMode moves between form and json. A json parse failure is
	// reported in the returned state, not as an error.
	SwitchMode(ctx context.Context, id string, mode domain.Mode) (*domain.EditorSession, error)

	// SetText replaces the raw json text (json mode only)
	SetText(ctx context.Context, id string, text string) (*domain.EditorSession, error)

	// SetFields applies scalar field updates in order (form mode only)
	SetFields(ctx context.Context, id string, updates []FieldUpdate) (*domain.EditorSession, error)

	// AddItem appends a default item to a list and returns its key
	AddItem(ctx context.Context, id string, list string) (*domain.EditorSession, string, error)

	// UpdateItem changes one field of the item identified by ref (key or index)
	UpdateItem(ctx context.Context, id string, list string, ref string, update ItemUpdate) (*domain.EditorSession, error)

	// RemoveItem removes the item identified by ref (key or index)
	RemoveItem(ctx context.Context, id string, list string, ref string) (*domain.EditorSession, error)

	// SetMapping maps an external response path to an internal field
	SetMapping(ctx context.Context, id string, external, internal string) (*domain.EditorSession, error)

	// RemoveMapping drops a response mapping
	RemoveMapping(ctx context.Context, id string, external string) (*domain.EditorSession, error)

	// SetHeader sets an upstream request header
	SetHeader(ctx context.Context, id string, name, value string) (*domain.EditorSession, error)

	// RemoveHeader drops an upstream request header
	RemoveHeader(ctx context.Context, id string, name string) (*domain.EditorSession, error)

	// Submit builds the payload and creates the source. The session is
	// discarded on success and kept on failure.
	Submit(ctx context.Context, id string, creatorID string) (*domain.Source, error)
}
