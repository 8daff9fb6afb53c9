package domain

import "time"

// Mode is the active editing modality of a session
type Mode string

const (
	ModeForm Mode = "form"
	ModeJSON Mode = "json"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeForm || m == ModeJSON
}

// EditorError is the inline error shown beside the raw text editor
type EditorError string

const (
	EditorErrorNone        EditorError = ""
	EditorErrorInvalidJSON EditorError = "invalid_json"
)

// ItemKeys holds one surrogate key per list item, parallel to the
// descriptor's lists. Keys never appear in the descriptor itself.
type ItemKeys struct {
	APIFilters     []string `json:"api_filters"`
	BackendFilters []string `json:"backend_filters"`
}

// EditorState is the full state of one editing session.
// Model is authoritative in form mode, Text in json mode.
type EditorState struct {
	Model       SourceDescriptor `json:"model"`
	Keys        ItemKeys         `json:"keys"`
	Text        string           `json:"text"`
	Mode        Mode             `json:"mode"`
	Error       EditorError      `json:"error,omitempty"`
	ErrorDetail string           `json:"error_detail,omitempty"`
}

// EditorSession is a persisted draft of an EditorState
type EditorSession struct {
	ID        string      `json:"id"`
	State     EditorState `json:"state"`
	Pending   bool        `json:"pending"`
	CreatedBy string      `json:"created_by,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// IsExpired checks if the draft has passed its expiry
func (s *EditorSession) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
