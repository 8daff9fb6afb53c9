package domain

// Event topics published when sources change
const (
	TopicSourceCreated = "sources.source.created"
	TopicSourceDeleted = "sources.source.deleted"
)

// SourceCreated is published after a source is stored.
// The api key is never included.
type SourceCreated struct {
	Source *RedactedSource `json:"source"`
}

// SourceDeleted is published after a source is removed
type SourceDeleted struct {
	SourceID string `json:"source_id"`
}
