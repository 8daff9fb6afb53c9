package domain

import "time"

// Source is a persisted descriptor together with its identity
type Source struct {
	ID string `json:"id"`
	SourceDescriptor
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by,omitempty"` // User ID of creator
}

// Redacted returns a copy safe to hand to API clients.
// The api key never leaves the service; HasAPIKey tells the UI one is set.
func (s *Source) Redacted() *RedactedSource {
	out := &RedactedSource{Source: *s, HasAPIKey: s.APIKey != ""}
	out.Source.SourceDescriptor = s.SourceDescriptor.Clone()
	out.Source.APIKey = ""
	return out
}

// RedactedSource is the client-facing view of a Source
type RedactedSource struct {
	Source
	HasAPIKey bool `json:"has_api_key"`
}

// SourceFilters is the filter configuration of one source, used by the search UI
type SourceFilters struct {
	SourceID       string                 `json:"source_id"`
	SourceName     string                 `json:"source_name"`
	APIFilters     []QueryParamDescriptor `json:"api_filters"`
	BackendFilters []FilterDescriptor     `json:"backend_filters"`
}
