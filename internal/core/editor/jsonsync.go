package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

// Serialize renders d as two-space indented JSON.
// Non-finite numbers are written as absent so encoding cannot fail.
func Serialize(d domain.SourceDescriptor) string {
	d = dropNonFinite(d)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		// only reachable if the descriptor grows a field json cannot encode
		return "{}"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Parse decodes descriptor text. The top-level value must be an object
// whose fields fit the descriptor types. Absent fields stay zero; no
// descriptor-level defaults are filled in.
func Parse(text string) (domain.SourceDescriptor, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		if !json.Valid([]byte(trimmed)) {
			return domain.SourceDescriptor{}, fmt.Errorf("%w: %s", domain.ErrInvalidJSON, syntaxDetail(trimmed))
		}
		return domain.SourceDescriptor{}, fmt.Errorf("%w: top-level value must be an object", domain.ErrInvalidJSON)
	}

	var d domain.SourceDescriptor
	if err := json.Unmarshal([]byte(trimmed), &d); err != nil {
		return domain.SourceDescriptor{}, fmt.Errorf("%w: %v", domain.ErrInvalidJSON, err)
	}
	return d, nil
}

func syntaxDetail(text string) string {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return err.Error()
	}
	return "malformed input"
}

func dropNonFinite(d domain.SourceDescriptor) domain.SourceDescriptor {
	finite := func(p *float64) bool { return p != nil && !math.IsNaN(*p) && !math.IsInf(*p, 0) }
	if d.RateLimit != nil && !finite(d.RateLimit) {
		d.RateLimit = nil
	}
	if d.RequestTimeout != nil && !finite(d.RequestTimeout) {
		d.RequestTimeout = nil
	}
	return d
}
