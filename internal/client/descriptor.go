package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/editor"
)

// ReadDescriptorText loads a descriptor file as JSON text.
// YAML files (.yaml, .yml) are converted to JSON first.
func ReadDescriptorText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLToJSON(data)
	default:
		return string(data), nil
	}
}

// YAMLToJSON converts a YAML document into JSON text
func YAMLToJSON(data []byte) (string, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidJSON, err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidJSON, err)
	}
	return string(out), nil
}

// Payload runs descriptor text through the same json-mode submission path
// the editor uses and returns the descriptor that would be sent.
func Payload(text string) (domain.SourceDescriptor, error) {
	return editor.BuildPayload(domain.EditorState{Mode: domain.ModeJSON, Text: text})
}

// Lint reports problems the server would reject or silently repair.
// An empty result means the descriptor is ready to create.
func Lint(d domain.SourceDescriptor) []string {
	var problems []string
	if strings.TrimSpace(d.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(d.Endpoint) == "" {
		problems = append(problems, "endpoint is required")
	}
	if !d.Method.Valid() {
		problems = append(problems, fmt.Sprintf("method %q is not one of GET, POST, PUT, DELETE", d.Method))
	}
	trimmed := d
	trimmed.Name = strings.TrimSpace(d.Name)
	trimmed.Endpoint = strings.TrimSpace(d.Endpoint)
	problems = append(problems, trimmed.LengthProblems()...)
	for i, f := range d.APIFilters {
		if f.Key == "" {
			problems = append(problems, fmt.Sprintf("api_filters[%d]: key is empty", i))
		}
	}
	for i, f := range d.BackendFilters {
		if f.Key == "" {
			problems = append(problems, fmt.Sprintf("backend_filters[%d]: key is empty", i))
		}
		allowed := domain.DefaultOperators(f.Type)
		for _, op := range f.Operators {
			if !lo.Contains(allowed, op) {
				problems = append(problems, fmt.Sprintf("backend_filters[%d]: operator %q not allowed for type %s", i, op, f.Type))
			}
		}
	}
	return problems
}
