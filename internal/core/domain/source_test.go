package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSourceJSONIsFlat(t *testing.T) {
	now := time.Now()
	d := NewSourceDescriptor()
	d.Name = "CoinAPI"
	d.Endpoint = "https://rest.coinapi.io/v1/assets"
	source := &Source{
		ID:               "source-123",
		SourceDescriptor: d,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        "acct-1",
	}

	data, err := json.Marshal(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw["id"] != "source-123" {
		t.Errorf("expected id source-123, got %v", raw["id"])
	}
	if raw["name"] != "CoinAPI" {
		t.Errorf("expected name CoinAPI, got %v", raw["name"])
	}
	if _, ok := raw["SourceDescriptor"]; ok {
		t.Error("expected descriptor fields to be inlined")
	}
}

func TestSourceRedacted(t *testing.T) {
	d := NewSourceDescriptor()
	d.APIKey = "super-secret"
	d.Headers["X-Trace"] = "1"
	source := &Source{ID: "source-1", SourceDescriptor: d}

	r := source.Redacted()
	if r.APIKey != "" {
		t.Errorf("expected api_key redacted, got %q", r.APIKey)
	}
	if !r.HasAPIKey {
		t.Error("expected has_api_key true")
	}
	if source.APIKey != "super-secret" {
		t.Error("expected original source untouched")
	}

	r.Headers["X-Trace"] = "2"
	if source.Headers["X-Trace"] != "1" {
		t.Error("expected redacted copy not to alias headers")
	}

	data, _ := json.Marshal(r)
	if strings.Contains(string(data), "super-secret") {
		t.Errorf("redacted JSON leaked api key: %s", data)
	}
}

func TestSourceRedactedWithoutKey(t *testing.T) {
	source := &Source{ID: "source-1", SourceDescriptor: NewSourceDescriptor()}
	if source.Redacted().HasAPIKey {
		t.Error("expected has_api_key false")
	}
}
