package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSourceDescriptorDefaults(t *testing.T) {
	d := NewSourceDescriptor()

	if d.Method != MethodGet {
		t.Errorf("expected method GET, got %s", d.Method)
	}
	if !d.IsActive {
		t.Error("expected is_active to default to true")
	}
	if d.AuthRequired {
		t.Error("expected auth_required to default to false")
	}
	if d.RateLimit != nil {
		t.Errorf("expected rate_limit absent, got %v", *d.RateLimit)
	}
	if d.RequestTimeout == nil || *d.RequestTimeout != 30 {
		t.Errorf("expected request_timeout 30, got %v", d.RequestTimeout)
	}
	if d.MaxPagesForBackendFilters == nil || *d.MaxPagesForBackendFilters != 5 {
		t.Errorf("expected max_pages_for_backend_filters 5, got %v", d.MaxPagesForBackendFilters)
	}
	if d.PaginationStyle != PaginationStartLimit {
		t.Errorf("expected pagination_style start_limit, got %s", d.PaginationStyle)
	}
	if d.Mapping == nil || d.Headers == nil {
		t.Error("expected mapping and headers to be empty maps")
	}
	if d.APIFilters == nil || len(d.APIFilters) != 0 {
		t.Error("expected api_filters to be an empty list")
	}
	if d.BackendFilters == nil || len(d.BackendFilters) != 0 {
		t.Error("expected backend_filters to be an empty list")
	}
}

func TestItemDefaults(t *testing.T) {
	q := NewQueryParamDescriptor()
	if q.Type != FieldTypeString || q.Required || !q.UserEditable || q.Hidden {
		t.Errorf("unexpected query param defaults: %+v", q)
	}
	if q.Options == nil {
		t.Error("expected options to be an empty list")
	}

	f := NewFilterDescriptor()
	if f.Type != FieldTypeString || !f.Filterable {
		t.Errorf("unexpected filter defaults: %+v", f)
	}
	if f.Options == nil || f.Operators == nil {
		t.Error("expected options and operators to be empty lists")
	}
}

func TestUnmarshalAppliesBooleanDefaults(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		userEditable bool
		filterable   bool
	}{
		{"absent", `{"api_filters":[{"key":"a"}],"backend_filters":[{"key":"b"}]}`, true, true},
		{"explicit false", `{"api_filters":[{"key":"a","user_editable":false}],"backend_filters":[{"key":"b","filterable":false}]}`, false, false},
		{"explicit true", `{"api_filters":[{"key":"a","user_editable":true}],"backend_filters":[{"key":"b","filterable":true}]}`, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d SourceDescriptor
			if err := json.Unmarshal([]byte(tt.data), &d); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.APIFilters[0].UserEditable != tt.userEditable {
				t.Errorf("expected user_editable %v, got %v", tt.userEditable, d.APIFilters[0].UserEditable)
			}
			if d.BackendFilters[0].Filterable != tt.filterable {
				t.Errorf("expected filterable %v, got %v", tt.filterable, d.BackendFilters[0].Filterable)
			}
		})
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	rate := 2.5
	d := NewSourceDescriptor()
	d.RateLimit = &rate
	d.Mapping["$.id"] = "id"
	d.Headers["Accept"] = "application/json"
	d.APIFilters = append(d.APIFilters, QueryParamDescriptor{Key: "q", Options: []string{"a"}})
	d.BackendFilters = append(d.BackendFilters, FilterDescriptor{Key: "f", Operators: []string{"eq"}})

	c := d.Clone()
	c.Mapping["$.name"] = "name"
	c.Headers["Accept"] = "text/plain"
	c.APIFilters[0].Options[0] = "changed"
	c.BackendFilters[0].Operators[0] = "neq"
	*c.RateLimit = 9
	*c.RequestTimeout = 99
	*c.MaxPagesForBackendFilters = 1

	if len(d.Mapping) != 1 {
		t.Errorf("expected original mapping untouched, got %v", d.Mapping)
	}
	if d.Headers["Accept"] != "application/json" {
		t.Errorf("expected original header untouched, got %s", d.Headers["Accept"])
	}
	if d.APIFilters[0].Options[0] != "a" {
		t.Errorf("expected original options untouched, got %v", d.APIFilters[0].Options)
	}
	if d.BackendFilters[0].Operators[0] != "eq" {
		t.Errorf("expected original operators untouched, got %v", d.BackendFilters[0].Operators)
	}
	if *d.RateLimit != 2.5 || *d.RequestTimeout != 30 || *d.MaxPagesForBackendFilters != 5 {
		t.Error("expected original numbers untouched")
	}
}

func TestHTTPMethodValid(t *testing.T) {
	for _, m := range []HTTPMethod{MethodGet, MethodPost, MethodPut, MethodDelete} {
		if !m.Valid() {
			t.Errorf("expected %s to be valid", m)
		}
	}
	if HTTPMethod("PATCH").Valid() {
		t.Error("expected PATCH to be invalid")
	}
}

func TestLengthProblems(t *testing.T) {
	d := NewSourceDescriptor()
	d.Name = strings.Repeat("n", MaxNameLength)
	d.Endpoint = strings.Repeat("e", MaxEndpointLength)
	d.Description = strings.Repeat("é", MaxDescriptionLength)
	if got := d.LengthProblems(); len(got) != 0 {
		t.Fatalf("limits are inclusive and counted in characters, got %v", got)
	}

	d.Name += "n"
	d.Endpoint += "e"
	d.Description += "d"
	want := []string{
		"name exceeds 100 characters",
		"endpoint exceeds 255 characters",
		"description exceeds 500 characters",
	}
	got := d.LengthProblems()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("problem %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
