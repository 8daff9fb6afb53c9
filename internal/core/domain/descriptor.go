package domain

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// HTTPMethod is the verb used when calling the third-party API
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DELETE"
)

// Valid reports whether m is one of the supported methods
func (m HTTPMethod) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return true
	}
	return false
}

// PaginationStyle describes how the upstream API pages its results
type PaginationStyle string

const (
	PaginationStartLimit  PaginationStyle = "start_limit"
	PaginationPageLimit   PaginationStyle = "page_limit"
	PaginationOffsetLimit PaginationStyle = "offset_limit"
)

// FieldType is the value type of a filter descriptor
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeSelect  FieldType = "select"
)

// FieldTypes lists every supported field type in display order
var FieldTypes = []FieldType{FieldTypeString, FieldTypeNumber, FieldTypeBoolean, FieldTypeSelect}

// Defaults applied to a freshly opened descriptor
const (
	DefaultRequestTimeout            = 30.0
	DefaultMaxPagesForBackendFilters = 5
)

// Stored length limits, counted in characters
const (
	MaxNameLength        = 100
	MaxEndpointLength    = 255
	MaxDescriptionLength = 500
)

// SourceDescriptor is the declarative configuration of one third-party API integration.
// It is the wire shape exchanged with the sources API.
type SourceDescriptor struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Endpoint    string     `json:"endpoint"`
	Method      HTTPMethod `json:"method"`

	// Mapping maps an external field path in the API response to an internal field name
	Mapping map[string]string `json:"mapping"`

	APIFilters     []QueryParamDescriptor `json:"api_filters"`
	BackendFilters []FilterDescriptor     `json:"backend_filters"`

	IsActive     bool   `json:"is_active"`
	AuthRequired bool   `json:"auth_required"`
	APIKey       string `json:"api_key,omitempty"`

	RateLimit      *float64 `json:"rate_limit,omitempty"`
	RequestTimeout *float64 `json:"request_timeout"`

	SupportsPagination        bool            `json:"supports_pagination"`
	MaxPagesForBackendFilters *int            `json:"max_pages_for_backend_filters"`
	PaginationStyle           PaginationStyle `json:"pagination_style,omitempty"`

	Headers map[string]string `json:"headers"`
}

// QueryParamDescriptor is an outbound filter sent upstream as a request parameter
type QueryParamDescriptor struct {
	Key          string    `json:"key"`
	Type         FieldType `json:"type"`
	Label        string    `json:"label,omitempty"`
	Default      string    `json:"default,omitempty"`
	Required     bool      `json:"required"`
	UserEditable bool      `json:"user_editable"`
	Hidden       bool      `json:"hidden"`
	Options      []string  `json:"options"`
	APIParam     string    `json:"api_param,omitempty"`
}

// FilterDescriptor is an inbound filter extracted from the API response
// and applied on the backend
type FilterDescriptor struct {
	Key        string    `json:"key"`
	Type       FieldType `json:"type"`
	Label      string    `json:"label,omitempty"`
	Filterable bool      `json:"filterable"`
	Options    []string  `json:"options"`
	Path       string    `json:"path,omitempty"`

	// Operators restricts the comparison operators offered for this filter.
	// Empty means the default set for Type applies.
	Operators []string `json:"operators"`
}

// NewSourceDescriptor returns a descriptor populated with the editor defaults
func NewSourceDescriptor() SourceDescriptor {
	timeout := DefaultRequestTimeout
	maxPages := DefaultMaxPagesForBackendFilters
	return SourceDescriptor{
		Method:                    MethodGet,
		Mapping:                   map[string]string{},
		APIFilters:                []QueryParamDescriptor{},
		BackendFilters:            []FilterDescriptor{},
		IsActive:                  true,
		RequestTimeout:            &timeout,
		MaxPagesForBackendFilters: &maxPages,
		PaginationStyle:           PaginationStartLimit,
		Headers:                   map[string]string{},
	}
}

// NewQueryParamDescriptor returns an api filter with its type defaults
func NewQueryParamDescriptor() QueryParamDescriptor {
	return QueryParamDescriptor{
		Type:         FieldTypeString,
		UserEditable: true,
		Options:      []string{},
	}
}

// NewFilterDescriptor returns a backend filter with its type defaults
func NewFilterDescriptor() FilterDescriptor {
	return FilterDescriptor{
		Type:       FieldTypeString,
		Filterable: true,
		Options:    []string{},
		Operators:  []string{},
	}
}

// UnmarshalJSON applies the user_editable default when the key is absent
func (q *QueryParamDescriptor) UnmarshalJSON(data []byte) error {
	type plain QueryParamDescriptor
	p := plain{UserEditable: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*q = QueryParamDescriptor(p)
	return nil
}

// UnmarshalJSON applies the filterable default when the key is absent
func (f *FilterDescriptor) UnmarshalJSON(data []byte) error {
	type plain FilterDescriptor
	p := plain{Filterable: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = FilterDescriptor(p)
	return nil
}

// LengthProblems lists every text field longer than its stored limit
func (d SourceDescriptor) LengthProblems() []string {
	var problems []string
	check := func(field, value string, limit int) {
		if utf8.RuneCountInString(value) > limit {
			problems = append(problems, fmt.Sprintf("%s exceeds %d characters", field, limit))
		}
	}
	check("name", d.Name, MaxNameLength)
	check("endpoint", d.Endpoint, MaxEndpointLength)
	check("description", d.Description, MaxDescriptionLength)
	return problems
}

// Clone returns a deep copy so callers can mutate the result without
// touching the receiver's slices or maps
func (d SourceDescriptor) Clone() SourceDescriptor {
	out := d
	out.Mapping = cloneStringMap(d.Mapping)
	out.Headers = cloneStringMap(d.Headers)
	if d.APIFilters != nil {
		out.APIFilters = make([]QueryParamDescriptor, len(d.APIFilters))
		for i, f := range d.APIFilters {
			f.Options = cloneStrings(f.Options)
			out.APIFilters[i] = f
		}
	}
	if d.BackendFilters != nil {
		out.BackendFilters = make([]FilterDescriptor, len(d.BackendFilters))
		for i, f := range d.BackendFilters {
			f.Options = cloneStrings(f.Options)
			f.Operators = cloneStrings(f.Operators)
			out.BackendFilters[i] = f
		}
	}
	if d.RateLimit != nil {
		v := *d.RateLimit
		out.RateLimit = &v
	}
	if d.RequestTimeout != nil {
		v := *d.RequestTimeout
		out.RequestTimeout = &v
	}
	if d.MaxPagesForBackendFilters != nil {
		v := *d.MaxPagesForBackendFilters
		out.MaxPagesForBackendFilters = &v
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
