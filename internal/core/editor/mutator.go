package editor

import (
	"fmt"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

// ScalarKind is the input control a scalar value came from
type ScalarKind string

const (
	KindText     ScalarKind = "text"
	KindCheckbox ScalarKind = "checkbox"
	KindNumber   ScalarKind = "number"
)

// ListName names one of the two nested filter lists
type ListName string

const (
	ListAPIFilters     ListName = "api_filters"
	ListBackendFilters ListName = "backend_filters"
)

// ParseListName validates a list name taken from user input
func ParseListName(s string) (ListName, error) {
	switch ListName(s) {
	case ListAPIFilters, ListBackendFilters:
		return ListName(s), nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownList, s)
}

var scalarKinds = map[string]ScalarKind{
	"name":                          KindText,
	"description":                   KindText,
	"endpoint":                      KindText,
	"method":                        KindText,
	"api_key":                       KindText,
	"pagination_style":              KindText,
	"is_active":                     KindCheckbox,
	"auth_required":                 KindCheckbox,
	"supports_pagination":           KindCheckbox,
	"rate_limit":                    KindNumber,
	"request_timeout":               KindNumber,
	"max_pages_for_backend_filters": KindNumber,
}

// ScalarKindOf returns the input kind a top-level field expects
func ScalarKindOf(field string) (ScalarKind, error) {
	kind, ok := scalarKinds[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	return kind, nil
}

// SetScalar sets one top-level field. The field's own kind decides how raw
// is coerced; kind names the control the value came from and a mismatch
// is coerced rather than rejected. Malformed numbers clear the field.
// Only an unknown field is an error.
func SetScalar(d domain.SourceDescriptor, field string, raw any, kind ScalarKind) (domain.SourceDescriptor, error) {
	if _, err := ScalarKindOf(field); err != nil {
		return d, err
	}

	out := d.Clone()
	switch field {
	case "name":
		out.Name = asText(raw)
	case "description":
		out.Description = asText(raw)
	case "endpoint":
		out.Endpoint = asText(raw)
	case "method":
		out.Method = domain.HTTPMethod(asText(raw))
	case "api_key":
		out.APIKey = asText(raw)
	case "pagination_style":
		out.PaginationStyle = domain.PaginationStyle(asText(raw))
	case "is_active":
		out.IsActive = truthy(raw)
	case "auth_required":
		out.AuthRequired = truthy(raw)
	case "supports_pagination":
		out.SupportsPagination = truthy(raw)
	case "rate_limit":
		out.RateLimit = parseNumber(raw)
	case "request_timeout":
		out.RequestTimeout = parseNumber(raw)
	case "max_pages_for_backend_filters":
		out.MaxPagesForBackendFilters = parseInt(raw)
	}
	return out, nil
}

// ListLen returns the number of items in the named list
func ListLen(d domain.SourceDescriptor, list ListName) (int, error) {
	switch list {
	case ListAPIFilters:
		return len(d.APIFilters), nil
	case ListBackendFilters:
		return len(d.BackendFilters), nil
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrUnknownList, list)
}

// AddItem appends a default item to the named list
func AddItem(d domain.SourceDescriptor, list ListName) (domain.SourceDescriptor, error) {
	if _, err := ListLen(d, list); err != nil {
		return d, err
	}
	out := d.Clone()
	switch list {
	case ListAPIFilters:
		out.APIFilters = append(out.APIFilters, domain.NewQueryParamDescriptor())
	case ListBackendFilters:
		out.BackendFilters = append(out.BackendFilters, domain.NewFilterDescriptor())
	}
	return out, nil
}

// RemoveItem deletes the item at index; later items shift down by one
func RemoveItem(d domain.SourceDescriptor, list ListName, index int) (domain.SourceDescriptor, error) {
	if err := checkIndex(d, list, index); err != nil {
		return d, err
	}
	out := d.Clone()
	switch list {
	case ListAPIFilters:
		out.APIFilters = append(out.APIFilters[:index], out.APIFilters[index+1:]...)
	case ListBackendFilters:
		out.BackendFilters = append(out.BackendFilters[:index], out.BackendFilters[index+1:]...)
	}
	return out, nil
}

// UpdateItem replaces one field of the item at index.
// options and operators accept comma-separated text or a list.
func UpdateItem(d domain.SourceDescriptor, list ListName, index int, field string, raw any) (domain.SourceDescriptor, error) {
	if err := checkIndex(d, list, index); err != nil {
		return d, err
	}
	out := d.Clone()
	var err error
	switch list {
	case ListAPIFilters:
		err = updateQueryParam(&out.APIFilters[index], field, raw)
	case ListBackendFilters:
		err = updateFilter(&out.BackendFilters[index], field, raw)
	}
	if err != nil {
		return d, err
	}
	return out, nil
}

func updateQueryParam(q *domain.QueryParamDescriptor, field string, raw any) error {
	switch field {
	case "key":
		q.Key = asText(raw)
	case "type":
		q.Type = domain.FieldType(asText(raw))
	case "label":
		q.Label = asText(raw)
	case "default":
		q.Default = asText(raw)
	case "api_param":
		q.APIParam = asText(raw)
	case "required":
		q.Required = truthy(raw)
	case "user_editable":
		q.UserEditable = truthy(raw)
	case "hidden":
		q.Hidden = truthy(raw)
	case "options":
		q.Options = NormalizeList(raw)
	default:
		return fmt.Errorf("%w: api filter has no field %q", domain.ErrUnknownField, field)
	}
	return nil
}

func updateFilter(f *domain.FilterDescriptor, field string, raw any) error {
	switch field {
	case "key":
		f.Key = asText(raw)
	case "type":
		f.Type = domain.FieldType(asText(raw))
	case "label":
		f.Label = asText(raw)
	case "path":
		f.Path = asText(raw)
	case "filterable":
		f.Filterable = truthy(raw)
	case "options":
		f.Options = NormalizeList(raw)
	case "operators":
		f.Operators = NormalizeList(raw)
	default:
		return fmt.Errorf("%w: backend filter has no field %q", domain.ErrUnknownField, field)
	}
	return nil
}

func checkIndex(d domain.SourceDescriptor, list ListName, index int) error {
	n, err := ListLen(d, list)
	if err != nil {
		return err
	}
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %s[%d] (len %d)", domain.ErrIndexOutOfRange, list, index, n)
	}
	return nil
}

// SetMapping maps an external response path to an internal field name
func SetMapping(d domain.SourceDescriptor, external, internal string) (domain.SourceDescriptor, error) {
	if external == "" {
		return d, fmt.Errorf("%w: mapping path is empty", domain.ErrInvalidInput)
	}
	out := d.Clone()
	if out.Mapping == nil {
		out.Mapping = map[string]string{}
	}
	out.Mapping[external] = internal
	return out, nil
}

// RemoveMapping drops one mapping entry; missing paths are ignored
func RemoveMapping(d domain.SourceDescriptor, external string) domain.SourceDescriptor {
	out := d.Clone()
	delete(out.Mapping, external)
	return out
}

// SetHeader sets one request header sent upstream
func SetHeader(d domain.SourceDescriptor, name, value string) (domain.SourceDescriptor, error) {
	if name == "" {
		return d, fmt.Errorf("%w: header name is empty", domain.ErrInvalidInput)
	}
	out := d.Clone()
	if out.Headers == nil {
		out.Headers = map[string]string{}
	}
	out.Headers[name] = value
	return out, nil
}

// RemoveHeader drops one header; missing names are ignored
func RemoveHeader(d domain.SourceDescriptor, name string) domain.SourceDescriptor {
	out := d.Clone()
	delete(out.Headers, name)
	return out
}
