package editor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/idgen"
)

// Controller applies mode transitions and edits to an EditorState.
// It holds no state of its own; every method takes a state and returns
// the next one, leaving the input untouched.
type Controller struct {
	newKey func() string
}

// NewController creates a controller that keys list items with nanoids
func NewController() *Controller {
	return &Controller{newKey: idgen.ItemKey}
}

// NewControllerWithKeys creates a controller with a custom item key source
func NewControllerWithKeys(newKey func() string) *Controller {
	return &Controller{newKey: newKey}
}

// New returns the state of a freshly opened editor: default model, form mode
func (c *Controller) New() domain.EditorState {
	return c.Open(domain.NewSourceDescriptor())
}

// Open starts a form-mode session on an existing descriptor
func (c *Controller) Open(d domain.SourceDescriptor) domain.EditorState {
	d = d.Clone()
	return domain.EditorState{
		Model: d,
		Keys:  c.freshKeys(d),
		Mode:  domain.ModeForm,
	}
}

// SwitchMode moves the session to target.
//
// Form to json always succeeds and re-serializes the model. Json to form
// parses the text; on failure the returned state stays in json mode with
// its text intact and Error set, and the parse error is returned.
func (c *Controller) SwitchMode(s domain.EditorState, target domain.Mode) (domain.EditorState, error) {
	if !target.Valid() {
		return s, fmt.Errorf("%w: mode %q", domain.ErrInvalidInput, target)
	}
	if s.Mode == target {
		return s, nil
	}

	switch target {
	case domain.ModeJSON:
		next := s
		next.Model = s.Model.Clone()
		next.Text = Serialize(s.Model)
		next.Mode = domain.ModeJSON
		next.Error, next.ErrorDetail = domain.EditorErrorNone, ""
		return next, nil
	default:
		parsed, err := Parse(s.Text)
		if err != nil {
			next := s
			next.Error = domain.EditorErrorInvalidJSON
			next.ErrorDetail = err.Error()
			return next, err
		}
		return domain.EditorState{
			Model: parsed,
			Keys:  c.freshKeys(parsed),
			Text:  s.Text,
			Mode:  domain.ModeForm,
		}, nil
	}
}

// SetText replaces the raw text buffer. Only valid in json mode.
// A previous parse error stays visible until the next transition.
func (c *Controller) SetText(s domain.EditorState, text string) (domain.EditorState, error) {
	if s.Mode != domain.ModeJSON {
		return s, fmt.Errorf("%w: text edits need json mode", domain.ErrWrongMode)
	}
	next := s
	next.Text = text
	return next, nil
}

// SetScalar sets a top-level field from form input
func (c *Controller) SetScalar(s domain.EditorState, field string, raw any, kind ScalarKind) (domain.EditorState, error) {
	return c.edit(s, func(d domain.SourceDescriptor) (domain.SourceDescriptor, error) {
		return SetScalar(d, field, raw, kind)
	})
}

// AddItem appends a default item and returns the new item's key
func (c *Controller) AddItem(s domain.EditorState, list ListName) (domain.EditorState, string, error) {
	next, err := c.edit(s, func(d domain.SourceDescriptor) (domain.SourceDescriptor, error) {
		return AddItem(d, list)
	})
	if err != nil {
		return s, "", err
	}
	key := c.newKey()
	keys := keysFor(&next.Keys, list)
	*keys = append(cloneKeys(*keys), key)
	return next, key, nil
}

// RemoveItem removes the item at index together with its key
func (c *Controller) RemoveItem(s domain.EditorState, list ListName, index int) (domain.EditorState, error) {
	next, err := c.edit(s, func(d domain.SourceDescriptor) (domain.SourceDescriptor, error) {
		return RemoveItem(d, list, index)
	})
	if err != nil {
		return s, err
	}
	keys := keysFor(&next.Keys, list)
	cp := cloneKeys(*keys)
	*keys = append(cp[:index], cp[index+1:]...)
	return next, nil
}

// UpdateItem changes one field of the item at index
func (c *Controller) UpdateItem(s domain.EditorState, list ListName, index int, field string, raw any) (domain.EditorState, error) {
	return c.edit(s, func(d domain.SourceDescriptor) (domain.SourceDescriptor, error) {
		return UpdateItem(d, list, index, field, raw)
	})
}

// SetMapping adds or replaces a response field mapping
func (c *Controller) SetMapping(s domain.EditorState, external, internal string) (domain.EditorState, error) {
	return c.edit(s, func(d domain.SourceDescriptor) (domain.SourceDescriptor, error) {
		return SetMapping(d, external, internal)
	})
}

// RemoveMapping drops a response field mapping
func (c *Controller) RemoveMapping(s domain.EditorState, external string) (domain.EditorState, error) {
	return c.edit(s, func(d domain.SourceDescriptor) (domain.SourceDescriptor, error) {
		return RemoveMapping(d, external), nil
	})
}

// SetHeader adds or replaces an upstream request header
func (c *Controller) SetHeader(s domain.EditorState, name, value string) (domain.EditorState, error) {
	return c.edit(s, func(d domain.SourceDescriptor) (domain.SourceDescriptor, error) {
		return SetHeader(d, name, value)
	})
}

// RemoveHeader drops an upstream request header
func (c *Controller) RemoveHeader(s domain.EditorState, name string) (domain.EditorState, error) {
	return c.edit(s, func(d domain.SourceDescriptor) (domain.SourceDescriptor, error) {
		return RemoveHeader(d, name), nil
	})
}

// ItemIndex resolves ref to a position in list. ref is either a
// surrogate key or a decimal index.
func (c *Controller) ItemIndex(s domain.EditorState, list ListName, ref string) (int, error) {
	n, err := ListLen(s.Model, list)
	if err != nil {
		return 0, err
	}
	keys := c.syncKeys(s, list)
	for i, k := range keys {
		if k == ref {
			return i, nil
		}
	}
	idx, convErr := strconv.Atoi(ref)
	if convErr != nil {
		return 0, fmt.Errorf("%w: no item %q in %s", domain.ErrNotFound, ref, list)
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("%w: %s[%d] (len %d)", domain.ErrIndexOutOfRange, list, idx, n)
	}
	return idx, nil
}

// edit runs a form mutation, enforcing form mode and repairing item keys
// that have drifted from the list lengths.
func (c *Controller) edit(s domain.EditorState, fn func(domain.SourceDescriptor) (domain.SourceDescriptor, error)) (domain.EditorState, error) {
	if s.Mode != domain.ModeForm {
		return s, fmt.Errorf("%w: form edits need form mode", domain.ErrWrongMode)
	}
	model, err := fn(s.Model)
	if err != nil {
		return s, err
	}
	next := s
	next.Model = model
	next.Keys = domain.ItemKeys{
		APIFilters:     c.syncKeys(s, ListAPIFilters),
		BackendFilters: c.syncKeys(s, ListBackendFilters),
	}
	return next, nil
}

// syncKeys returns a copy of the list's keys padded or trimmed to the
// list's length.
func (c *Controller) syncKeys(s domain.EditorState, list ListName) []string {
	n, _ := ListLen(s.Model, list)
	keys := cloneKeys(*keysFor(&s.Keys, list))
	if len(keys) > n {
		return keys[:n]
	}
	for len(keys) < n {
		keys = append(keys, c.newKey())
	}
	return keys
}

func (c *Controller) freshKeys(d domain.SourceDescriptor) domain.ItemKeys {
	gen := func(n int) []string {
		keys := make([]string, n)
		for i := range keys {
			keys[i] = c.newKey()
		}
		return keys
	}
	return domain.ItemKeys{
		APIFilters:     gen(len(d.APIFilters)),
		BackendFilters: gen(len(d.BackendFilters)),
	}
}

func keysFor(k *domain.ItemKeys, list ListName) *[]string {
	if list == ListBackendFilters {
		return &k.BackendFilters
	}
	return &k.APIFilters
}

func cloneKeys(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// IsInvalidJSON reports whether err came from a failed parse
func IsInvalidJSON(err error) bool {
	return errors.Is(err, domain.ErrInvalidJSON)
}
