package editor

import (
	"fmt"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

// SubmitError reports why a session could not produce a payload
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit: %v", e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// BuildPayload resolves the descriptor to hand to the create call.
// In json mode the text is parsed again rather than trusting the last
// committed model. No field validation happens here.
func BuildPayload(s domain.EditorState) (domain.SourceDescriptor, error) {
	switch s.Mode {
	case domain.ModeJSON:
		d, err := Parse(s.Text)
		if err != nil {
			return domain.SourceDescriptor{}, &SubmitError{Err: err}
		}
		return d, nil
	case domain.ModeForm:
		return s.Model.Clone(), nil
	default:
		return domain.SourceDescriptor{}, &SubmitError{Err: fmt.Errorf("%w: mode %q", domain.ErrInvalidInput, s.Mode)}
	}
}
