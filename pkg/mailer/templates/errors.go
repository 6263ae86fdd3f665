package templates

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedTemplate indicates the template type has no known renderer.
	ErrUnsupportedTemplate = errors.New("unsupported template type")

	// ErrInvalidTemplateData indicates the data does not match the declared
	// template type or is missing a required field.
	ErrInvalidTemplateData = errors.New("invalid template data")

	// ErrRenderFailed indicates markdown conversion or layout execution failed.
	ErrRenderFailed = errors.New("failed to render template")
)

func missingField(typ Type, field string) error {
	return fmt.Errorf("%w: %s requires %s", ErrInvalidTemplateData, typ, field)
}
