package usecase

import (
	"sort"
	"strings"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/validation"
	"github.com/jhoicas/bau-portal/internal/domain"
)

// ValidationError rechazo con detalle por campo; errors.Is(err, domain.ErrValidation) es true.
type ValidationError struct {
	Fields []dto.FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return domain.ErrValidation.Error() + ": " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

// fieldErrors acumula rechazos antes de construir el ValidationError.
type fieldErrors []dto.FieldError

func (f *fieldErrors) add(field string, rejected any, msg string) {
	*f = append(*f, dto.FieldError{Field: field, RejectedValue: rejected, Message: msg})
}

// structTags aplica las etiquetas validate de in.
func (f *fieldErrors) structTags(v *validation.Validator, in any) error {
	msgs, err := v.Fields(in)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(msgs))
	for name := range msgs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f.add(name, nil, msgs[name])
	}
	return nil
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
