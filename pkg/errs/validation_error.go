package errs

import "github.com/pkg/errors"

// ValidationError marks errors caused by malformed transaction input, as opposed to internal failures.
type ValidationError interface {
	ValidationError()
}

type ValidationErrorImpl struct {
}

func (ValidationErrorImpl) ValidationError() {
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
