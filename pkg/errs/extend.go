package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// IExtend is implemented by errors that can prefix their message without losing their kind.
type IExtend interface {
	Extend(message string) error
}

// Extend prefixes the error message. A TxError stays a TxError with the same kind and field,
// other errors are wrapped. Extend of nil is nil.
func Extend(err error, message string) error {
	if err == nil {
		return nil
	}
	if ex, ok := err.(IExtend); ok {
		return ex.Extend(message)
	}
	return errors.Wrap(err, message)
}

func Extendf(err error, format string, args ...any) error {
	return Extend(err, fmt.Sprintf(format, args...))
}

func fmtExtend(self error, message string) string {
	return fmt.Sprintf("%s: %s", message, self)
}
