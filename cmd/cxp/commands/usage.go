package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// usageError marks errors caused by how cxp was invoked rather than by an
// operation. They are reported together with the usage text.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// Usagef returns an input error
func Usagef(format string, args ...interface{}) error {
	return &usageError{err: errors.Errorf(format, args...)}
}

// IsUsage reports whether err is an input error
func IsUsage(err error) bool {
	var u *usageError
	return errors.As(err, &u)
}

// usageArgs turns argument validation failures into input errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
