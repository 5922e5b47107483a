// Package main provides the libris CLI, the command-line surface over
// the catalog storage layer.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var sysErr *systemError
		if errors.As(err, &sysErr) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
}

// systemError marks failures of the environment (store unreachable,
// unwritable files) as opposed to user mistakes.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErrf(format string, args ...any) error {
	return &systemError{err: fmt.Errorf(format, args...)}
}
