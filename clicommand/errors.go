package clicommand

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/buildkite/orffinder/internal/alphabet"
	"github.com/buildkite/orffinder/orf"
)

// ExitCodeInvalidGenome is the exit status for a genome that can't be indexed:
// it is empty, too long, or holds symbols outside the alphabet.
const ExitCodeInvalidGenome = 2

// ExitError carries the exit status a command should end with alongside the
// error that caused it.
type ExitError struct {
	code  int
	inner error
}

func NewExitError(code int, err error) *ExitError {
	return &ExitError{code: code, inner: err}
}

func (e *ExitError) Code() int     { return e.code }
func (e *ExitError) Error() string { return e.inner.Error() }
func (e *ExitError) Unwrap() error { return e.inner }

// Is matches any ExitError with the same code.
func (e *ExitError) Is(target error) bool {
	terr, ok := target.(*ExitError)
	return ok && e.code == terr.code
}

// genomeExitError gives err ExitCodeInvalidGenome when it says the genome
// itself is unusable.
func genomeExitError(err error) error {
	var symErr *alphabet.SymbolError
	switch {
	case errors.Is(err, orf.ErrEmptyGenome),
		errors.Is(err, orf.ErrGenomeTooLong),
		errors.As(err, &symErr):
		return NewExitError(ExitCodeInvalidGenome, err)
	}
	return err
}

// PrintMessageAndReturnExitCode writes "orffinder: fatal: <err>" to stderr and
// returns the status to exit with: 0 for nil, the code of an ExitError, or 1.
func PrintMessageAndReturnExitCode(err error) int {
	return printMessageAndReturnExitCode(os.Stderr, err)
}

func printMessageAndReturnExitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	fmt.Fprintf(w, "orffinder: fatal: %s\n", err)

	if eerr := new(ExitError); errors.As(err, &eerr) {
		return eerr.Code()
	}
	return 1
}
