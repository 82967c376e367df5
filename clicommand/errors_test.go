package clicommand

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/buildkite/orffinder/internal/alphabet"
	"github.com/buildkite/orffinder/orf"

	"github.com/stretchr/testify/assert"
)

func TestPrintMessageAndReturnExitCode(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name       string
		err        error
		wantCode   int
		wantOutput string
	}{
		{name: "nil", err: nil, wantCode: 0},
		{name: "plain", err: errors.New("genome is empty"), wantCode: 1, wantOutput: "orffinder: fatal: genome is empty\n"},
		{name: "exit_error", err: NewExitError(3, errors.New("boom")), wantCode: 3, wantOutput: "orffinder: fatal: boom\n"},
		{name: "wrapped_exit_error", err: fmt.Errorf("running: %w", NewExitError(4, errors.New("boom"))), wantCode: 4, wantOutput: "orffinder: fatal: running: boom\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			assert.Equal(t, test.wantCode, printMessageAndReturnExitCode(&buf, test.err))
			assert.Equal(t, test.wantOutput, buf.String())
		})
	}
}

func TestExitErrorIs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", NewExitError(2, errors.New("inner")))
	assert.ErrorIs(t, err, NewExitError(2, nil))
	assert.NotErrorIs(t, err, NewExitError(3, nil))
}

func TestGenomeExitError(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "empty", err: orf.ErrEmptyGenome, wantCode: ExitCodeInvalidGenome},
		{name: "too_long", err: fmt.Errorf("indexing genome from --genome: %w", orf.ErrGenomeTooLong), wantCode: ExitCodeInvalidGenome},
		{name: "bad_symbol", err: fmt.Errorf("invalid genome: %w", &alphabet.SymbolError{Offset: 2, Symbol: 'X', Alphabet: "ABCD"}), wantCode: ExitCodeInvalidGenome},
		{name: "other", err: errors.New("reading genome.fa: permission denied"), wantCode: 1},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := genomeExitError(test.err)
			assert.ErrorIs(t, err, test.err)
			assert.Equal(t, test.wantCode, printMessageAndReturnExitCode(io.Discard, err))
		})
	}
}
