package clicommand_test

import (
	"testing"

	"github.com/buildkite/orffinder/clicommand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommandErrors(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name     string
		args     []string
		wantErr  string
		wantCode int
	}{
		{
			name:     "bad_listen_address",
			args:     []string{"serve", "--genome", "ABCD", "--listen", "127.0.0.1:-1"},
			wantErr:  "listening on 127.0.0.1:-1",
			wantCode: 1,
		},
		{
			name:     "negative_cache_size",
			args:     []string{"serve", "--genome", "ABCD", "--cache-size", "-1"},
			wantErr:  "cache size must not be negative",
			wantCode: 1,
		},
		{
			name:     "invalid_genome",
			args:     []string{"serve", "--genome", "ABZ"},
			wantErr:  "invalid genome",
			wantCode: clicommand.ExitCodeInvalidGenome,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := runApp(t, test.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.wantErr)
			assert.Equal(t, test.wantCode, exitCode(err))
		})
	}
}
