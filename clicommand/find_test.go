package clicommand_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/buildkite/orffinder/clicommand"
	"github.com/buildkite/orffinder/internal/alphabet"
	"github.com/buildkite/orffinder/internal/querydoc"
	"github.com/buildkite/orffinder/orf"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFindCommandPlain(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "overlapping_runs",
			args: []string{"find", "--genome", "AAA", "A", "A"},
			want: []string{"AA", "AA", "AAA"},
		},
		{
			name: "longer_genome",
			args: []string{"find", "--genome", "AAABBBCCCDDD", "AB", "CD"},
			want: []string{"ABBBCCCD"},
		},
		{
			name: "no_results",
			args: []string{"find", "--genome", "ABCD", "D", "A"},
			want: nil,
		},
		{
			name: "outside_alphabet",
			args: []string{"find", "--genome", "ABCD", "Z", "A"},
			want: nil,
		},
		{
			name: "nucleotides",
			args: []string{"find", "--alphabet", "nucleotides", "--genome", "GATTACA", "GA", "A"},
			want: []string{"GATTA", "GATTACA"},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runApp(t, test.args...)
			require.NoError(t, err)

			got := lines(stdout)
			sort.Strings(got)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("stdout diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindCommandPositionsSorted(t *testing.T) {
	t.Parallel()

	stdout, _, err := runApp(t, "find", "--genome", "AAA", "--positions", "--sort", "A", "A")
	require.NoError(t, err)
	assert.Equal(t, "0\t2\tAA\n0\t3\tAAA\n1\t3\tAA\n", stdout)
}

func TestFindCommandCount(t *testing.T) {
	t.Parallel()

	stdout, _, err := runApp(t, "find", "--genome", "AAA", "--count", "A", "A")
	require.NoError(t, err)
	assert.Equal(t, "3\n", stdout)

	stdout, _, err = runApp(t, "find", "--genome", "AAA", "--count", "--format", "json", "A", "A")
	require.NoError(t, err)
	assert.JSONEq(t, `{"start": "A", "end": "A", "count": 3}`, stdout)
}

func TestFindCommandStructured(t *testing.T) {
	t.Parallel()

	want := querydoc.Result{
		Start:     "AB",
		End:       "AB",
		Count:     1,
		Results:   []string{"ABAB"},
		Positions: [][2]int{{0, 4}},
	}

	stdout, _, err := runApp(t, "find", "--genome", "ABAB", "--format", "json", "--positions", "AB", "AB")
	require.NoError(t, err)
	var fromJSON querydoc.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &fromJSON))
	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Errorf("json output diff (-want +got):\n%s", diff)
	}

	stdout, _, err = runApp(t, "find", "--genome", "ABAB", "--format", "yaml", "--positions", "AB", "AB")
	require.NoError(t, err)
	var fromYAML querydoc.Result
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &fromYAML))
	if diff := cmp.Diff(want, fromYAML); diff != "" {
		t.Errorf("yaml output diff (-want +got):\n%s", diff)
	}
}

func TestFindCommandGenomeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "genome.fa")
	require.NoError(t, os.WriteFile(path, []byte(">one\nDDDD\n>two\nABCD\nABCD\n"), 0o600))

	stdout, _, err := runApp(t, "find", "--genome-file", path, "--record", "two", "--sort", "AB", "CD")
	require.NoError(t, err)
	assert.Equal(t, []string{"ABCD", "ABCDABCD", "ABCD"}, lines(stdout))
}

func TestFindCommandConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "orffinder.cfg")
	require.NoError(t, os.WriteFile(path, []byte("# test config\ngenome=\"ABAB\"\nformat=json\n"), 0o600))

	stdout, _, err := runApp(t, "find", "--config", path, "--count", "AB", "AB")
	require.NoError(t, err)
	assert.JSONEq(t, `{"start": "AB", "end": "AB", "count": 1}`, stdout)

	// Flags win over the file.
	stdout, _, err = runApp(t, "find", "--config", path, "--format", "plain", "--count", "AB", "AB")
	require.NoError(t, err)
	assert.Equal(t, "1\n", stdout)
}

// Not parallel: sets environment variables.
func TestFindCommandEnvironment(t *testing.T) {
	t.Setenv("ORFFINDER_GENOME", "AAABBBCCCDDD")
	t.Setenv("ORFFINDER_COUNT", "true")

	stdout, _, err := runApp(t, "find", "AB", "CD")
	require.NoError(t, err)
	assert.Equal(t, "1\n", stdout)
}

func TestFindCommandDefaultGenomeLimit(t *testing.T) {
	t.Parallel()

	// A run of one symbol keeps the index linear in size.
	atLimit := strings.Repeat("A", clicommand.DefaultMaxGenomeLength)

	stdout, _, err := runApp(t, "find", "--genome", atLimit, "--count", "C", "D")
	require.NoError(t, err)
	assert.Equal(t, "0\n", stdout)

	_, _, err = runApp(t, "find", "--genome", atLimit+"A", "--count", "C", "D")
	assert.ErrorIs(t, err, orf.ErrGenomeTooLong)
	assert.Equal(t, clicommand.ExitCodeInvalidGenome, exitCode(err))

	_, _, err = runApp(t, "find", "--genome", atLimit+"A", "--max-genome-length", "0", "--count", "C", "D")
	require.NoError(t, err)
}

func TestFindCommandErrors(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name    string
		args    []string
		wantErr string
		wantIs  error
		wantAs  any

		// Zero means the default status of 1.
		wantCode int
	}{
		{
			name:    "missing_end",
			args:    []string{"find", "--genome", "ABCD", "AB"},
			wantErr: "Missing end. See: `orffinder find --help`",
		},
		{
			name:    "no_genome",
			args:    []string{"find", "AB", "CD"},
			wantErr: "one of --genome or --genome-file is required",
		},
		{
			name:    "both_genomes",
			args:    []string{"find", "--genome", "A", "--genome-file", "find_test.go", "A", "A"},
			wantErr: "--genome and --genome-file can't be used together",
		},
		{
			name:     "genome_outside_alphabet",
			args:     []string{"find", "--genome", "ABXD", "AB", "CD"},
			wantAs:   new(*alphabet.SymbolError),
			wantCode: clicommand.ExitCodeInvalidGenome,
		},
		{
			name:     "genome_too_long",
			args:     []string{"find", "--genome", "ABCDABCD", "--max-genome-length", "4", "AB", "CD"},
			wantIs:   orf.ErrGenomeTooLong,
			wantCode: clicommand.ExitCodeInvalidGenome,
		},
		{
			name:     "empty_genome_file",
			args:     []string{"find", "--genome-file", writeFile(t, "empty.fa", ">chr1\n"), "A", "B"},
			wantIs:   orf.ErrEmptyGenome,
			wantCode: clicommand.ExitCodeInvalidGenome,
		},
		{
			name:    "bad_alphabet",
			args:    []string{"find", "--genome", "AB", "--alphabet", "A$", "A", "B"},
			wantIs:  alphabet.ErrReservedSymbol,
			wantErr: `invalid alphabet "A$"`,
		},
		{
			name:    "bad_format",
			args:    []string{"find", "--genome", "AB", "--format", "xml", "A", "B"},
			wantErr: `invalid format "xml"`,
		},
		{
			name:    "bad_log_format",
			args:    []string{"find", "--genome", "AB", "--log-format", "xml", "A", "B"},
			wantErr: `invalid log format "xml"`,
		},
		{
			name:    "missing_genome_file",
			args:    []string{"find", "--genome-file", "does-not-exist.fa", "A", "B"},
			wantErr: "couldn't find genome-file",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runApp(t, test.args...)
			require.Error(t, err)
			assert.Empty(t, stdout)

			if test.wantErr != "" {
				assert.Contains(t, err.Error(), test.wantErr)
			}
			if test.wantIs != nil {
				assert.ErrorIs(t, err, test.wantIs)
			}
			if test.wantAs != nil {
				assert.True(t, errors.As(err, test.wantAs), "errors.As(%v, %T)", err, test.wantAs)
			}

			wantCode := test.wantCode
			if wantCode == 0 {
				wantCode = 1
			}
			assert.Equal(t, wantCode, exitCode(err))
		})
	}
}
