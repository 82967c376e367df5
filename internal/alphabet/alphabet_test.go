package alphabet_test

import (
	"errors"
	"testing"

	"github.com/buildkite/orffinder/internal/alphabet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name    string
		symbols string
		wantErr error
	}{
		{name: "letters", symbols: "ABCD"},
		{name: "nucleotides", symbols: "ACGT"},
		{name: "empty", symbols: "", wantErr: alphabet.ErrEmpty},
		{name: "terminator", symbols: "AB$", wantErr: alphabet.ErrReservedSymbol},
		{name: "duplicate", symbols: "ABA", wantErr: alphabet.ErrDuplicateSymbol},
		{name: "space", symbols: "A B", wantErr: alphabet.ErrNonPrintingSymbol},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			a, err := alphabet.New(test.symbols)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(test.symbols), a.Size())
			assert.Equal(t, len(test.symbols)+1, a.Arity())
			assert.Equal(t, test.symbols, a.String())
		})
	}
}

func TestIndexAndSymbol(t *testing.T) {
	t.Parallel()

	a := alphabet.MustNew("ACGT")
	for i, c := range []byte("ACGT") {
		slot, ok := a.Index(c)
		require.True(t, ok, "symbol %q", c)
		assert.Equal(t, i+1, slot)
		assert.Equal(t, c, a.Symbol(slot))
	}

	_, ok := a.Index('B')
	assert.False(t, ok)
	assert.Equal(t, byte(alphabet.Terminator), a.Symbol(alphabet.TerminatorIndex))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	a := alphabet.Letters
	assert.NoError(t, a.Validate("ABCDDCBA"))
	assert.True(t, a.Contains("AAA"))
	assert.False(t, a.Contains("ABZ"))

	err := a.Validate("ABZA")
	var symErr *alphabet.SymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, 2, symErr.Offset)
	assert.Equal(t, byte('Z'), symErr.Symbol)

	// Matching is case sensitive.
	assert.Error(t, a.Validate("abcd"))
}

func TestMustNewPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { alphabet.MustNew("") })
}
