// Package alphabet provides the closed symbol sets that genomes and queries are
// written in, and the mapping from symbols to trie child slots.
package alphabet

import (
	"errors"
	"fmt"
)

// Terminator is the reserved end-of-suffix symbol. It never appears in an
// alphabet; it owns child slot 0 of every trie node.
const Terminator = '$'

// TerminatorIndex is the child slot reserved for the terminator edge.
const TerminatorIndex = 0

var (
	ErrEmpty             = errors.New("alphabet has no symbols")
	ErrReservedSymbol    = fmt.Errorf("alphabet contains the reserved terminator %q", Terminator)
	ErrDuplicateSymbol   = errors.New("alphabet contains a duplicate symbol")
	ErrNonPrintingSymbol = errors.New("alphabet contains a non-printing symbol")
)

var (
	// Letters is the four letter alphabet A-D. It is the default.
	Letters = MustNew("ABCD")

	// Nucleotides is the DNA alphabet.
	Nucleotides = MustNew("ACGT")
)

// Alphabet is an ordered set of single byte symbols. The symbol at position k
// of the set owns trie child slot k+1.
type Alphabet struct {
	symbols string

	// slots maps a byte to its child slot; 0 means the byte is not a symbol.
	slots [256]uint8
}

// New returns an Alphabet over the bytes of symbols, in the order given.
func New(symbols string) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, ErrEmpty
	}
	if len(symbols) > 254 {
		return nil, fmt.Errorf("alphabet has %d symbols, at most 254 are supported", len(symbols))
	}

	a := &Alphabet{symbols: symbols}
	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		switch {
		case c == Terminator:
			return nil, ErrReservedSymbol
		case c <= ' ' || c >= 0x7f:
			return nil, fmt.Errorf("%w: 0x%02x", ErrNonPrintingSymbol, c)
		case a.slots[c] != 0:
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, c)
		}
		a.slots[c] = uint8(i + 1)
	}
	return a, nil
}

// MustNew is like New but panics if symbols do not form a valid alphabet.
func MustNew(symbols string) *Alphabet {
	a, err := New(symbols)
	if err != nil {
		panic(fmt.Sprintf("alphabet.MustNew(%q): %v", symbols, err))
	}
	return a
}

// Size returns the number of symbols, not counting the terminator.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Arity returns the branching factor of a trie node over this alphabet.
func (a *Alphabet) Arity() int {
	return len(a.symbols) + 1
}

// Index returns the trie child slot for c, and whether c is in the alphabet.
func (a *Alphabet) Index(c byte) (int, bool) {
	slot := a.slots[c]
	return int(slot), slot != 0
}

// Symbol returns the symbol owning child slot i. Slot 0 is the terminator.
func (a *Alphabet) Symbol(i int) byte {
	if i == TerminatorIndex {
		return Terminator
	}
	return a.symbols[i-1]
}

// Contains reports whether every byte of s is in the alphabet.
func (a *Alphabet) Contains(s string) bool {
	return a.Validate(s) == nil
}

// Validate returns a *SymbolError for the first byte of s outside the alphabet.
func (a *Alphabet) Validate(s string) error {
	for i := 0; i < len(s); i++ {
		if a.slots[s[i]] == 0 {
			return &SymbolError{Offset: i, Symbol: s[i], Alphabet: a.symbols}
		}
	}
	return nil
}

func (a *Alphabet) String() string {
	return a.symbols
}

// SymbolError reports a byte that is not part of an alphabet.
type SymbolError struct {
	Offset   int
	Symbol   byte
	Alphabet string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol %q at offset %d is not in the alphabet %q", e.Symbol, e.Offset, e.Alphabet)
}
