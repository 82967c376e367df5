// Package orf locates substrings of a genome by their prefix and suffix.
//
// A Finder indexes every suffix of the genome in a forward trie and every
// suffix of the reversed genome in a backward trie. Find then walks each trie
// once and pairs the occurrences it finds.
package orf

import (
	"errors"
	"fmt"

	"github.com/buildkite/orffinder/internal/alphabet"
	"github.com/buildkite/orffinder/internal/trie"
)

var (
	ErrEmptyGenome   = errors.New("genome is empty")
	ErrGenomeTooLong = errors.New("genome is too long")
)

// Finder answers prefix/suffix substring queries over a genome. It is
// immutable once constructed and safe for concurrent use.
type Finder struct {
	genome   string
	alphabet *alphabet.Alphabet
	forward  *trie.Trie
	backward *trie.Trie
}

// Stats describes the size of a Finder's index.
type Stats struct {
	Length        int `json:"length" yaml:"length"`
	ForwardNodes  int `json:"forward_nodes" yaml:"forward_nodes"`
	BackwardNodes int `json:"backward_nodes" yaml:"backward_nodes"`
}

type options struct {
	alphabet  *alphabet.Alphabet
	maxLength int
}

// Option configures New.
type Option func(*options)

// WithAlphabet sets the alphabet the genome and queries are written in. The
// default is alphabet.Letters.
func WithAlphabet(a *alphabet.Alphabet) Option {
	return func(o *options) {
		o.alphabet = a
	}
}

// WithMaxLength rejects genomes longer than n symbols. The index uses memory
// quadratic in the genome length. Zero means no limit.
func WithMaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = n
	}
}

// New indexes genome. The genome must be non-empty and written entirely in the
// configured alphabet.
func New(genome string, opts ...Option) (*Finder, error) {
	o := options{alphabet: alphabet.Letters}
	for _, opt := range opts {
		opt(&o)
	}

	if len(genome) == 0 {
		return nil, ErrEmptyGenome
	}
	if o.maxLength > 0 && len(genome) > o.maxLength {
		return nil, fmt.Errorf("%w: %d symbols, the limit is %d", ErrGenomeTooLong, len(genome), o.maxLength)
	}
	if err := o.alphabet.Validate(genome); err != nil {
		return nil, fmt.Errorf("invalid genome: %w", err)
	}

	forward, err := trie.Build(o.alphabet, genome)
	if err != nil {
		return nil, fmt.Errorf("building forward trie: %w", err)
	}
	backward, err := trie.Build(o.alphabet, reverse(genome))
	if err != nil {
		return nil, fmt.Errorf("building backward trie: %w", err)
	}

	return &Finder{
		genome:   genome,
		alphabet: o.alphabet,
		forward:  forward,
		backward: backward,
	}, nil
}

// MustNew is like New but panics if the genome cannot be indexed.
func MustNew(genome string, opts ...Option) *Finder {
	f, err := New(genome, opts...)
	if err != nil {
		panic(fmt.Sprintf("orf.MustNew: %v", err))
	}
	return f
}

// Genome returns the indexed genome.
func (f *Finder) Genome() string {
	return f.genome
}

// Len returns the length of the indexed genome.
func (f *Finder) Len() int {
	return len(f.genome)
}

// Alphabet returns the alphabet the genome is written in.
func (f *Finder) Alphabet() *alphabet.Alphabet {
	return f.alphabet
}

// Stats returns the size of the index.
func (f *Finder) Stats() Stats {
	return Stats{
		Length:        len(f.genome),
		ForwardNodes:  f.forward.Size(),
		BackwardNodes: f.backward.Size(),
	}
}

func reverse(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[len(s)-1-i] = s[i]
	}
	return string(b)
}
