// Package querydoc reads batches of find queries and writes their results as
// YAML or JSON documents.
package querydoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoQueries = errors.New("document has no queries")

// Query is one named (start, end) pair.
type Query struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Document is a batch of queries.
type Document struct {
	Queries []Query `json:"queries" yaml:"queries"`
}

// Result is the answer to one query. Positions holds half-open [start, end)
// pairs and is only filled when asked for.
type Result struct {
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Start     string   `json:"start" yaml:"start"`
	End       string   `json:"end" yaml:"end"`
	Count     int      `json:"count" yaml:"count"`
	Results   []string `json:"results" yaml:"results"`
	Positions [][2]int `json:"positions,omitempty" yaml:"positions,omitempty,flow"`
}

// Results is the document written for a batch.
type Results struct {
	Results []Result `json:"results" yaml:"results"`
}

// QueryError describes an invalid query in a document.
type QueryError struct {
	Index int
	Name  string
	Err   error
}

func (e *QueryError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("query %d (%s): %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("query %d: %v", e.Index, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

var (
	errEmptyStart = errors.New("start must not be empty")
	errEmptyEnd   = errors.New("end must not be empty")
)

// Validate checks that there is at least one query and that every query has a
// start and an end.
func (d *Document) Validate() error {
	if len(d.Queries) == 0 {
		return ErrNoQueries
	}
	for i, q := range d.Queries {
		switch {
		case q.Start == "":
			return &QueryError{Index: i, Name: q.Name, Err: errEmptyStart}
		case q.End == "":
			return &QueryError{Index: i, Name: q.Name, Err: errEmptyEnd}
		}
	}
	return nil
}

// Parse decodes a document. JSON is a subset of YAML, so both are read with
// the YAML decoder.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoQueries
		}
		return nil, fmt.Errorf("decoding query document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadFile reads and validates the document at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // it's only open for reading

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return doc, nil
}

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks an encoding from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode writes v to w in the format f.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err

	default:
		return fmt.Errorf("unknown format %q", f)
	}
}
