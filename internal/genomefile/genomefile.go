// Package genomefile reads genomes from plain text and FASTA files, optionally
// compressed with gzip or zstd.
package genomefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrNoRecords      = errors.New("no sequence found")
	ErrRecordNotFound = errors.New("record not found")
)

// Record is one named sequence. Plain text files hold a single unnamed record.
type Record struct {
	Name     string
	Sequence string
}

// ReadFile reads every record in the file at path. Files ending in .gz or .zst
// are decompressed first.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // it's only open for reading

	r, closeFn, err := decompress(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer closeFn()

	records, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

func decompress(r io.Reader, ext string) (io.Reader, func(), error) {
	switch strings.ToLower(ext) {
	case ".gz", ".gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { zr.Close() }, nil //nolint:errcheck // reader only

	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil

	default:
		return r, func() {}, nil
	}
}

// Parse reads FASTA or plain text from r. Lines starting with '>' begin a new
// named record and lines starting with ';' are comments. Whitespace inside and
// between sequence lines is dropped; letter case is kept as is.
func Parse(r io.Reader) ([]Record, error) {
	var (
		records []Record
		current *Record
		seq     strings.Builder
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Sequence = seq.String()
		records = append(records, *current)
		seq.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "", strings.HasPrefix(line, ";"):
			continue

		case strings.HasPrefix(line, ">"):
			flush()
			current = &Record{Name: headerName(line[1:])}

		default:
			if current == nil {
				current = &Record{}
			}
			for _, field := range strings.Fields(line) {
				seq.WriteString(field)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// headerName returns the identifier of a FASTA header: the text up to the
// first whitespace.
func headerName(header string) string {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Select returns the sequence of the record called name, or of the first
// record when name is empty.
func Select(records []Record, name string) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	if name == "" {
		return records[0].Sequence, nil
	}
	for _, rec := range records {
		if rec.Name == name {
			return rec.Sequence, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrRecordNotFound, name)
}
