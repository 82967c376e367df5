package orf

// Match is an occurrence of a query in the genome, as the half-open interval
// [Start, End).
type Match struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Find returns every substring of the genome that begins with start and ends
// with end, where the matched start and end do not overlap. A substring is
// returned once per distinct pair of start and end occurrences, so the result
// may hold duplicates. The order of the result is unspecified.
//
// Find returns nil if either query is empty, contains a symbol outside the
// alphabet, or does not occur in the genome.
func (f *Finder) Find(start, end string) []string {
	var res []string
	f.scan(start, end, func(s, e int) {
		res = append(res, f.genome[s:e])
	})
	return res
}

// Matches is like Find but returns the position of each substring.
func (f *Finder) Matches(start, end string) []Match {
	var res []Match
	f.scan(start, end, func(s, e int) {
		res = append(res, Match{Start: s, End: e})
	})
	return res
}

// Count returns len(f.Find(start, end)) without building the substrings.
func (f *Finder) Count(start, end string) int {
	n := 0
	f.scan(start, end, func(int, int) { n++ })
	return n
}

// scan calls emit with the bounds of every result of Find(start, end).
func (f *Finder) scan(start, end string, emit func(s, e int)) {
	if len(start) == 0 || len(end) == 0 {
		return
	}

	// Each p is the genome position of the last symbol of an occurrence of start.
	prefixes, ok := f.forward.Walk(start)
	if !ok {
		return
	}

	// Each q is the reversed-genome position of the first symbol of an
	// occurrence of end, which was the last symbol consumed walking reverse(end).
	suffixes, ok := f.backward.Walk(reverse(end))
	if !ok {
		return
	}

	n := len(f.genome)
	minLen := len(start) + len(end)

	// Q is strictly increasing, so e strictly decreases along it: once a pair
	// is too short, every later q for the same p is too.
	for _, p := range prefixes.Occurrences() {
		s := p - len(start) + 1
		for _, q := range suffixes.Occurrences() {
			e := n - q - 1 + len(end)
			if e <= s || e-s < minLen {
				break
			}
			emit(s, e)
		}
	}
}
