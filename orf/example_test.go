package orf_test

import (
	"fmt"
	"sort"

	"github.com/buildkite/orffinder/orf"
)

func ExampleFinder_Find() {
	f := orf.MustNew("AAABBBCCCDDD")

	res := f.Find("AB", "CD")
	sort.Strings(res)
	fmt.Println(res)
	// Output: [ABBBCCCD]
}

func ExampleFinder_Matches() {
	f := orf.MustNew("ABAB")

	fmt.Println(f.Matches("AB", "AB"))
	// Output: [{0 4}]
}
