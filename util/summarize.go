package util

import (
	"cmp"
	"slices"
)

// TypeTally counts assets by the extension of their declared path.
type TypeTally map[string]int

// TypeCount is one row of a sorted TypeTally.
type TypeCount struct {
	Ext   string
	Count int
}

// Summarize tallies every asset in tree by declared-path extension.
// Assets whose declared path has no extension are not counted; a trailing
// dot ("Tree.") counts under the empty extension. A malformed asset folder
// aborts the summary.
func Summarize(tree string) (TypeTally, error) {
	tally := make(TypeTally)
	err := eachAsset(tree, func(folder AssetFolder) error {
		ext, ok := Extension(folder.Pathname)
		if !ok {
			return nil
		}
		tally[ext]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tally, nil
}

// Total is the number of tallied assets.
func (t TypeTally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Sorted orders the tally by count, largest first, then by extension.
func (t TypeTally) Sorted() []TypeCount {
	rows := make([]TypeCount, 0, len(t))
	for ext, n := range t {
		rows = append(rows, TypeCount{Ext: ext, Count: n})
	}
	slices.SortFunc(rows, func(a, b TypeCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Ext, b.Ext)
	})
	return rows
}
