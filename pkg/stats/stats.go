package stats

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrLengthMismatch indicates paired slices of different lengths.
var ErrLengthMismatch = errors.New("stats: slices differ in length")

// Mean computes the average of a slice. An empty slice has mean 0.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Count is the frequency of one categorical value.
type Count struct {
	Value string
	N     int
}

// ValueCounts returns the frequency of every distinct value, most frequent
// first. Ties keep the order of first appearance.
func ValueCounts(values []string) []Count {
	idx := map[string]int{}
	var counts []Count
	for _, v := range values {
		i, ok := idx[v]
		if !ok {
			i = len(counts)
			idx[v] = i
			counts = append(counts, Count{Value: v})
		}
		counts[i].N++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].N > counts[j].N })
	return counts
}

// CountsInOrder counts values in a fixed category order. Categories that do
// not occur get zero; values outside order are appended as they appear.
func CountsInOrder(values []string, order []string) []Count {
	freq := map[string]int{}
	for _, v := range values {
		freq[v]++
	}
	keys := orderedKeys(values, order, true)
	out := make([]Count, len(keys))
	for i, k := range keys {
		out[i] = Count{Value: k, N: freq[k]}
	}
	return out
}

// Description summarises a categorical column: the number of values, the
// number of distinct values, and the most frequent value with its frequency.
type Description struct {
	Count  int
	Unique int
	Top    string
	Freq   int
}

// Describe computes the categorical summary of values.
func Describe(values []string) Description {
	counts := ValueCounts(values)
	d := Description{Count: len(values), Unique: len(counts)}
	if len(counts) > 0 {
		d.Top, d.Freq = counts[0].Value, counts[0].N
	}
	return d
}

// GroupStat is the mean of one group.
type GroupStat struct {
	Key   string
	Mean  float64
	Count int
}

// GroupMean averages values per distinct key. Groups follow order, keys not
// in order come after in order of first appearance. Only keys that occur are
// reported.
func GroupMean(keys []string, values []float64, order []string) ([]GroupStat, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}
	groups := map[string][]float64{}
	for i, k := range keys {
		groups[k] = append(groups[k], values[i])
	}
	var out []GroupStat
	for _, k := range orderedKeys(keys, order, false) {
		out = append(out, GroupStat{Key: k, Mean: Mean(groups[k]), Count: len(groups[k])})
	}
	return out, nil
}

// orderedKeys lists keys following order, then the remaining distinct values
// in order of first appearance. With all set, every key in order is listed
// even if absent from values.
func orderedKeys(values []string, order []string, all bool) []string {
	present := map[string]bool{}
	for _, v := range values {
		present[v] = true
	}
	seen := map[string]bool{}
	var out []string
	for _, k := range order {
		if (all || present[k]) && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	for _, v := range values {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	return out
}
