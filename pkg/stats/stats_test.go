package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careval/pkg/stats"
)

var classOrder = []string{"unacc", "acc", "good", "vgood"}

func TestDescribe(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		want   stats.Description
	}{
		{"Empty", nil, stats.Description{}},
		{"Single", []string{"low"}, stats.Description{Count: 1, Unique: 1, Top: "low", Freq: 1}},
		{"Majority", []string{"acc", "unacc", "unacc", "good", "unacc"}, stats.Description{Count: 5, Unique: 3, Top: "unacc", Freq: 3}},
		{"TieFirstSeen", []string{"med", "low", "low", "med"}, stats.Description{Count: 4, Unique: 2, Top: "med", Freq: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stats.Describe(tc.values))
		})
	}
}

func TestValueCounts(t *testing.T) {
	got := stats.ValueCounts([]string{"b", "a", "c", "a", "b", "a"})
	assert.Equal(t, []stats.Count{{Value: "a", N: 3}, {Value: "b", N: 2}, {Value: "c", N: 1}}, got)
}

func TestCountsInOrder(t *testing.T) {
	// one row per class
	got := stats.CountsInOrder([]string{"vgood", "acc", "unacc", "good"}, classOrder)
	assert.Equal(t, []stats.Count{{Value: "unacc", N: 1}, {Value: "acc", N: 1}, {Value: "good", N: 1}, {Value: "vgood", N: 1}}, got)

	got = stats.CountsInOrder([]string{"acc", "acc", "other"}, classOrder)
	assert.Equal(t, []stats.Count{{Value: "unacc", N: 0}, {Value: "acc", N: 2}, {Value: "good", N: 0}, {Value: "vgood", N: 0}, {Value: "other", N: 1}}, got)
}

func TestCrossTab(t *testing.T) {
	safety := []string{"high", "low", "high", "med", "low", "high"}
	class := []string{"vgood", "unacc", "acc", "acc", "unacc", "vgood"}

	ct, err := stats.NewCrossTab(safety, class, []string{"low", "med", "high"}, classOrder)
	require.NoError(t, err)

	assert.Equal(t, []string{"low", "med", "high"}, ct.RowLabels)
	assert.Equal(t, classOrder, ct.ColLabels)
	assert.Equal(t, 2, ct.At("low", "unacc"))
	assert.Equal(t, 2, ct.At("high", "vgood"))
	assert.Equal(t, 1, ct.At("high", "acc"))
	assert.Zero(t, ct.At("low", "vgood"), "absent combinations count zero")
	assert.Zero(t, ct.At("none", "acc"))
	assert.Equal(t, []float64{0, 1, 1}, ct.Column("acc"))
	assert.Equal(t, []float64{0, 0, 0}, ct.Column("missing"))
	assert.Equal(t, len(safety), ct.Total())
}

func TestCrossTab_OnlyPresentRows(t *testing.T) {
	ct, err := stats.NewCrossTab([]string{"high", "high"}, []string{"acc", "good"}, []string{"low", "med", "high"}, classOrder)
	require.NoError(t, err)
	assert.Equal(t, []string{"high"}, ct.RowLabels)
	assert.Equal(t, 2, ct.Total())
}

func TestCrossTab_Empty(t *testing.T) {
	ct, err := stats.NewCrossTab(nil, nil, []string{"low"}, classOrder)
	require.NoError(t, err)
	assert.Empty(t, ct.RowLabels)
	assert.Zero(t, ct.Total())
	assert.Zero(t, ct.At("low", "acc"))

	_, err = stats.NewCrossTab([]string{"low"}, nil, nil, nil)
	require.ErrorIs(t, err, stats.ErrLengthMismatch)
}

func TestGroupMean(t *testing.T) {
	order := []string{"low", "med", "high", "vhigh"}

	// two low rows encoded 0 and 2, one high row encoded 3
	got, err := stats.GroupMean([]string{"low", "high", "low"}, []float64{0, 3, 2}, order)
	require.NoError(t, err)
	assert.Equal(t, []stats.GroupStat{
		{Key: "low", Mean: 1.0, Count: 2},
		{Key: "high", Mean: 3.0, Count: 1},
	}, got)

	_, err = stats.GroupMean([]string{"low"}, nil, order)
	require.ErrorIs(t, err, stats.ErrLengthMismatch)
}

func TestGroupMean_MatchesRowMean(t *testing.T) {
	keys := []string{"vhigh", "low", "med", "vhigh", "low", "med", "low"}
	vals := []float64{0, 3, 1, 0, 2, 1, 1}
	got, err := stats.GroupMean(keys, vals, []string{"low", "med", "high", "vhigh"})
	require.NoError(t, err)

	for _, g := range got {
		var sum float64
		var n int
		for i, k := range keys {
			if k == g.Key {
				sum += vals[i]
				n++
			}
		}
		assert.Equal(t, n, g.Count, g.Key)
		assert.InDelta(t, sum/float64(n), g.Mean, 1e-12, g.Key)
		assert.GreaterOrEqual(t, g.Mean, 0.0)
		assert.LessOrEqual(t, g.Mean, 3.0)
	}
	assert.Equal(t, "low", got[0].Key)
	assert.Equal(t, "vhigh", got[len(got)-1].Key)
}

func TestMean(t *testing.T) {
	assert.Zero(t, stats.Mean(nil))
	assert.InDelta(t, 2.5, stats.Mean([]float64{1, 2, 3, 4}), 1e-12)
}
