package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"careval/pkg/data"
)

func TestChartText(t *testing.T) {
	tbl, err := data.FromColumns(data.CarEvaluation.Names(), [][]string{
		{"vhigh", "low"}, {"vhigh", "low"}, {"2", "4"}, {"2", "more"},
		{"small", "big"}, {"low", "high"}, {"unacc", "vgood"},
	})
	require.NoError(t, err)
	defer tbl.Release()
	withBuying, err := tbl.WithIntColumn(data.ColBuyingEncoded, []int64{4, 1})
	require.NoError(t, err)
	defer withBuying.Release()
	encoded, err := withBuying.WithIntColumn(data.ColMaintEncoded, []int64{4, 1})
	require.NoError(t, err)
	defer encoded.Release()

	r, err := New(DefaultConfig())
	require.NoError(t, err)

	cases := []struct {
		chart       Chart
		build       func(*data.Table) (*plot.Plot, error)
		title, x, y string
	}{
		{ClassDistribution, r.classDistribution, "Car Acceptability Class Distribution", "Class", "Count"},
		{SafetyVsClass, r.safetyVsClass, "Class Distribution by Safety Rating", "Safety", "Count"},
		{LuggageDistribution, r.luggageDistribution, "Distribution of Luggage Boot Sizes", "Lug Boot", "Count"},
		{BuyingVsMaint, r.buyingVsMaint, "Buying vs Maintenance Cost by Class",
			"Buying Price (1=Low to 4=VHigh)", "Maintenance Cost (1=Low to 4=VHigh)"},
	}
	for _, tc := range cases {
		t.Run(string(tc.chart), func(t *testing.T) {
			p, err := tc.build(encoded)
			require.NoError(t, err)
			assert.Equal(t, tc.title, tc.chart.Title())
			assert.Equal(t, tc.title, p.Title.Text)
			assert.Equal(t, tc.x, p.X.Label.Text)
			assert.Equal(t, tc.y, p.Y.Label.Text)
		})
	}
}
