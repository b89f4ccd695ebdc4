// Package analysis implements the categorical summary of the car
// evaluation table: ordinal encodings, descriptive statistics, the
// safety by class cross-tabulation and the mean class rating per buying
// price.
package analysis

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"careval/pkg/data"
	"careval/pkg/dataprep"
	"careval/pkg/stats"
)

// ColumnDescription is the categorical summary of one column.
type ColumnDescription struct {
	Column string
	stats.Description
}

// Report holds everything Summarize computes.
type Report struct {
	Rows              int
	Columns           []ColumnDescription
	ClassCounts       []stats.Count
	SafetyByClass     *stats.CrossTab
	MeanClassByBuying []stats.GroupStat
}

type encoding struct {
	src, dst string
	enc      *dataprep.OrdinalEncoder
}

var encodings = []encoding{
	{data.ColClass, data.ColClassEncoded, dataprep.ClassEncoder},
	{data.ColBuying, data.ColBuyingEncoded, dataprep.PriceEncoder},
	{data.ColMaint, data.ColMaintEncoded, dataprep.PriceEncoder},
}

// Encode appends class_encoded, buying_encoded and maint_encoded to t.
// The first value outside its domain aborts with a *dataprep.EncodeError.
func Encode(t *data.Table) (*data.Table, error) {
	cur := t
	for _, e := range encodings {
		next, err := dataprep.EncodeColumn(cur, e.src, e.dst, e.enc)
		if err != nil {
			if cur != t {
				cur.Release()
			}
			return nil, fmt.Errorf("encode %s: %w", e.src, err)
		}
		if cur != t && next != cur {
			cur.Release()
		}
		cur = next
	}
	return cur, nil
}

// Summarize encodes t and computes the report over the encoded table,
// which it also returns. No statistic is computed if an encoding fails.
// The returned table is t itself when t already carries the encodings.
func Summarize(t *data.Table) (*Report, *data.Table, error) {
	enriched, err := Encode(t)
	if err != nil {
		return nil, nil, err
	}
	report, err := summarize(enriched)
	if err != nil {
		if enriched != t {
			enriched.Release()
		}
		return nil, nil, err
	}
	return report, enriched, nil
}

func summarize(t *data.Table) (*Report, error) {
	r := &Report{Rows: t.NumRows()}
	for _, name := range t.ColumnNames() {
		if !t.IsCategorical(name) {
			continue
		}
		values, err := t.Strings(name)
		if err != nil {
			return nil, err
		}
		r.Columns = append(r.Columns, ColumnDescription{Column: name, Description: stats.Describe(values)})
	}

	class, err := t.Strings(data.ColClass)
	if err != nil {
		return nil, err
	}
	r.ClassCounts = stats.CountsInOrder(class, data.ClassLevels)

	safety, err := t.Strings(data.ColSafety)
	if err != nil {
		return nil, err
	}
	if r.SafetyByClass, err = stats.NewCrossTab(safety, class, data.SafetyLevels, data.ClassLevels); err != nil {
		return nil, err
	}

	buying, err := t.Strings(data.ColBuying)
	if err != nil {
		return nil, err
	}
	codes, err := t.Ints(data.ColClassEncoded)
	if err != nil {
		return nil, err
	}
	encoded := make([]float64, len(codes))
	for i, c := range codes {
		encoded[i] = float64(c)
	}
	if r.MeanClassByBuying, err = stats.GroupMean(buying, encoded, data.PriceLevels); err != nil {
		return nil, err
	}
	return r, nil
}

// WriteTo prints the report as plain text tables.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "\n📈 Categorical Summary (%d rows):\n", r.Rows)
	fmt.Fprintf(tw, "\tcount\tunique\ttop\tfreq\n")
	for _, c := range r.Columns {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\n", c.Column, c.Count, c.Unique, c.Top, c.Freq)
	}

	fmt.Fprintf(tw, "\n🚗 Class Distribution:\n")
	for _, c := range r.ClassCounts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Value, c.N)
	}

	fmt.Fprintf(tw, "\n🚦 Class Distribution by Safety Rating:\n")
	if ct := r.SafetyByClass; ct != nil {
		fmt.Fprintf(tw, "safety\t%s\n", strings.Join(ct.ColLabels, "\t"))
		for _, row := range ct.RowLabels {
			cells := make([]string, len(ct.ColLabels))
			for j, col := range ct.ColLabels {
				cells[j] = fmt.Sprint(ct.At(row, col))
			}
			fmt.Fprintf(tw, "%s\t%s\n", row, strings.Join(cells, "\t"))
		}
	}

	fmt.Fprintf(tw, "\n💰 Average Class Rating by Buying Price:\n")
	for _, g := range r.MeanClassByBuying {
		fmt.Fprintf(tw, "%s\t%.6f\n", g.Key, g.Mean)
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

func (r *Report) String() string {
	var sb strings.Builder
	r.WriteTo(&sb)
	return sb.String()
}
