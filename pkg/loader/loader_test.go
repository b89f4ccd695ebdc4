package loader_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careval/pkg/data"
	"careval/pkg/dataprep"
	"careval/pkg/loader"
)

// fakeSource returns canned feature and target columns.
type fakeSource struct {
	features [][]string
	targets  []string
	err      error
	gotID    int
}

func (f *fakeSource) Fetch(_ context.Context, id int) (*data.Fetched, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	names := []string{"buying", "maint", "doors", "persons", "lug_boot", "safety"}
	ft, err := data.FromColumns(names, f.features)
	if err != nil {
		return nil, err
	}
	tt, err := data.FromColumns([]string{"class"}, [][]string{f.targets})
	if err != nil {
		return nil, err
	}
	return &data.Fetched{ID: id, Name: "Car Evaluation", Features: ft, Targets: tt}, nil
}

func validFeatures() [][]string {
	return [][]string{
		{"vhigh", "low", "med"},
		{"vhigh", "low", "low"},
		{"2", "4", "3"},
		{"2", "more", "4"},
		{"small", "big", "med"},
		{"low", "high", "high"},
	}
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestLoad_OK(t *testing.T) {
	src := &fakeSource{features: validFeatures(), targets: []string{"unacc", "vgood", "good"}}
	var out bytes.Buffer
	l := loader.New(src, &out, quietLogger())

	res := l.Load(context.Background())
	require.True(t, res.OK(), "load failed: %v", res.Err)
	defer res.Table.Release()

	assert.Equal(t, loader.DefaultDatasetID, src.gotID)
	assert.Equal(t, 3, res.Table.NumRows())
	assert.Equal(t, data.CarEvaluation.Names(), res.Table.ColumnNames())
	require.NoError(t, dataprep.ValidateDomains(res.Table, data.CarEvaluation))

	text := out.String()
	assert.Contains(t, text, "First 3 Rows")
	assert.Contains(t, text, "3 rows, 7 columns")
	assert.Contains(t, text, "Missing Values")
	assert.Contains(t, text, "No missing values detected")
}

func TestLoad_Failures(t *testing.T) {
	network := errors.New("connection refused")
	cases := []struct {
		name string
		src  *fakeSource
		err  error
	}{
		{
			name: "FetchError",
			src:  &fakeSource{err: network},
			err:  network,
		},
		{
			name: "RowMismatch",
			src:  &fakeSource{features: validFeatures(), targets: []string{"unacc", "vgood"}},
			err:  data.ErrRowMismatch,
		},
		{
			name: "MissingValues",
			src:  &fakeSource{features: validFeatures(), targets: []string{"unacc", "?", "good"}},
			err:  dataprep.ErrMissingValues,
		},
		{
			name: "OutOfDomain",
			src:  &fakeSource{features: validFeatures(), targets: []string{"unacc", "excellent", "good"}},
			err:  dataprep.ErrDomain,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			l := loader.New(tc.src, io.Discard, log.New(&logs, "", 0))

			res := l.Load(context.Background())
			assert.False(t, res.OK())
			assert.Nil(t, res.Table)
			require.ErrorIs(t, res.Err, tc.err)
			assert.Contains(t, logs.String(), "Error loading dataset")
		})
	}
}

func TestLoad_NilWriter(t *testing.T) {
	src := &fakeSource{features: validFeatures(), targets: []string{"unacc", "vgood", "good"}}
	l := loader.New(src, nil, quietLogger())
	res := l.Load(context.Background())
	require.True(t, res.OK())
	res.Table.Release()
}

func TestResult_OK(t *testing.T) {
	assert.False(t, loader.Result{}.OK())
	empty := data.Empty()
	defer empty.Release()
	assert.True(t, loader.Result{Table: empty}.OK(), "a zero-row table is still a successful load")
}
