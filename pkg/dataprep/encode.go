package dataprep

import (
	"errors"
	"fmt"
	"slices"

	"careval/pkg/data"
)

var (
	// ErrUnknownCategory indicates a value outside an encoder's categories.
	ErrUnknownCategory = errors.New("dataprep: value outside the encoder's categories")
	// ErrUnknownCode indicates a code that decodes to no category.
	ErrUnknownCode = errors.New("dataprep: code outside the encoder's range")
	// ErrEncodingConflict indicates an existing derived column with different codes.
	ErrEncodingConflict = errors.New("dataprep: derived column already holds different codes")
)

// EncodeError reports the first value an encoder could not map.
type EncodeError struct {
	Column string
	Row    int
	Value  string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("dataprep: column %s row %d: cannot encode %q", e.Column, e.Row, e.Value)
}

func (e *EncodeError) Unwrap() error { return ErrUnknownCategory }

// OrdinalEncoder maps an ordered categorical domain onto consecutive
// integers starting at Base. Categories are listed lowest first.
type OrdinalEncoder struct {
	Categories []string
	Base       int
	index      map[string]int
}

// NewOrdinalEncoder builds an encoder; categories must be distinct.
func NewOrdinalEncoder(base int, categories ...string) *OrdinalEncoder {
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		if _, dup := index[c]; dup {
			panic(fmt.Sprintf("dataprep: duplicate category %q", c))
		}
		index[c] = base + i
	}
	return &OrdinalEncoder{Categories: slices.Clone(categories), Base: base, index: index}
}

var (
	// ClassEncoder maps unacc, acc, good, vgood to 0..3.
	ClassEncoder = NewOrdinalEncoder(0, data.ClassLevels...)
	// PriceEncoder maps low, med, high, vhigh to 1..4.
	PriceEncoder = NewOrdinalEncoder(1, data.PriceLevels...)
)

// Encode returns the code for v.
func (e *OrdinalEncoder) Encode(v string) (int, error) {
	code, ok := e.index[v]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, v)
	}
	return code, nil
}

// Decode returns the category for code.
func (e *OrdinalEncoder) Decode(code int) (string, error) {
	i := code - e.Base
	if i < 0 || i >= len(e.Categories) {
		return "", fmt.Errorf("%w: %d", ErrUnknownCode, code)
	}
	return e.Categories[i], nil
}

// EncodeAll encodes a whole column. It stops at the first unknown value
// and reports its row; no partial result is returned.
func (e *OrdinalEncoder) EncodeAll(column string, values []string) ([]int64, error) {
	out := make([]int64, len(values))
	for i, v := range values {
		code, ok := e.index[v]
		if !ok {
			return nil, &EncodeError{Column: column, Row: i, Value: v}
		}
		out[i] = int64(code)
	}
	return out, nil
}

// EncodeColumn appends dst, the encoding of src, to t and returns the new
// table. If dst already exists with identical codes, t is returned unchanged.
func EncodeColumn(t *data.Table, src, dst string, enc *OrdinalEncoder) (*data.Table, error) {
	values, err := t.Strings(src)
	if err != nil {
		return nil, err
	}
	codes, err := enc.EncodeAll(src, values)
	if err != nil {
		return nil, err
	}
	if t.HasColumn(dst) {
		existing, err := t.Ints(dst)
		if err != nil {
			return nil, err
		}
		if !slices.Equal(existing, codes) {
			return nil, fmt.Errorf("%w: %s", ErrEncodingConflict, dst)
		}
		return t, nil
	}
	return t.WithIntColumn(dst, codes)
}
