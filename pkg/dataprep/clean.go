package dataprep

import (
	"errors"
	"fmt"
	"strings"

	"careval/pkg/data"
)

// ErrMissingValues indicates a table with null cells.
var ErrMissingValues = errors.New("dataprep: table has missing values")

// ErrDomain indicates a categorical value outside its declared domain.
var ErrDomain = errors.New("dataprep: value outside declared domain")

// DomainError reports the first out-of-domain value found by ValidateDomains.
type DomainError struct {
	Column string
	Row    int
	Value  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("dataprep: column %s row %d: %q is outside the declared domain", e.Column, e.Row, e.Value)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// CheckComplete fails if any column holds a missing value.
func CheckComplete(t *data.Table) error {
	var bad []string
	for _, c := range t.MissingCounts() {
		if c.Count > 0 {
			bad = append(bad, fmt.Sprintf("%s=%d", c.Column, c.Count))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingValues, strings.Join(bad, ", "))
	}
	return nil
}

// ValidateDomains checks every schema column present in t against its
// declared domain. Schema columns absent from t are reported as
// data.ErrNoColumn.
func ValidateDomains(t *data.Table, schema data.Schema) error {
	for _, spec := range schema.Columns {
		values, err := t.Strings(spec.Name)
		if err != nil {
			return err
		}
		for row, v := range values {
			if !spec.Contains(v) {
				return &DomainError{Column: spec.Name, Row: row, Value: v}
			}
		}
	}
	return nil
}
