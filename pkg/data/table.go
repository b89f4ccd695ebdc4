package data

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// MissingTokens are the raw values read as missing (null) on ingestion.
var MissingTokens = []string{"", "NA", "NaN", "?"}

// IsMissing reports whether a raw value denotes a missing cell.
func IsMissing(v string) bool {
	for _, tok := range MissingTokens {
		if v == tok {
			return true
		}
	}
	return false
}

var pool = memory.NewGoAllocator()

// Table is an immutable, column-oriented record table backed by Arrow.
// Operations that add columns return a new Table and leave the receiver as is.
type Table struct {
	tbl arrow.Table
}

// NewTable wraps an Arrow table. The Table takes ownership of tbl.
func NewTable(tbl arrow.Table) *Table {
	return &Table{tbl: tbl}
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return NewTable(array.NewTable(arrow.NewSchema(nil, nil), nil, 0))
}

// FromColumns builds a table of string columns. Values listed in
// MissingTokens are stored as nulls.
func FromColumns(names []string, cols [][]string) (*Table, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrRowMismatch, len(names), len(cols))
	}
	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0])
	}
	seen := make(map[string]struct{}, len(names))
	fields := make([]arrow.Field, len(names))
	columns := make([]arrow.Column, len(names))
	for i, name := range names {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrColumnExists, name)
		}
		seen[name] = struct{}{}
		if len(cols[i]) != rows {
			return nil, fmt.Errorf("%w: column %s has %d rows, want %d", ErrRowMismatch, name, len(cols[i]), rows)
		}
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
		columns[i] = stringColumn(fields[i], cols[i])
	}
	return newTable(fields, columns, rows), nil
}

func stringColumn(field arrow.Field, vals []string) arrow.Column {
	b := array.NewStringBuilder(pool)
	defer b.Release()
	b.Reserve(len(vals))
	for _, v := range vals {
		if IsMissing(v) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return chunkedColumn(field, b.NewArray())
}

func intColumn(field arrow.Field, vals []int64) arrow.Column {
	b := array.NewInt64Builder(pool)
	defer b.Release()
	b.AppendValues(vals, nil)
	return chunkedColumn(field, b.NewArray())
}

func chunkedColumn(field arrow.Field, arr arrow.Array) arrow.Column {
	defer arr.Release()
	chunked := arrow.NewChunked(field.Type, []arrow.Array{arr})
	defer chunked.Release()
	return *arrow.NewColumn(field, chunked)
}

// newTable assembles a table and drops the caller's column references.
func newTable(fields []arrow.Field, columns []arrow.Column, rows int) *Table {
	tbl := array.NewTable(arrow.NewSchema(fields, nil), columns, int64(rows))
	for i := range columns {
		columns[i].Release()
	}
	return NewTable(tbl)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if t == nil || t.tbl == nil {
		return 0
	}
	return int(t.tbl.NumRows())
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	if t == nil || t.tbl == nil {
		return 0
	}
	return int(t.tbl.NumCols())
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	out := make([]string, t.NumCols())
	for i := range out {
		out[i] = t.tbl.Schema().Field(i).Name
	}
	return out
}

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool {
	if t.NumCols() == 0 {
		return false
	}
	return len(t.tbl.Schema().FieldIndices(name)) > 0
}

// TypeOf returns the Arrow type name of a column ("utf8", "int64").
func (t *Table) TypeOf(name string) (string, error) {
	col, err := t.column(name)
	if err != nil {
		return "", err
	}
	return col.DataType().Name(), nil
}

// IsCategorical reports whether name is a string column.
func (t *Table) IsCategorical(name string) bool {
	col, err := t.column(name)
	return err == nil && col.DataType().ID() == arrow.STRING
}

func (t *Table) column(name string) (*arrow.Column, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("%w: %s", ErrNoColumn, name)
	}
	return t.tbl.Column(t.tbl.Schema().FieldIndices(name)[0]), nil
}

// Strings returns a string column. Nulls come back as "".
func (t *Table) Strings(name string) ([]string, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, col.Len())
	for _, chunk := range col.Data().Chunks() {
		arr, ok := chunk.(*array.String)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %s, not utf8", ErrColumnType, name, col.DataType().Name())
		}
		for i := 0; i < arr.Len(); i++ {
			if arr.IsNull(i) {
				out = append(out, "")
				continue
			}
			out = append(out, arr.Value(i))
		}
	}
	return out, nil
}

// Ints returns an int64 column. Nulls come back as 0.
func (t *Table) Ints(name string) ([]int64, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, col.Len())
	for _, chunk := range col.Data().Chunks() {
		arr, ok := chunk.(*array.Int64)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %s, not int64", ErrColumnType, name, col.DataType().Name())
		}
		for i := 0; i < arr.Len(); i++ {
			out = append(out, arr.Value(i))
		}
	}
	return out, nil
}

// ColumnCount pairs a column name with a count.
type ColumnCount struct {
	Column string
	Count  int
}

// MissingCounts returns the number of nulls per column, in column order.
func (t *Table) MissingCounts() []ColumnCount {
	out := make([]ColumnCount, t.NumCols())
	for i := range out {
		out[i] = ColumnCount{
			Column: t.tbl.Schema().Field(i).Name,
			Count:  t.tbl.Column(i).NullN(),
		}
	}
	return out
}

// TotalMissing returns the number of null cells in the table.
func (t *Table) TotalMissing() int {
	total := 0
	for _, c := range t.MissingCounts() {
		total += c.Count
	}
	return total
}

// Head returns the first n rows rendered as strings, nulls shown as "<NA>".
func (t *Table) Head(n int) [][]string {
	n = max(0, min(n, t.NumRows()))
	out := make([][]string, n)
	for r := range out {
		out[r] = make([]string, t.NumCols())
	}
	for c := 0; c < t.NumCols(); c++ {
		r := 0
		for _, chunk := range t.tbl.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len() && r < n; i++ {
				out[r][c] = cellString(chunk, i)
				r++
			}
		}
	}
	return out
}

func cellString(arr arrow.Array, i int) string {
	if arr.IsNull(i) {
		return "<NA>"
	}
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i)
	case *array.Int64:
		return strconv.FormatInt(a.Value(i), 10)
	default:
		return a.ValueStr(i)
	}
}

// Select returns a table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	fields := make([]arrow.Field, 0, len(names))
	columns := make([]arrow.Column, 0, len(names))
	for _, name := range names {
		col, err := t.column(name)
		if err != nil {
			return nil, err
		}
		col.Retain()
		fields = append(fields, col.Field())
		columns = append(columns, *col)
	}
	return newTable(fields, columns, t.NumRows()), nil
}

// Concat joins two tables column-wise. Both sides must have the same number
// of rows; row i of the result is row i of left followed by row i of right.
func Concat(left, right *Table) (*Table, error) {
	if left.NumRows() != right.NumRows() {
		return nil, fmt.Errorf("%w: %d vs %d", ErrRowMismatch, left.NumRows(), right.NumRows())
	}
	fields := make([]arrow.Field, 0, left.NumCols()+right.NumCols())
	columns := make([]arrow.Column, 0, cap(fields))
	for _, side := range []*Table{left, right} {
		for i := 0; i < side.NumCols(); i++ {
			col := side.tbl.Column(i)
			if left.HasColumn(col.Name()) && side == right {
				for j := range columns {
					columns[j].Release()
				}
				return nil, fmt.Errorf("%w: %s", ErrColumnExists, col.Name())
			}
			col.Retain()
			fields = append(fields, col.Field())
			columns = append(columns, *col)
		}
	}
	return newTable(fields, columns, left.NumRows()), nil
}

// WithIntColumn returns a new table with an int64 column appended.
func (t *Table) WithIntColumn(name string, vals []int64) (*Table, error) {
	if t.HasColumn(name) {
		return nil, fmt.Errorf("%w: %s", ErrColumnExists, name)
	}
	if len(vals) != t.NumRows() {
		return nil, fmt.Errorf("%w: %d values for %d rows", ErrRowMismatch, len(vals), t.NumRows())
	}
	fields := make([]arrow.Field, 0, t.NumCols()+1)
	columns := make([]arrow.Column, 0, t.NumCols()+1)
	for i := 0; i < t.NumCols(); i++ {
		col := t.tbl.Column(i)
		col.Retain()
		fields = append(fields, col.Field())
		columns = append(columns, *col)
	}
	field := arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Int64}
	fields = append(fields, field)
	columns = append(columns, intColumn(field, vals))
	return newTable(fields, columns, t.NumRows()), nil
}

// Arrow exposes the underlying Arrow table. It stays owned by t.
func (t *Table) Arrow() arrow.Table {
	return t.tbl
}

// Release drops the table's reference to its Arrow buffers.
func (t *Table) Release() {
	if t != nil && t.tbl != nil {
		t.tbl.Release()
	}
}
