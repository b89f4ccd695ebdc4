package data

import "errors"

var (
	// ErrRowMismatch indicates two column sets that cannot be aligned row by row.
	ErrRowMismatch = errors.New("data: row counts do not match")
	// ErrNoColumn indicates a lookup of a column the table does not have.
	ErrNoColumn = errors.New("data: no such column")
	// ErrColumnExists indicates an append that would shadow an existing column.
	ErrColumnExists = errors.New("data: column already exists")
	// ErrColumnType indicates a column read with the wrong accessor.
	ErrColumnType = errors.New("data: unexpected column type")
	// ErrNoData indicates a dataset without downloadable tabular data.
	ErrNoData = errors.New("data: dataset has no tabular data")
	// ErrSchemaMismatch indicates metadata and file contents that disagree.
	ErrSchemaMismatch = errors.New("data: schema mismatch")
)
