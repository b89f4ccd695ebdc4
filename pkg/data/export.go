package data

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ExportParquet writes the table to a Snappy-compressed parquet file,
// creating the parent directory if needed.
func ExportParquet(t *Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}
	defer file.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(t.tbl.Schema(), file, props, arrowProps)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}
	if err := writer.WriteTable(t.tbl, max(t.tbl.NumRows(), 1)); err != nil {
		writer.Close()
		return fmt.Errorf("write parquet table: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
