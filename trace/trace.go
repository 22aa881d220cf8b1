// Package trace records executed instructions and exports them as a
// dataframe, CSV or Parquet file.
package trace

import (
	"context"
	"io"
	"slices"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/exports"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/xitongsys/parquet-go-source/local"
)

// Column names of a trace frame.
const (
	COLUMN_TICK        = "tick"
	COLUMN_PC          = "pc"
	COLUMN_WORD        = "word"
	COLUMN_INSTRUCTION = "instruction"
	COLUMN_ERROR       = "error"
)

// Record is one executed, or attempted, instruction.
type Record struct {
	Tick int    // CPU tick count before the step.
	Pc   uint32 // Program counter of the instruction.
	Word uint32 // Instruction word.
	Text string // Disassembly, empty if the word did not decode.
	Err  error  // Step error, if any.
}

// Recorder accumulates records.
type Recorder struct {
	Limit int // If positive, only the most recent Limit records are kept.

	records []Record
}

// Add appends a record.
func (rec *Recorder) Add(record Record) {
	if rec.Limit > 0 && len(rec.records) >= rec.Limit {
		drop := len(rec.records) - rec.Limit + 1
		rec.records = slices.Delete(rec.records, 0, drop)
	}
	rec.records = append(rec.records, record)
}

// Records returns a copy of the retained records, oldest first.
func (rec *Recorder) Records() []Record {
	return slices.Clone(rec.records)
}

// Len returns the number of retained records.
func (rec *Recorder) Len() int {
	return len(rec.records)
}

// Reset discards all records.
func (rec *Recorder) Reset() {
	rec.records = rec.records[:0]
}

// Frame returns the records as a dataframe.
func (rec *Recorder) Frame() *dataframe.DataFrame {
	n := len(rec.records)
	ticks := make([]any, n)
	pcs := make([]any, n)
	words := make([]any, n)
	texts := make([]any, n)
	errs := make([]any, n)

	for i, record := range rec.records {
		ticks[i] = int64(record.Tick)
		pcs[i] = int64(record.Pc)
		words[i] = int64(record.Word)
		texts[i] = record.Text
		errs[i] = ""
		if record.Err != nil {
			errs[i] = record.Err.Error()
		}
	}

	size := &dataframe.SeriesInit{Capacity: n}

	return dataframe.NewDataFrame(
		dataframe.NewSeriesInt64(COLUMN_TICK, size, ticks...),
		dataframe.NewSeriesInt64(COLUMN_PC, size, pcs...),
		dataframe.NewSeriesInt64(COLUMN_WORD, size, words...),
		dataframe.NewSeriesString(COLUMN_INSTRUCTION, size, texts...),
		dataframe.NewSeriesString(COLUMN_ERROR, size, errs...),
	)
}

// WriteCSV writes the records as CSV, with a header row.
func (rec *Recorder) WriteCSV(ctx context.Context, w io.Writer) (err error) {
	return exports.ExportToCSV(ctx, w, rec.Frame())
}

// WriteParquet writes the records to a Parquet file.
func (rec *Recorder) WriteParquet(ctx context.Context, path string) (err error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return
	}
	defer func() {
		cerr := fw.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = exports.ExportToParquet(ctx, fw, rec.Frame())
	if err != nil {
		err = &ErrFile{Path: path, Err: err}
	}

	return
}

// LoadParquet reads a trace written by WriteParquet.
func LoadParquet(ctx context.Context, path string) (df *dataframe.DataFrame, err error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return
	}
	defer fr.Close()

	df, err = imports.LoadFromParquet(ctx, fr)
	if err != nil {
		err = &ErrFile{Path: path, Err: err}
		return
	}

	if df == nil || len(df.Series) == 0 {
		df = nil
		err = &ErrFile{Path: path, Err: ErrEmpty}
		return
	}

	return
}
