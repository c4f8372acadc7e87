package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sonic-skyline/horizon-finder/internal/horizon"
)

// WriteImageCSV writes a single-frame sequence as one row per column:
//
//	column,height
//	0,124
//	1,-1
//	...
//
// Missing columns are written as -1 so the file keeps one row per column.
func WriteImageCSV(w io.Writer, seq horizon.Sequence) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"column", "height"}); err != nil {
		return fmt.Errorf("csv write header: %w", err)
	}
	for c, h := range seq {
		if err := cw.Write([]string{strconv.Itoa(c), strconv.Itoa(h)}); err != nil {
			return fmt.Errorf("csv write column %d: %w", c, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes one row per sampled frame, each row holding the
// frame's ordered heights left to right with Missing encoded as -1.
func WriteSeriesCSV(w io.Writer, frames []horizon.Sequence) error {
	cw := csv.NewWriter(w)
	row := make([]string, 0, 64)
	for i, seq := range frames {
		row = row[:0]
		for _, h := range seq {
			row = append(row, strconv.Itoa(h))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv write frame %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveImageCSV writes a single-frame CSV to path, creating or truncating the
// file.
func SaveImageCSV(path string, seq horizon.Sequence) error {
	return saveCSV(path, func(w io.Writer) error { return WriteImageCSV(w, seq) })
}

// SaveSeriesCSV writes a multi-frame CSV to path, creating or truncating the
// file.
func SaveSeriesCSV(path string, frames []horizon.Sequence) error {
	return saveCSV(path, func(w io.Writer) error { return WriteSeriesCSV(w, frames) })
}

func saveCSV(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
