package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/MehmetK01/KNN-and-BiasVariance/model"
)

var (
	// ErrMissingLabelColumn is returned when the header lacks the label column.
	ErrMissingLabelColumn = errors.New("label column not found")

	// ErrNoRows is returned when a file has a header but no data rows.
	ErrNoRows = errors.New("no data rows")

	// ErrRowRange is returned by Table.Rows for an invalid range.
	ErrRowRange = errors.New("row range out of bounds")
)

// ParseError reports a cell that is not a finite number.
type ParseError struct {
	Line   int    // 1-based line number including the header
	Column string // Header name of the cell
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Options contains configuration options for reading a table.
type Options struct {
	// LabelColumn is the header name of the label column.
	LabelColumn string

	// Scale multiplies every feature value (e.g. 1.0/255 for pixel data).
	// Zero means 1.
	Scale float64

	// Limit stops reading after this many data rows. Zero means no limit.
	Limit int

	// Comma is the field delimiter.
	Comma rune
}

// DefaultOptions contains the default configuration options for reading a table.
var DefaultOptions = Options{
	LabelColumn: "label",
	Scale:       1,
	Comma:       ',',
}

// WithLabelColumn sets the header name of the label column.
func WithLabelColumn(name string) func(o *Options) {
	return func(o *Options) { o.LabelColumn = name }
}

// WithScale sets the feature multiplier.
func WithScale(f float64) func(o *Options) {
	return func(o *Options) { o.Scale = f }
}

// WithLimit caps the number of data rows read.
func WithLimit(n int) func(o *Options) {
	return func(o *Options) { o.Limit = n }
}

// Table is a labeled feature matrix.
type Table struct {
	// FeatureNames are the header names of the feature columns, in order.
	FeatureNames []string
	// Features holds one point per data row.
	Features []model.Point
	// Labels holds the label of each data row.
	Labels []float64
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Features) }

// Dimension returns the number of feature columns.
func (t *Table) Dimension() int { return len(t.FeatureNames) }

// Rows returns rows [lo, hi) as a new table sharing the underlying points.
func (t *Table) Rows(lo, hi int) (*Table, error) {
	if lo < 0 || hi > t.Len() || lo > hi {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrRowRange, lo, hi, t.Len())
	}
	return &Table{
		FeatureNames: t.FeatureNames,
		Features:     t.Features[lo:hi:hi],
		Labels:       t.Labels[lo:hi:hi],
	}, nil
}

// IntLabels converts labels to integer class labels.
func (t *Table) IntLabels() []int {
	out := make([]int, len(t.Labels))
	for i, l := range t.Labels {
		out[i] = int(math.Round(l))
	}
	return out
}

// Load reads a table from a local file, decompressing by extension.
func Load(path string, optFns ...func(o *Options)) (*Table, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := Read(rc, optFns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Read parses a header-first CSV table from r.
func Read(r io.Reader, optFns ...func(o *Options)) (*Table, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRows
		}
		return nil, err
	}
	header = slices.Clone(header)

	labelIdx := -1
	names := make([]string, 0, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == opts.LabelColumn && labelIdx < 0 {
			labelIdx = i
			continue
		}
		names = append(names, h)
	}
	if labelIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingLabelColumn, opts.LabelColumn)
	}

	t := &Table{FeatureNames: names}

	for line := 2; opts.Limit == 0 || t.Len() < opts.Limit; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		label, err := parseCell(rec[labelIdx])
		if err != nil {
			return nil, &ParseError{Line: line, Column: header[labelIdx], Err: err}
		}

		p := make(model.Point, 0, len(names))
		for i, cell := range rec {
			if i == labelIdx {
				continue
			}
			v, err := parseCell(cell)
			if err != nil {
				return nil, &ParseError{Line: line, Column: header[i], Err: err}
			}
			p = append(p, v*opts.Scale)
		}

		t.Features = append(t.Features, p)
		t.Labels = append(t.Labels, label)
	}

	if t.Len() == 0 {
		return nil, ErrNoRows
	}

	return t, nil
}

func parseCell(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
