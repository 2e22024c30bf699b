// Package dataset loads labeled tabular data for KNN experiments.
//
// Files are header-first CSV with one label column and numeric feature
// columns, e.g. the handwritten-digit layout
//
//	label,pixel0,pixel1,...,pixel783
//
// Compressed files are decoded transparently based on their extension:
//
//   - .gz: gzip
//   - .zst, .zstd: Zstandard
//   - .lz4: LZ4 frame
//
// The package reads local files and readers only.
package dataset
