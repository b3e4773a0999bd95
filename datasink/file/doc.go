// Package file provides a DataSink which appends serialized records to a file.
// Destinations ending in .lz4 or .zst receive one compressed frame per Write.
package file
