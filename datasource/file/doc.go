// Package file provides a DataSource which reads records from files on disk.
// A DataSource reads either a single file or every matching file beneath a
// directory, parsing each file with its own Parser state, and returns the
// records in file order and then line order. Files ending in .lz4 or .zst are
// decompressed transparently.
package file
