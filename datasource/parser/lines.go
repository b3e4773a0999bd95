package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineReader reads newline-terminated lines of any length. Unlike a
// bufio.Scanner it has no token limit unless one is configured.
type LineReader struct {
	r       *bufio.Reader
	maxSize int
	line    string
	lineNum int64
	err     error
}

// NewLineReader returns a LineReader over r. A positive maxSize rejects longer lines.
func NewLineReader(r io.Reader, maxSize int) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, 64*1024), maxSize: maxSize}
}

// Scan advances to the next line, returning false at the end of input or on error
func (lr *LineReader) Scan() bool {
	if lr.err != nil {
		return false
	}
	line, err := lr.r.ReadString('\n')
	if err != nil {
		if err != io.EOF || line == "" {
			lr.err = err
			return false
		}
	}
	lr.lineNum++
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if lr.maxSize > 0 && len(line) > lr.maxSize {
		lr.err = fmt.Errorf("line %d: longer than %d bytes", lr.lineNum, lr.maxSize)
		return false
	}
	lr.line = line
	return true
}

// Text returns the current line without its terminator
func (lr *LineReader) Text() string {
	return lr.line
}

// Err returns the first read error, or nil at a clean end of input
func (lr *LineReader) Err() error {
	if lr.err == io.EOF {
		return nil
	}
	return lr.err
}
