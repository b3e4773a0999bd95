package parser

import (
	"strings"

	"github.com/go-sif/tabrec"
)

// Segmenter splits one raw line into ordered tokens
type Segmenter interface {
	Segment(line string) []string
}

// CreateSegmenter returns the Segmenter matching the Layout of a Schema
func CreateSegmenter(schema tabrec.Schema) Segmenter {
	if schema.Layout() == tabrec.FixedWidthLayout {
		return &FixedWidthSegmenter{intervals: schema.Intervals()}
	}
	return &DelimitedSegmenter{delimiter: schema.Delimiter()}
}

// FixedWidthSegmenter slices a line at byte intervals and trims each slice
type FixedWidthSegmenter struct {
	intervals []tabrec.Interval
}

// CreateFixedWidthSegmenter is a factory for FixedWidthSegmenters
func CreateFixedWidthSegmenter(intervals []tabrec.Interval) *FixedWidthSegmenter {
	return &FixedWidthSegmenter{intervals: intervals}
}

// Segment produces exactly one token per interval. Intervals which fall past
// the end of the line produce empty tokens.
func (s *FixedWidthSegmenter) Segment(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	tokens := make([]string, len(s.intervals))
	for i, iv := range s.intervals {
		start := iv.Start
		if start < 0 {
			start = 0
		}
		if start >= len(line) {
			continue
		}
		end := iv.End
		if end < 0 || end > len(line) {
			end = len(line)
		}
		if end <= start {
			continue
		}
		tokens[i] = strings.TrimSpace(line[start:end])
	}
	return tokens
}

// DelimitedSegmenter splits a line on a delimiter. There is no quoting or escaping.
type DelimitedSegmenter struct {
	delimiter string
}

// CreateDelimitedSegmenter is a factory for DelimitedSegmenters
func CreateDelimitedSegmenter(delimiter string) *DelimitedSegmenter {
	return &DelimitedSegmenter{delimiter: delimiter}
}

// Segment splits line on the delimiter. A single trailing delimiter terminates
// the last field rather than starting an empty one, and an empty line has no tokens.
func (s *DelimitedSegmenter) Segment(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return []string{}
	}
	if s.delimiter == "" {
		return []string{line}
	}
	tokens := strings.Split(line, s.delimiter)
	if n := len(tokens); n > 1 && tokens[n-1] == "" {
		tokens = tokens[:n-1]
	}
	return tokens
}
