// Package jsonrec exports Records as JSON objects whose keys follow Schema
// order. Decimals are written as bare numbers at their precision and null
// fields as null. The datasource/parser/jsonl package reads the output back.
package jsonrec

import (
	"bytes"
	"io"

	"github.com/go-sif/tabrec"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal encodes one Record as a JSON object
func Marshal(record *tabrec.Record) ([]byte, error) {
	var buf bytes.Buffer
	stream := jsoniter.NewStream(json, &buf, 512)
	writeRecord(stream, record)
	if err := stream.Flush(); err != nil {
		return nil, err
	}
	if stream.Error != nil {
		return nil, stream.Error
	}
	return buf.Bytes(), nil
}

// WriteLines writes one JSON object per line and returns the number of Records written
func WriteLines(w io.Writer, records []*tabrec.Record) (int, error) {
	stream := jsoniter.NewStream(json, w, 4096)
	for i, record := range records {
		writeRecord(stream, record)
		stream.WriteRaw("\n")
		if stream.Error != nil {
			return i, stream.Error
		}
	}
	if err := stream.Flush(); err != nil {
		return 0, err
	}
	return len(records), nil
}

func writeRecord(stream *jsoniter.Stream, record *tabrec.Record) {
	stream.WriteObjectStart()
	i := 0
	record.ForEachField(func(name string, value interface{}) error {
		if i > 0 {
			stream.WriteMore()
		}
		i++
		stream.WriteObjectField(name)
		stream.WriteVal(value)
		return nil
	})
	stream.WriteObjectEnd()
}
