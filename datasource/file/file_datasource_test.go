package file

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/datasource/parser"
	"github.com/go-sif/tabrec/datasource/parser/jsonl"
	"github.com/go-sif/tabrec/errors"
	"github.com/go-sif/tabrec/schema"
	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func readingSchema(t *testing.T) tabrec.Schema {
	s, err := schema.CreateDelimitedSchema("Reading", []schema.Field{
		{Name: "station", Type: &tabrec.StringColumnType{}, Start: schema.Undeclared, End: schema.Undeclared},
		{Name: "depth", Type: &tabrec.DecimalColumnType{}, Start: schema.Undeclared, End: schema.Undeclared},
	}, ",")
	require.Nil(t, err)
	return s
}

func writeFile(t *testing.T, fs afero.Fs, path string, data []byte) {
	require.Nil(t, afero.WriteFile(fs, path, data, 0644))
}

func stations(records []*tabrec.Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = tabrec.ValueToString(r.Value(0))
	}
	return names
}

func TestReadSingleFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/readings.csv", []byte("KOSH,1.25\nKBOS,abc\n"))
	ds := CreateDataSource(Source{File: "/data/readings.csv"}, readingSchema(t), &DataSourceConf{Fs: fs})
	records, err := ds.Read(context.Background())
	require.Nil(t, err)
	require.Equal(t, []string{"KOSH", "KBOS"}, stations(records))
	require.True(t, records[1].IsNil("depth"))

	st := ds.Stats()
	require.Equal(t, int64(1), st.GetNumFiles())
	require.Equal(t, int64(2), st.GetNumLines())
	require.Equal(t, int64(2), st.GetNumRecords())
	require.Equal(t, int64(1), st.GetNumCoercionFailures())
}

func TestReadDirectoryInFileOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/b.csv", []byte("B1,1.0\nB2,2.0\n"))
	writeFile(t, fs, "/data/a.csv", []byte("A1,1.0\n"))
	writeFile(t, fs, "/data/nested/c.csv", []byte("C1,1.0\n"))
	writeFile(t, fs, "/data/notes.txt", []byte("ignored\n"))

	for _, parallelism := range []int64{1, 4} {
		records, err := ReadRecords(context.Background(), readingSchema(t), Source{Directory: "/data", Extension: ".csv"},
			&DataSourceConf{Fs: fs, Parallelism: parallelism})
		require.Nil(t, err)
		require.Equal(t, []string{"A1", "B1", "B2", "C1"}, stations(records))
	}
}

func TestReadDirectoryMatchingNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/obs_2020.csv", []byte("O20,1.0\n"))
	writeFile(t, fs, "/data/obs_2021_draft.csv", []byte("D21,1.0\n"))
	writeFile(t, fs, "/data/obs_2021.csv", []byte("O21,1.0\n"))
	writeFile(t, fs, "/data/old_2021.csv", []byte("X21,1.0\n"))
	writeFile(t, fs, "/data/obs_2021.txt", []byte("T21,1.0\n"))

	source := Source{Directory: "/data", Extension: ".csv", StartsWith: "obs", Contains: "2021", NotContains: "draft"}
	records, err := ReadRecords(context.Background(), readingSchema(t), source, &DataSourceConf{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, []string{"O21"}, stations(records))

	records, err = ReadRecords(context.Background(), readingSchema(t), Source{Directory: "/data", StartsWith: "old"}, &DataSourceConf{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, []string{"X21"}, stations(records))

	records, err = ReadRecords(context.Background(), readingSchema(t), Source{Directory: "/data"}, &DataSourceConf{Fs: fs})
	require.Nil(t, err)
	require.Len(t, records, 5)
}

func TestReadEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/empty.csv", []byte{})
	records, err := ReadRecords(context.Background(), readingSchema(t), Source{File: "/empty.csv"}, &DataSourceConf{Fs: fs})
	require.Nil(t, err)
	require.NotNil(t, records)
	require.Len(t, records, 0)
}

func TestReadMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := ReadRecords(context.Background(), readingSchema(t), Source{File: "/missing.csv"}, &DataSourceConf{Fs: fs})
	uerr, ok := err.(*errors.UnreadableSourceError)
	require.True(t, ok)
	require.Equal(t, "/missing.csv", uerr.Path)
}

func TestAnalyzeWithoutSource(t *testing.T) {
	_, err := CreateDataSource(Source{}, readingSchema(t), &DataSourceConf{Fs: afero.NewMemMapFs()}).Analyze()
	require.NotNil(t, err)
}

func TestReadStrictCoercionFailsBatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/r.csv", []byte("KOSH,deep\n"))
	_, err := ReadRecords(context.Background(), readingSchema(t), Source{File: "/r.csv"},
		&DataSourceConf{Fs: fs, Parser: &parser.ParserConf{StrictCoercion: true}})
	_, ok := err.(*multierror.Error)
	require.True(t, ok)
}

func TestDecimalPrecisionIsPerFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/d/a.csv", []byte("A,1.123456\n"))
	writeFile(t, fs, "/d/b.csv", []byte("B,2.5\n"))
	records, err := ReadRecords(context.Background(), readingSchema(t), Source{Directory: "/d", Extension: ".csv"},
		&DataSourceConf{Fs: fs, Parallelism: 2})
	require.Nil(t, err)
	require.Equal(t, "1.123456", tabrec.ValueToString(records[0].Value(1)))
	require.Equal(t, "2.5", tabrec.ValueToString(records[1].Value(1)))
}

func TestReadCompressedFiles(t *testing.T) {
	plain := []byte("KOSH,1.0\nKBOS,2.0\n")
	fs := afero.NewMemMapFs()

	var lz4Buf bytes.Buffer
	lw := lz4.NewWriter(&lz4Buf)
	_, err := lw.Write(plain)
	require.Nil(t, err)
	require.Nil(t, lw.Close())
	writeFile(t, fs, "/c/a.csv.lz4", lz4Buf.Bytes())

	var zstdBuf bytes.Buffer
	zw, err := zstd.NewWriter(&zstdBuf, zstd.WithEncoderConcurrency(1))
	require.Nil(t, err)
	_, err = zw.Write(plain)
	require.Nil(t, err)
	require.Nil(t, zw.Close())
	writeFile(t, fs, "/c/b.csv.zst", zstdBuf.Bytes())

	for _, path := range []string{"/c/a.csv.lz4", "/c/b.csv.zst"} {
		records, err := ReadRecords(context.Background(), readingSchema(t), Source{File: path}, &DataSourceConf{Fs: fs})
		require.Nil(t, err)
		require.Equal(t, []string{"KOSH", "KBOS"}, stations(records))
	}
}

func TestReadJSONLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/r.jsonl", []byte(`{"station": "KOSH", "depth": 1.50}`+"\n"))
	records, err := ReadRecords(context.Background(), readingSchema(t), Source{File: "/r.jsonl"}, &DataSourceConf{
		Fs:        fs,
		NewParser: func() parser.ContextParser { return jsonl.CreateParser(nil) },
	})
	require.Nil(t, err)
	require.Equal(t, []string{"KOSH"}, stations(records))
	require.Equal(t, "1.50", tabrec.ValueToString(records[0].Value(1)))
}
