package file

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/errors"
	"github.com/go-sif/tabrec/internal/compress"
	"github.com/go-sif/tabrec/schema"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func pairSchema(t *testing.T) tabrec.Schema {
	s, err := schema.CreateDelimitedSchema("Key Pair", []schema.Field{
		{Name: "k", Start: schema.Undeclared, End: schema.Undeclared},
		{Name: "v", Type: &tabrec.IntegerColumnType{}, Start: schema.Undeclared, End: schema.Undeclared},
	}, "\t")
	require.Nil(t, err)
	return s
}

func TestWriteAppends(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := pairSchema(t)
	conf := &DataSinkConf{Fs: fs}

	n, err := WriteRecords(context.Background(), []*tabrec.Record{
		tabrec.CreateRecord(s, []interface{}{"a", int64(1)}),
		tabrec.CreateRecord(s, []interface{}{"b", nil}),
	}, s, "/out/pairs.tsv", conf)
	require.Nil(t, err)
	require.Equal(t, 2, n)

	sink := CreateDataSink("/out/pairs.tsv", s, conf)
	n, err = sink.Write(context.Background(), []*tabrec.Record{tabrec.CreateRecord(s, []interface{}{"c", int64(3)})})
	require.Nil(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, int64(1), sink.Stats().GetNumRecords())

	data, err := afero.ReadFile(fs, "/out/pairs.tsv")
	require.Nil(t, err)
	require.Equal(t, "a\t1\t\nb\t\t\nc\t3\t\n", string(data))
}

func TestWriteFixedWidth(t *testing.T) {
	s, err := schema.CreateFixedWidthSchema("Station", []schema.Field{
		{Name: "id", Start: 0, End: 3},
		{Name: "elev", Type: &tabrec.FloatColumnType{}, Start: 4, End: 9, Justify: tabrec.JustifyRight},
	}, "")
	require.Nil(t, err)
	fs := afero.NewMemMapFs()
	_, err = WriteRecords(context.Background(), []*tabrec.Record{
		tabrec.CreateRecord(s, []interface{}{"KOSH", 94.0}),
	}, s, "/st.txt", &DataSinkConf{Fs: fs})
	require.Nil(t, err)
	data, err := afero.ReadFile(fs, "/st.txt")
	require.Nil(t, err)
	require.Equal(t, "KOS  94.0\n", string(data))
}

func TestWriteEmptyCreatesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	n, err := WriteRecords(context.Background(), nil, pairSchema(t), "/empty.tsv", &DataSinkConf{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, 0, n)
	exists, err := afero.Exists(fs, "/empty.tsv")
	require.Nil(t, err)
	require.True(t, exists)
}

func TestWriteUnwritableDestination(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, err := WriteRecords(context.Background(), nil, pairSchema(t), "/nope.tsv", &DataSinkConf{Fs: fs})
	uerr, ok := err.(*errors.UnwritableDestinationError)
	require.True(t, ok)
	require.Equal(t, "/nope.tsv", uerr.Path)
}

func TestConcurrentWritesDoNotInterleave(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := pairSchema(t)
	errs := make([]error, 4)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			records := make([]*tabrec.Record, 50)
			for j := range records {
				records[j] = tabrec.CreateRecord(s, []interface{}{"k", int64(i)})
			}
			_, errs[i] = WriteRecords(context.Background(), records, s, "/shared.tsv", &DataSinkConf{Fs: fs})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.Nil(t, err)
	}
	data, err := afero.ReadFile(fs, "/shared.tsv")
	require.Nil(t, err)
	require.Len(t, data, 4*50*len("k\t0\t\n"))
}

func TestDefaultOutputName(t *testing.T) {
	ts := time.Date(2021, 3, 4, 5, 6, 7, 123456000, time.UTC)
	require.Equal(t, "KeyPair_2021-03-04.05:06:07.123456", DefaultOutputName("Key Pair", ts))
	require.Equal(t, "KeyPair_", CreateDataSink("", pairSchema(t), &DataSinkConf{Fs: afero.NewMemMapFs()}).Path()[:8])
}

func TestWriteCompressed(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := pairSchema(t)
	_, err := WriteRecords(context.Background(), []*tabrec.Record{
		tabrec.CreateRecord(s, []interface{}{"a", int64(1)}),
	}, s, "/pairs.tsv.zst", &DataSinkConf{Fs: fs})
	require.Nil(t, err)

	f, err := fs.Open("/pairs.tsv.zst")
	require.Nil(t, err)
	defer f.Close()
	r, closeFn, err := compress.NewReader("/pairs.tsv.zst", f)
	require.Nil(t, err)
	defer closeFn()
	data, err := io.ReadAll(r)
	require.Nil(t, err)
	require.Equal(t, "a\t1\t\n", string(data))
}

func TestWriteUsesSinkSchema(t *testing.T) {
	read, err := schema.CreateDelimitedSchema("Point", []schema.Field{
		{Name: "x", Start: schema.Undeclared, End: schema.Undeclared},
		{Name: "y", Start: schema.Undeclared, End: schema.Undeclared},
		{Name: "z", Start: schema.Undeclared, End: schema.Undeclared},
	}, ",")
	require.Nil(t, err)
	records := []*tabrec.Record{tabrec.CreateRecord(read, []interface{}{"12352362362", "2", "3500"})}

	fixed, err := schema.CreateFixedWidthSchema("Point", []schema.Field{
		{Name: "x", Start: 0, End: 5},
		{Name: "y", Start: 5, End: 10},
		{Name: "z", Start: 10, End: 15, Justify: tabrec.JustifyRight},
	}, "")
	require.Nil(t, err)
	zyx, err := schema.CreateDelimitedSchema("Point", []schema.Field{
		{Name: "z", Start: schema.Undeclared, End: schema.Undeclared},
		{Name: "y", Start: schema.Undeclared, End: schema.Undeclared},
		{Name: "x", Start: schema.Undeclared, End: schema.Undeclared},
		{Name: "label", Start: schema.Undeclared, End: schema.Undeclared},
	}, "\t")
	require.Nil(t, err)

	fs := afero.NewMemMapFs()
	_, err = WriteRecords(context.Background(), records, fixed, "/fixed.txt", &DataSinkConf{Fs: fs})
	require.Nil(t, err)
	_, err = WriteRecords(context.Background(), records, zyx, "/zyx.tsv", &DataSinkConf{Fs: fs})
	require.Nil(t, err)

	data, err := afero.ReadFile(fs, "/fixed.txt")
	require.Nil(t, err)
	require.Equal(t, "123522     3500\n", string(data))
	data, err = afero.ReadFile(fs, "/zyx.tsv")
	require.Nil(t, err)
	require.Equal(t, "3500\t2\t12352362362\t\t\n", string(data))
}
