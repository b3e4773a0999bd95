// Package tabrec contains the core components of tabrec, a codec for line-oriented
// records files. A record file holds one record per line, laid out either at
// fixed byte offsets or separated by a delimiter. This root package defines the
// types shared by every other package: column types, Columns, Schemas, Records
// and KeywordConverters, along with the DataSource and DataSink interfaces.
package tabrec
