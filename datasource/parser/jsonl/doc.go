// Package jsonl parses JSON Lines records files, such as those written by
// encoding/jsonrec. This parser uses https://github.com/tidwall/gjson to
// process data, and supports Schema column names formatted as gjson paths.
package jsonl
