package parser

import (
	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/coerce"
	"github.com/go-sif/tabrec/errors"
	"github.com/go-sif/tabrec/internal/util"
	"github.com/hashicorp/go-multierror"
)

// Assembler combines tokens with a Schema to produce Records. Each Assembler
// owns its Coercer, so an Assembler must not be shared across concurrent parses.
type Assembler struct {
	schema    tabrec.Schema
	colNames  []string
	colTypes  []tabrec.ColumnType
	coercer   *coerce.Coercer
	converter func(fields *tabrec.Fields) (*tabrec.Fields, error)
}

// CreateAssembler is a factory for Assemblers. converter may be nil.
func CreateAssembler(schema tabrec.Schema, converter tabrec.KeywordConverter) *Assembler {
	a := &Assembler{
		schema:   schema,
		colNames: schema.ColumnNames(),
		colTypes: schema.ColumnTypes(),
		coercer:  coerce.CreateCoercer(),
	}
	if converter != nil {
		a.converter = util.SafeKeywordConverter(converter)
	}
	return a
}

// Coercer returns the Coercer owned by this Assembler
func (a *Assembler) Coercer() *coerce.Coercer {
	return a.coercer
}

// Assemble coerces tokens[i] with the type of Column i. It always returns a
// Record holding every Schema field: a field whose token is missing or cannot
// be coerced is null, and the reasons are returned as a *multierror.Error.
func (a *Assembler) Assemble(tokens []string) (*tabrec.Record, error) {
	values := make([]interface{}, len(tokens))
	for i, token := range tokens {
		values[i] = token
	}
	return a.AssembleValues(values)
}

// AssembleValues is Assemble for values which may already be typed, such as
// those decoded from JSON. A nil or absent value is a missing token.
func (a *Assembler) AssembleValues(raw []interface{}) (*tabrec.Record, error) {
	var multierr *multierror.Error
	values := make([]interface{}, len(a.colNames))
	for i, name := range a.colNames {
		var v interface{}
		if i < len(raw) {
			v = raw[i]
		}
		coerced, err := a.coercer.CoerceValue(v, a.colTypes[i])
		if err != nil {
			if cerr, ok := err.(*errors.CoercionError); ok {
				cerr.Field = name
			}
			multierr = multierror.Append(multierr, err)
			continue
		}
		values[i] = coerced
	}
	record := tabrec.CreateRecord(a.schema, values)
	if a.converter == nil {
		return record, multierr.ErrorOrNil()
	}
	converted, err := a.converter(record.Fields())
	if err != nil {
		// the record keeps its unconverted fields
		return record, multierror.Append(multierr, err)
	}
	return tabrec.CreateRecordFromFields(a.schema, converted), multierr.ErrorOrNil()
}
