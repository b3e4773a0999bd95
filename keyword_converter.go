package tabrec

import (
	"fmt"
	"sort"
	"sync"
)

// KeywordConverter transforms the field mapping of a freshly assembled record,
// exactly once, before it becomes a Record. Converters may rewrite values, but
// the resulting Record still holds exactly the Schema's fields.
type KeywordConverter func(fields *Fields) *Fields

var (
	converterMu sync.RWMutex
	converters  = map[string]KeywordConverter{}
)

// RegisterKeywordConverter makes a KeywordConverter available to configuration
// under a name. Typically called from init().
func RegisterKeywordConverter(name string, fn KeywordConverter) {
	converterMu.Lock()
	defer converterMu.Unlock()
	converters[name] = fn
}

// GetKeywordConverter returns a registered KeywordConverter
func GetKeywordConverter(name string) (KeywordConverter, error) {
	converterMu.RLock()
	defer converterMu.RUnlock()
	fn, ok := converters[name]
	if !ok {
		return nil, fmt.Errorf("unknown keyword converter: %q", name)
	}
	return fn, nil
}

// KeywordConverterNames lists registered converters, sorted
func KeywordConverterNames() []string {
	converterMu.RLock()
	defer converterMu.RUnlock()
	names := make([]string, 0, len(converters))
	for name := range converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
