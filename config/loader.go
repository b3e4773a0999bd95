// Package config loads record schema configurations. A configuration is a
// flat mapping from key to an ordered list of values, loaded from a
// .properties, .json or .yaml file and decoded into a SchemaConfig.
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-sif/tabrec"
	"github.com/magiconair/properties"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ListSeparator separates the values of a list-valued property
const ListSeparator = ","

// Mapping is a raw configuration: every key maps to a list of values, and
// single-valued keys hold one entry
type Mapping map[string][]string

// First returns the first value of key, or "" if it has none
func (m Mapping) First(key string) string {
	if v := m[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// LoadFile loads a Mapping, choosing the format from the file extension.
// Unknown extensions are read as properties.
func LoadFile(fs afero.Fs, path string) (Mapping, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return LoadProperties(data)
	}
}

// LoadProperties parses key = value lines. Values are split on ListSeparator
// and each entry is trimmed, unless it consists only of whitespace.
func LoadProperties(data []byte) (Mapping, error) {
	p, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return nil, err
	}
	m := Mapping{}
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		entries := strings.Split(value, ListSeparator)
		for i, e := range entries {
			if trimmed := strings.TrimSpace(e); trimmed != "" {
				entries[i] = trimmed
			}
		}
		m[key] = entries
	}
	return m, nil
}

// LoadJSON parses a JSON object. Arrays become lists; every other value is a
// single entry in its textual form.
func LoadJSON(data []byte) (Mapping, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON configuration")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("JSON configuration must be an object")
	}
	m := Mapping{}
	root.ForEach(func(key, value gjson.Result) bool {
		if value.IsArray() {
			elems := value.Array()
			entries := make([]string, len(elems))
			for i, e := range elems {
				entries[i] = e.String()
			}
			m[key.String()] = entries
		} else {
			m[key.String()] = []string{value.String()}
		}
		return true
	})
	return m, nil
}

// LoadYAML parses a YAML mapping. Sequences become lists; every other value
// is a single entry in its textual form.
func LoadYAML(data []byte) (Mapping, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	m := Mapping{}
	for key, value := range raw {
		switch v := value.(type) {
		case []interface{}:
			entries := make([]string, len(v))
			for i, e := range v {
				entries[i] = yamlScalar(e)
			}
			m[key] = entries
		default:
			m[key] = []string{yamlScalar(v)}
		}
	}
	return m, nil
}

func yamlScalar(v interface{}) string {
	switch val := v.(type) {
	case int:
		return fmt.Sprint(val)
	case bool:
		return fmt.Sprint(val)
	default:
		return tabrec.ValueToString(val)
	}
}

// WriteProperties writes m as key = value lines in key order, joining lists
// with ListSeparator
func WriteProperties(w io.Writer, m Mapping) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p := properties.NewProperties()
	for _, k := range keys {
		if _, _, err := p.Set(k, strings.Join(m[k], ListSeparator)); err != nil {
			return err
		}
	}
	_, err := p.Write(w, properties.UTF8)
	return err
}
