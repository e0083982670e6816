package serializer

import (
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/vegasq/tabshape/table"
)

// Record is one output unit: an ordered mapping from key to value.
//
// Values are cell values, *Record for nested fields, []interface{} for
// reducer results and []*Record for nested group fields. JSON and YAML
// encodings keep the key order.
type Record struct {
	fields *orderedmap.OrderedMap[string, interface{}]
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.New[string, interface{}]()}
}

// Set stores a value. A new key goes last; an existing key keeps its place.
func (r *Record) Set(key string, value interface{}) {
	r.fields.Set(key, value)
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (interface{}, bool) {
	return r.fields.Get(key)
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return r.fields.Len()
}

// Keys returns the keys in order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every key in order.
func (r *Record) Each(fn func(key string, value interface{})) {
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// ToMap converts the record into plain maps and slices, recursively.
// Nested records become map[string]interface{} and []*Record becomes
// []interface{}. Key order is lost.
func (r *Record) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, r.fields.Len())
	r.Each(func(key string, value interface{}) {
		out[key] = plainValue(value)
	})
	return out
}

func plainValue(v interface{}) interface{} {
	switch val := v.(type) {
	case *Record:
		if val == nil {
			return nil
		}
		return val.ToMap()
	case []*Record:
		out := make([]interface{}, len(val))
		for i, rec := range val {
			out[i] = plainValue(rec)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.fields.MarshalJSON()
}

// MarshalYAML encodes the record as a YAML mapping in key order.
func (r *Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
		value := &yaml.Node{}
		if err := value.Encode(pair.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// Equal reports whether two records have the same keys in the same order
// with equal values.
func (r *Record) Equal(other *Record) bool {
	return recordKey(r) == recordKey(other)
}

// recordKey returns a canonical string for structural comparison of records
func recordKey(r *Record) string {
	var b strings.Builder
	writeValueKey(&b, r)
	return b.String()
}

func writeValueKey(b *strings.Builder, v interface{}) {
	switch val := v.(type) {
	case *Record:
		if val == nil {
			b.WriteString("nil")
			return
		}
		b.WriteString("{")
		first := true
		val.Each(func(key string, value interface{}) {
			if !first {
				b.WriteString(",")
			}
			first = false
			b.WriteString(strconv.Quote(key))
			b.WriteString("=")
			writeValueKey(b, value)
		})
		b.WriteString("}")
	case []*Record:
		b.WriteString("[")
		for i, rec := range val {
			if i > 0 {
				b.WriteString(",")
			}
			writeValueKey(b, rec)
		}
		b.WriteString("]")
	case []interface{}:
		b.WriteString("[")
		for i, item := range val {
			if i > 0 {
				b.WriteString(",")
			}
			writeValueKey(b, item)
		}
		b.WriteString("]")
	default:
		b.WriteString(table.Key(v))
	}
}
