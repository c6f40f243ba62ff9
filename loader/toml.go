package loader

import (
	"fmt"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"

	paranoia "github.com/emavok/paranoia"
)

// ParseSchemaTOML decodes a TOML schema document. Member order of every
// properties table follows the order of the keys in the document.
func ParseSchemaTOML(data []byte, opts ...paranoia.Option) (*paranoia.Schema, error) {
	if isBlank(data) {
		return nil, ErrEmptyDocument
	}
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("loader: schema toml: %w", err)
	}
	b, err := json.Marshal(tomlNormalize(raw))
	if err != nil {
		return nil, fmt.Errorf("loader: schema toml: %w", err)
	}
	var s paranoia.Schema
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("loader: schema toml: %w", err)
	}
	reorder(&s, nil, keyOrder(meta.Keys()), map[*paranoia.Schema]bool{})
	return checked(&s, opts)
}

// keyOrder indexes each dotted key by its first appearance.
func keyOrder(keys []toml.Key) map[string]int {
	order := make(map[string]int, len(keys))
	for i, k := range keys {
		ks := k.String()
		if _, ok := order[ks]; !ok {
			order[ks] = i
		}
	}
	return order
}

// reorder sorts the properties of s and its descendants by document position.
// Members the metadata does not list keep their relative order at the end.
func reorder(s *paranoia.Schema, prefix toml.Key, order map[string]int, seen map[*paranoia.Schema]bool) {
	if s == nil || seen[s] {
		return
	}
	seen[s] = true
	pos := func(name string) int {
		k := append(slices.Clone(prefix), "properties", name)
		if i, ok := order[k.String()]; ok {
			return i
		}
		return len(order)
	}
	slices.SortStableFunc(s.Properties, func(a, b paranoia.Property) int {
		return pos(a.Name) - pos(b.Name)
	})
	for _, p := range s.Properties {
		reorder(p.Schema, append(slices.Clone(prefix), "properties", p.Name), order, seen)
	}
	reorder(s.Items, append(slices.Clone(prefix), "items"), order, seen)
}

// tomlNormalize renders TOML date and time values as ISO strings.
func tomlNormalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			t[k] = tomlNormalize(vv)
		}
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = tomlNormalize(t[i])
		}
		return out
	case []any:
		for i := range t {
			t[i] = tomlNormalize(t[i])
		}
		return t
	case time.Time:
		if localMidnight(t) {
			return t.Format("2006-01-02")
		}
		if t.Nanosecond() != 0 {
			return t.Format("2006-01-02T15:04:05.000Z07:00")
		}
		return t.Format("2006-01-02T15:04:05Z07:00")
	}
	return v
}

// localMidnight matches TOML local dates, which decode to midnight in a
// zero-offset zone other than UTC.
func localMidnight(t time.Time) bool {
	h, m, sec := t.Clock()
	_, off := t.Zone()
	return h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0 && off == 0 && t.Location() != time.UTC
}
