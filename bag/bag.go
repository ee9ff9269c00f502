// Package bag provides the insertion-ordered key/value collection that cipher
// sessions accumulate results into.
package bag

import (
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Bag is an ordered string map. The zero value is ready to use; a nil *Bag
// behaves as an empty, read-only bag.
type Bag struct {
	keys   []string
	values map[string]string
}

// New returns an empty bag.
func New() *Bag {
	return &Bag{values: map[string]string{}}
}

// FromMap copies m into a new bag with keys in sorted order.
func FromMap(m map[string]string) *Bag {
	b := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.Set(k, m[k])
	}
	return b
}

// Set stores value under key. A new key is appended; an existing key keeps its
// position and takes the new value.
func (b *Bag) Set(key, value string) {
	if b.values == nil {
		b.values = map[string]string{}
	}
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

// Get returns the value stored under key.
func (b *Bag) Get(key string) (string, bool) {
	if b == nil {
		return "", false
	}
	v, ok := b.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (b *Bag) Keys() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Len reports the number of entries.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Each calls fn for every entry in insertion order and stops at the first error.
func (b *Bag) Each(fn func(key, value string) error) error {
	if b == nil {
		return nil
	}
	for _, k := range b.keys {
		if err := fn(k, b.values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Map returns an unordered copy of the entries.
func (b *Bag) Map() map[string]string {
	out := make(map[string]string, b.Len())
	if b == nil {
		return out
	}
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// Decode maps the entries onto out, a pointer to a struct or map. Struct fields
// are matched by their `mapstructure` tag. Keys with no matching field are an
// error.
func (b *Bag) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(b.Map())
}
