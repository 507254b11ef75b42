// Package obj holds the decoded document value domain shared by the
// canonical and native codecs.
//
// A decoded value is one of:
//
//   - nil
//   - bool
//   - float64
//   - string
//   - []any (of decoded values)
//   - *Object (a key-ordered mapping of string to decoded values)
//
// Objects keep key order from the source document, so re-exported documents
// read the way their author wrote them.
package obj

import "github.com/nirslab/nirspipe/pkg/utils/maps"

type Object struct {
	entries *maps.Ordered[string, any]
}

func New() *Object {
	return &Object{entries: maps.NewOrdered[string, any]()}
}

func (o *Object) Set(key string, value any) *Object {
	o.entries.Set(key, value)
	return o
}

func (o *Object) Get(key string) (any, bool) {
	return o.entries.Get(key)
}

func (o *Object) Has(key string) bool {
	return o.entries.Has(key)
}

func (o *Object) Delete(key string) {
	o.entries.Delete(key)
}

func (o *Object) Keys() []string {
	return o.entries.Keys()
}

func (o *Object) Len() int {
	return o.entries.Len()
}

func (o *Object) Iter(yield func(key string, value any) bool) {
	o.entries.Iter(yield)
}

// GetObject returns the value under key when it is an *Object.
func (o *Object) GetObject(key string) (*Object, bool) {
	v, ok := o.entries.Get(key)
	if !ok {
		return nil, false
	}
	sub, ok := v.(*Object)
	return sub, ok
}

// GetString returns the value under key when it is a string.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.entries.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetList returns the value under key when it is a list.
func (o *Object) GetList(key string) ([]any, bool) {
	v, ok := o.entries.Get(key)
	if !ok {
		return nil, false
	}
	l, ok := v.([]any)
	return l, ok
}

// GetNumber returns the value under key when it is numeric.
func (o *Object) GetNumber(key string) (float64, bool) {
	v, ok := o.entries.Get(key)
	if !ok {
		return 0, false
	}
	return Number(v)
}

// GetBool returns the value under key when it is a bool.
func (o *Object) GetBool(key string) (bool, bool) {
	v, ok := o.entries.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Number reports whether v is a numeric value and returns it as float64.
func Number(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// IsScalar reports whether v is a leaf of the value domain.
func IsScalar(v any) bool {
	switch v.(type) {
	case nil, bool, float64, string:
		return true
	}
	return false
}

// Clone deep-copies a decoded value.
func Clone(v any) any {
	switch t := v.(type) {
	case *Object:
		ret := New()
		t.Iter(func(key string, value any) bool {
			ret.Set(key, Clone(value))
			return true
		})
		return ret
	case []any:
		ret := make([]any, len(t))
		for i, e := range t {
			ret[i] = Clone(e)
		}
		return ret
	default:
		return v
	}
}
