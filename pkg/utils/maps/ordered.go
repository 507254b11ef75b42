package maps

// Ordered is a map remembering the order its keys were first set.
//
// JSON objects do not guarantee key order in Go's map type, but pipeline
// documents are authored by hand and re-exported for humans, so ordering is
// part of fidelity. Ordered keeps insertion order for iteration and
// re-serialization.
type Ordered[K comparable, V any] struct {
	keys []K
	m    map[K]V
}

func NewOrdered[K comparable, V any]() *Ordered[K, V] {
	return &Ordered[K, V]{
		keys: []K{},
		m:    map[K]V{},
	}
}

func (o *Ordered[K, V]) Set(k K, v V) *Ordered[K, V] {
	if _, ok := o.m[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.m[k] = v
	return o
}

func (o *Ordered[K, V]) Get(k K) (V, bool) {
	v, ok := o.m[k]
	return v, ok
}

func (o *Ordered[K, V]) Has(k K) bool {
	_, ok := o.m[k]
	return ok
}

func (o *Ordered[K, V]) Delete(k K) {
	if _, ok := o.m[k]; !ok {
		return
	}
	delete(o.m, k)
	for i, key := range o.keys {
		if key == k {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (o *Ordered[K, V]) Keys() []K {
	return o.keys
}

func (o *Ordered[K, V]) Len() int {
	return len(o.keys)
}

// Iter iterates entries in insertion order, stopping when yield returns false.
func (o *Ordered[K, V]) Iter(yield func(k K, v V) bool) {
	for _, k := range o.keys {
		if !yield(k, o.m[k]) {
			break
		}
	}
}
