package try

// something have method `Fatal`.
//
// For example in standard libraries: *testing.T, log.Logger
type Fataler interface {
	Fatal(...any)
}

type helper interface {
	Helper()
}

// Done wraps a (value, error) pair so callers can unwrap it in one
// expression, mostly in tests and CLI wiring.
type Done[T any] struct {
	value T
	err   error
}

// To captures the result of a fallible call: try.To(f()) .
func To[T any](value T, err error) Done[T] {
	return Done[T]{value: value, err: err}
}

func (d Done[T]) Get() (T, error) {
	return d.value, d.err
}

// OrFatal returns the value, or calls ftl.Fatal with the error.
//
// If ftl has a Helper method (like *testing.T), it is called first.
func (d Done[T]) OrFatal(ftl Fataler) T {
	if d.err != nil {
		if h, ok := ftl.(helper); ok {
			h.Helper()
		}
		ftl.Fatal(d.err)
	}
	return d.value
}

// OrDefault returns the value, or def when the call failed.
func (d Done[T]) OrDefault(def T) T {
	if d.err != nil {
		return def
	}
	return d.value
}
