// Package document reads and writes whole pipeline documents: the
// canonical and native file shells around a step list.
package document

import (
	"bytes"
	"io"
	"strings"

	"github.com/nirslab/nirspipe/pkg/obj"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDocument means the input parsed but does not have the
	// shape of a pipeline document.
	ErrInvalidDocument = errors.New("invalid pipeline document")
	// ErrUnsupportedFormat means the input is neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// decode sniffs the input and parses it into the ordered value domain.
// A document starting with '{' or '[' is JSON; anything else is tried as
// YAML.
func decode(r io.Reader) (any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading document")
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errors.Wrap(ErrInvalidDocument, "empty input")
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		v, err := obj.Decode(raw)
		if err != nil {
			return nil, errors.Wrap(err, "parsing JSON document")
		}
		return v, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, errors.Wrap(ErrUnsupportedFormat, err.Error())
	}
	v, err := obj.FromYAMLNode(&node)
	if err != nil {
		return nil, errors.Wrap(err, "parsing YAML document")
	}
	return v, nil
}

// stepsOf accepts either a bare step array or a document object carrying
// the steps under the given key.
func stepsOf(v any, key string) ([]any, *obj.Object, error) {
	switch t := v.(type) {
	case []any:
		return t, nil, nil
	case *obj.Object:
		list, ok := t.GetList(key)
		if !ok {
			return nil, nil, errors.Wrapf(ErrInvalidDocument, "no %q array", key)
		}
		return list, t, nil
	}
	return nil, nil, errors.Wrapf(ErrInvalidDocument, "unexpected top-level %T", v)
}

// indentBlock shifts rendered YAML one level right, for embedding a
// top-level block sequence under a key.
func indentBlock(rendered string) string {
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
