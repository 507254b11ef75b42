package document

import (
	"io"
	"strconv"

	"github.com/nirslab/nirspipe/pkg/canonical"
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/native"
	"github.com/nirslab/nirspipe/pkg/obj"
	"github.com/nirslab/nirspipe/pkg/yamlenc"
	"github.com/pkg/errors"
)

// NativeVersion is the document version this package writes.
const NativeVersion = "1.0"

// Native is a pipeline document in the compact format: short operator
// names, terse generator syntax. Steps holds the decoded native steps.
type Native struct {
	Version     string
	Name        string
	Description string
	RandomState *float64
	Steps       []any
}

// LoadNative reads a native document, JSON or YAML: either a bare step
// array or an object with a "steps" array plus optional metadata.
func LoadNative(r io.Reader) (*Native, error) {
	v, err := decode(r)
	if err != nil {
		return nil, err
	}

	steps, shell, err := stepsOf(v, "steps")
	if err != nil {
		return nil, err
	}

	d := &Native{Version: NativeVersion, Steps: steps}
	if shell != nil {
		if version, ok := shell.GetString("version"); ok {
			d.Version = version
		}
		d.Name, _ = shell.GetString("name")
		d.Description, _ = shell.GetString("description")
		if rs, ok := shell.GetNumber("random_state"); ok {
			d.RandomState = &rs
		}
	}
	return d, nil
}

func (d *Native) shell() *obj.Object {
	out := obj.New().Set("version", d.versionOrDefault())
	if d.Name != "" {
		out.Set("name", d.Name)
	}
	if d.Description != "" {
		out.Set("description", d.Description)
	}
	if d.RandomState != nil {
		out.Set("random_state", *d.RandomState)
	}
	out.Set("steps", d.Steps)
	return out
}

func (d *Native) versionOrDefault() string {
	if d.Version == "" {
		return NativeVersion
	}
	return d.Version
}

// SaveJSON writes the document as indented JSON.
func (d *Native) SaveJSON(w io.Writer) error {
	raw, err := obj.EncodeIndent(d.shell())
	if err != nil {
		return errors.Wrap(err, "encoding native document")
	}
	_, err = w.Write(append(raw, '\n'))
	return errors.Wrap(err, "writing native document")
}

// SaveYAML writes the document in the restricted YAML rendering: metadata
// header first, then the step sequence.
func (d *Native) SaveYAML(w io.Writer) error {
	out := "version: " + strconv.Quote(d.versionOrDefault()) + "\n"
	if d.Name != "" {
		out += "name: " + yamlScalar(d.Name) + "\n"
	}
	if d.Description != "" {
		out += "description: " + yamlScalar(d.Description) + "\n"
	}
	if d.RandomState != nil {
		out += "random_state: " + strconv.FormatFloat(*d.RandomState, 'f', -1, 64) + "\n"
	}
	if len(d.Steps) == 0 {
		out += "steps: []\n"
	} else {
		out += "steps:\n" + indentBlock(yamlenc.Render(d.Steps))
	}

	_, err := io.WriteString(w, out)
	return errors.Wrap(err, "writing native document")
}

// yamlScalar renders one metadata string through the step renderer so
// quoting rules stay in one place.
func yamlScalar(s string) string {
	rendered := yamlenc.Render([]any{s})
	return rendered[len("- ") : len(rendered)-1]
}

// Import builds the editor step tree from the document's steps.
func (d *Native) Import(options ...native.ImportOption) []*model.Step {
	return native.Import(d.Steps, options...)
}

// ToCanonical converts the document to the verbose format, carrying the
// metadata over.
func (d *Native) ToCanonical(options ...native.ImportOption) *Canonical {
	return &Canonical{
		Name:        d.Name,
		Description: d.Description,
		Pipeline:    canonical.Export(native.Import(d.Steps, options...)),
	}
}
