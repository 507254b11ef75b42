package document

import (
	"io"

	"github.com/nirslab/nirspipe/pkg/canonical"
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/native"
	"github.com/nirslab/nirspipe/pkg/obj"
	"github.com/pkg/errors"
)

// Canonical is a pipeline document in the verbose format: fully-qualified
// class paths, explicit keyword wrappers. Pipeline holds the decoded steps.
type Canonical struct {
	Name        string
	Description string
	Pipeline    []any
}

// LoadCanonical reads a canonical document: either a bare step array or an
// object with a "pipeline" array plus optional metadata.
func LoadCanonical(r io.Reader) (*Canonical, error) {
	v, err := decode(r)
	if err != nil {
		return nil, err
	}

	steps, shell, err := stepsOf(v, "pipeline")
	if err != nil {
		return nil, err
	}

	d := &Canonical{Pipeline: steps}
	if shell != nil {
		d.Name, _ = shell.GetString("name")
		d.Description, _ = shell.GetString("description")
	}
	return d, nil
}

// Save writes the document as indented JSON.
func (d *Canonical) Save(w io.Writer) error {
	shell := obj.New()
	if d.Name != "" {
		shell.Set("name", d.Name)
	}
	if d.Description != "" {
		shell.Set("description", d.Description)
	}
	shell.Set("pipeline", d.Pipeline)

	raw, err := obj.EncodeIndent(shell)
	if err != nil {
		return errors.Wrap(err, "encoding canonical document")
	}
	_, err = w.Write(append(raw, '\n'))
	return errors.Wrap(err, "writing canonical document")
}

// Import builds the editor step tree from the document's pipeline.
func (d *Canonical) Import(options ...canonical.ImportOption) []*model.Step {
	return canonical.Import(d.Pipeline, options...)
}

// ToNative converts the document to the native format, carrying the
// metadata over.
func (d *Canonical) ToNative(options ...canonical.ImportOption) *Native {
	return &Native{
		Version:     NativeVersion,
		Name:        d.Name,
		Description: d.Description,
		Steps:       native.Export(canonical.Import(d.Pipeline, options...)),
	}
}
