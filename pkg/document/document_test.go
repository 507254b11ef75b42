package document_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nirslab/nirspipe/pkg/document"
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/obj"
	"github.com/nirslab/nirspipe/pkg/utils/try"
	"github.com/pkg/errors"
)

func TestLoadCanonical(t *testing.T) {
	t.Run("document shell", func(t *testing.T) {
		src := `{
			"name": "baseline",
			"description": "regression baseline",
			"pipeline": ["sklearn.preprocessing._data.MinMaxScaler"]
		}`
		d := try.To(document.LoadCanonical(strings.NewReader(src))).OrFatal(t)
		if d.Name != "baseline" || d.Description != "regression baseline" {
			t.Errorf("metadata: %+v", d)
		}
		if len(d.Pipeline) != 1 {
			t.Errorf("pipeline: %+v", d.Pipeline)
		}
	})

	t.Run("bare step array", func(t *testing.T) {
		d := try.To(document.LoadCanonical(strings.NewReader(`["a.b.C"]`))).OrFatal(t)
		if len(d.Pipeline) != 1 {
			t.Errorf("pipeline: %+v", d.Pipeline)
		}
	})

	t.Run("object without pipeline fails", func(t *testing.T) {
		_, err := document.LoadCanonical(strings.NewReader(`{"name": "x"}`))
		if !errors.Is(err, document.ErrInvalidDocument) {
			t.Errorf("error: %v", err)
		}
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := document.LoadCanonical(strings.NewReader("  \n"))
		if !errors.Is(err, document.ErrInvalidDocument) {
			t.Errorf("error: %v", err)
		}
	})
}

func TestCanonicalSaveRoundTrip(t *testing.T) {
	src := `{
		"name": "baseline",
		"pipeline": [
			{"class": "sklearn.model_selection._split.KFold", "params": {"n_splits": 3}},
			{"model": "sklearn.cross_decomposition._pls.PLSRegression"}
		]
	}`
	d := try.To(document.LoadCanonical(strings.NewReader(src))).OrFatal(t)

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatal(err)
	}

	d2 := try.To(document.LoadCanonical(&buf)).OrFatal(t)
	if d2.Name != d.Name {
		t.Errorf("name drifted: %s", d2.Name)
	}
	if !obj.Equal(d2.Pipeline, d.Pipeline) {
		t.Errorf("pipeline drifted: %#v", d2.Pipeline)
	}
}

func TestLoadNativeYAML(t *testing.T) {
	src := `
version: "1.0"
name: quick
random_state: 42
steps:
  - SNV
  - SavitzkyGolay:
      window_length: 15
  - model: PLSRegression
`
	d := try.To(document.LoadNative(strings.NewReader(src))).OrFatal(t)
	if d.Version != "1.0" || d.Name != "quick" {
		t.Errorf("metadata: %+v", d)
	}
	if d.RandomState == nil || *d.RandomState != 42 {
		t.Errorf("random_state: %v", d.RandomState)
	}
	if len(d.Steps) != 3 {
		t.Fatalf("steps: %+v", d.Steps)
	}

	nodes := d.Import()
	if nodes[1].Name != "SavitzkyGolay" || nodes[2].Type != model.TypeModel {
		t.Errorf("imported: %s / %s", nodes[1].Name, nodes[2].Type)
	}
}

func TestNativeSaveYAMLRoundTrip(t *testing.T) {
	src := `{"version": "1.0", "name": "quick", "steps": ["SNV", {"MinMaxScaler": {"feature_range": [0, 1]}}]}`
	d := try.To(document.LoadNative(strings.NewReader(src))).OrFatal(t)

	var buf bytes.Buffer
	if err := d.SaveYAML(&buf); err != nil {
		t.Fatal(err)
	}

	d2 := try.To(document.LoadNative(&buf)).OrFatal(t)
	if d2.Name != "quick" || d2.Version != "1.0" {
		t.Errorf("metadata drifted: %+v", d2)
	}
	if !obj.Equal(d2.Steps, d.Steps) {
		t.Errorf("steps drifted:\n%s", buf.String())
	}
}

func TestNativeSaveJSONRoundTrip(t *testing.T) {
	d := &document.Native{
		Name:  "quick",
		Steps: []any{"SNV", "KFold"},
	}

	var buf bytes.Buffer
	if err := d.SaveJSON(&buf); err != nil {
		t.Fatal(err)
	}

	d2 := try.To(document.LoadNative(&buf)).OrFatal(t)
	if d2.Version != document.NativeVersion {
		t.Errorf("default version not written: %s", d2.Version)
	}
	if !obj.Equal(d2.Steps, d.Steps) {
		t.Errorf("steps drifted: %#v", d2.Steps)
	}
}

func TestCrossFormatConversion(t *testing.T) {
	t.Run("canonical to native", func(t *testing.T) {
		src := `{
			"name": "baseline",
			"pipeline": [
				{"class": "nirs4all.operators.transformations.SNV"},
				{"model": {"class": "sklearn.cross_decomposition._pls.PLSRegression", "params": {"n_components": 10}}}
			]
		}`
		d := try.To(document.LoadCanonical(strings.NewReader(src))).OrFatal(t)

		n := d.ToNative()
		if n.Name != "baseline" || n.Version != document.NativeVersion {
			t.Errorf("metadata: %+v", n)
		}
		if len(n.Steps) != 2 {
			t.Fatalf("steps: %#v", n.Steps)
		}
		if n.Steps[0] != "SNV" {
			t.Errorf("short name expected, got %#v", n.Steps[0])
		}
		o, ok := n.Steps[1].(*obj.Object)
		if !ok {
			t.Fatalf("model step: %#v", n.Steps[1])
		}
		inner, _ := o.GetObject("model")
		if _, ok := inner.GetObject("PLSRegression"); !ok {
			t.Errorf("model ref: %#v", inner)
		}
	})

	t.Run("native to canonical", func(t *testing.T) {
		src := `{"steps": ["SNV", {"model": "PLSRegression"}]}`
		d := try.To(document.LoadNative(strings.NewReader(src))).OrFatal(t)

		c := d.ToCanonical()
		if len(c.Pipeline) != 2 {
			t.Fatalf("pipeline: %#v", c.Pipeline)
		}
		if c.Pipeline[0] != "nirs4all.operators.transformations.SNV" {
			t.Errorf("class path expected, got %#v", c.Pipeline[0])
		}
		o, ok := c.Pipeline[1].(*obj.Object)
		if !ok {
			t.Fatalf("model step: %#v", c.Pipeline[1])
		}
		if path, _ := o.GetString("model"); path != "sklearn.cross_decomposition._pls.PLSRegression" {
			t.Errorf("model path: %v", path)
		}
	})

	t.Run("standalone sweep keeps its keyword", func(t *testing.T) {
		src := `{"steps": [{"_range_": [1, 30], "param": "n_components", "pick": 5}]}`
		d := try.To(document.LoadNative(strings.NewReader(src))).OrFatal(t)

		c := d.ToCanonical()
		if len(c.Pipeline) != 1 {
			t.Fatalf("pipeline: %#v", c.Pipeline)
		}
		o, ok := c.Pipeline[0].(*obj.Object)
		if !ok {
			t.Fatalf("sweep step: %#v", c.Pipeline[0])
		}
		if !o.Has("_range_") {
			t.Fatalf("range keyword lost: %#v", o)
		}
		if o.Has("_or_") {
			t.Errorf("sweep rewritten as alternatives: %#v", o)
		}
		payload, _ := o.Get("_range_")
		if !obj.Equal(payload, []any{float64(1), float64(30)}) {
			t.Errorf("payload: %#v", payload)
		}
		if param, _ := o.GetString("param"); param != "n_components" {
			t.Errorf("param: %v", param)
		}
		if pick, _ := o.Get("pick"); pick != float64(5) {
			t.Errorf("pick: %v", pick)
		}
	})
}
