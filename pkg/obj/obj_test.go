package obj_test

import (
	"testing"

	"github.com/nirslab/nirspipe/pkg/obj"
	"github.com/nirslab/nirspipe/pkg/utils/try"
	"gopkg.in/yaml.v3"
)

func TestDecode(t *testing.T) {
	theory := func(source string, expected any) func(*testing.T) {
		return func(t *testing.T) {
			actual := try.To(obj.Decode([]byte(source))).OrFatal(t)
			if !obj.Equal(actual, expected) {
				t.Errorf("Decode(%s) --> %#v", source, actual)
			}
		}
	}

	t.Run("scalar string", theory(`"SNV"`, "SNV"))
	t.Run("scalar number", theory(`42`, float64(42)))
	t.Run("scalar bool", theory(`true`, true))
	t.Run("scalar null", theory(`null`, nil))
	t.Run("flat list", theory(`[1, 2, 3]`, []any{float64(1), float64(2), float64(3)}))
	t.Run("object", theory(
		`{"class": "sklearn.preprocessing._data.MinMaxScaler", "params": {"feature_range": [0, 1]}}`,
		obj.New().
			Set("class", "sklearn.preprocessing._data.MinMaxScaler").
			Set("params", obj.New().Set("feature_range", []any{float64(0), float64(1)})),
	))
}

func TestDecodeKeyOrder(t *testing.T) {
	source := `{"zeta": 1, "alpha": 2, "mid": {"b": 1, "a": 2}}`
	decoded := try.To(obj.DecodeObject([]byte(source))).OrFatal(t)

	keys := decoded.Keys()
	if len(keys) != 3 || keys[0] != "zeta" || keys[1] != "alpha" || keys[2] != "mid" {
		t.Errorf("key order not preserved: %v", keys)
	}

	mid, ok := decoded.GetObject("mid")
	if !ok {
		t.Fatal("mid should be an object")
	}
	if mk := mid.Keys(); len(mk) != 2 || mk[0] != "b" || mk[1] != "a" {
		t.Errorf("nested key order not preserved: %v", mk)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	source := `{"zeta":1,"alpha":{"nested":[true,null,"x"]},"omega":2.5}`
	decoded := try.To(obj.Decode([]byte(source))).OrFatal(t)
	encoded := try.To(obj.Encode(decoded)).OrFatal(t)

	if string(encoded) != source {
		t.Errorf("round trip drifted: %s --> %s", source, encoded)
	}
}

func TestDecodeRejectsTrailingGarbage(t *testing.T) {
	if _, err := obj.Decode([]byte(`{"a": 1} {"b": 2}`)); err == nil {
		t.Error("trailing token should be rejected")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	source := "version: \"1.0\"\nsteps:\n  - SNV\n  - MinMaxScaler:\n      feature_range: [0, 1]\n"
	decoded := try.To(obj.DecodeYAML([]byte(source))).OrFatal(t)

	doc, ok := decoded.(*obj.Object)
	if !ok {
		t.Fatalf("expected object, got %T", decoded)
	}
	if v, _ := doc.GetString("version"); v != "1.0" {
		t.Errorf("unexpected version: %v", v)
	}

	steps, ok := doc.GetList("steps")
	if !ok || len(steps) != 2 {
		t.Fatalf("unexpected steps: %#v", steps)
	}
	if steps[0] != "SNV" {
		t.Errorf("unexpected first step: %#v", steps[0])
	}

	scaler, ok := steps[1].(*obj.Object)
	if !ok {
		t.Fatalf("expected object step, got %T", steps[1])
	}
	params, ok := scaler.GetObject("MinMaxScaler")
	if !ok {
		t.Fatal("MinMaxScaler params missing")
	}
	if rng, ok := params.GetList("feature_range"); !ok || len(rng) != 2 || rng[0] != float64(0) {
		t.Errorf("unexpected feature_range: %#v", rng)
	}

	// values survive marshalling back through yaml.v3
	node := try.To(obj.ToYAMLNode(decoded)).OrFatal(t)
	out := try.To(yaml.Marshal(node)).OrFatal(t)
	redecoded := try.To(obj.DecodeYAML(out)).OrFatal(t)
	if !obj.Equal(decoded, redecoded) {
		t.Errorf("YAML round trip drifted:\n%s", out)
	}
}

func TestClone(t *testing.T) {
	original := obj.New().Set("params", obj.New().Set("n", float64(3)))
	cloned := obj.Clone(original).(*obj.Object)

	nested, _ := cloned.GetObject("params")
	nested.Set("n", float64(99))

	if v, _ := original.GetObject("params"); true {
		if n, _ := v.GetNumber("n"); n != 3 {
			t.Error("clone should not share nested objects")
		}
	}
}
