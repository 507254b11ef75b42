package yamlenc_test

import (
	"testing"

	"github.com/nirslab/nirspipe/pkg/obj"
	"github.com/nirslab/nirspipe/pkg/utils/try"
	"github.com/nirslab/nirspipe/pkg/yamlenc"
	"gopkg.in/yaml.v3"
)

func TestRenderLayout(t *testing.T) {
	theory := func(steps []any, want string) func(*testing.T) {
		return func(t *testing.T) {
			got := yamlenc.Render(steps)
			if got != want {
				t.Errorf("rendered:\n%s\nexpected:\n%s", got, want)
			}
		}
	}

	t.Run("bare names", theory(
		[]any{"SNV", "Detrend"},
		"- SNV\n- Detrend\n",
	))

	t.Run("empty list", theory(nil, "[]\n"))

	t.Run("operator with params", theory(
		[]any{obj.New().Set("SavitzkyGolay", obj.New().
			Set("window_length", 15.0).
			Set("polyorder", 3.0))},
		"- SavitzkyGolay:\n"+
			"    window_length: 15\n"+
			"    polyorder: 3\n",
	))

	t.Run("first key shares the dash line", theory(
		[]any{obj.New().
			Set("model", "PLSRegression").
			Set("name", "baseline")},
		"- model: PLSRegression\n"+
			"  name: baseline\n",
	))

	t.Run("scalar array renders inline", theory(
		[]any{obj.New().Set("KFold", obj.New().
			Set("n_splits", 3.0).
			Set("shuffle", true).
			Set("groups", []any{"a", "b"}))},
		"- KFold:\n"+
			"    n_splits: 3\n"+
			"    shuffle: true\n"+
			"    groups: [a, b]\n",
	))

	t.Run("array with objects renders block", theory(
		[]any{obj.New().Set("sample_augmentation", []any{
			"Rotate_Translate",
			obj.New().Set("GaussianAdditiveNoise", obj.New().Set("sigma", 0.01)),
		})},
		"- sample_augmentation:\n"+
			"    - Rotate_Translate\n"+
			"    - GaussianAdditiveNoise:\n"+
			"        sigma: 0.01\n",
	))

	t.Run("nested branch object", theory(
		[]any{obj.New().Set("branch", obj.New().
			Set("snv", []any{"SNV"}).
			Set("msc", []any{"MSC"}))},
		"- branch:\n"+
			"    snv: [SNV]\n"+
			"    msc: [MSC]\n",
	))
}

func TestScalarQuoting(t *testing.T) {
	theory := func(value any, want string) func(*testing.T) {
		return func(t *testing.T) {
			got := yamlenc.Render([]any{value})
			if got != "- "+want+"\n" {
				t.Errorf("rendered %q, expected %q", got, "- "+want+"\n")
			}
		}
	}

	t.Run("plain word bare", theory("SNV", "SNV"))
	t.Run("empty string quoted", theory("", `""`))
	t.Run("reserved word quoted", theory("yes", `"yes"`))
	t.Run("reserved word case-insensitive", theory("True", `"True"`))
	t.Run("numeric-looking quoted", theory("3.14", `"3.14"`))
	t.Run("colon quoted", theory("a:b", `"a:b"`))
	t.Run("comment char quoted", theory("x #y", `"x #y"`))
	t.Run("leading space quoted", theory(" x", `" x"`))
	t.Run("number bare", theory(42.0, "42"))
	t.Run("fraction bare", theory(0.5, "0.5"))
	t.Run("bool bare", theory(false, "false"))
	t.Run("null bare", theory(nil, "null"))
}

// The renderer only has to write YAML, but what it writes must mean what
// was given: re-parsing with a real YAML parser has to yield the input.
func TestRenderedOutputParsesBack(t *testing.T) {
	source := `[
		"SNV",
		{"SavitzkyGolay": {"window_length": 15, "polyorder": 3, "deriv": 0.5}},
		{"_comment": "split: then model"},
		{"branch": {"snv": ["SNV"], "msc": ["MSC", {"Detrend": {"bp": [1, 2]}}]}},
		{"merge": "predictions"},
		{"model": {"PLSRegression": {"n_components": 10}}, "name": "PLS-10", "scale": true},
		{"_range_": [1, 30], "param": "n_components"}
	]`
	steps, ok := try.To(obj.Decode([]byte(source))).OrFatal(t).([]any)
	if !ok {
		t.Fatal("fixture is not a list")
	}

	rendered := yamlenc.Render(steps)

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(rendered), &node); err != nil {
		t.Fatalf("output does not parse: %v\n%s", err, rendered)
	}
	parsed := try.To(obj.FromYAMLNode(&node)).OrFatal(t)

	if !obj.Equal(parsed, steps) {
		t.Errorf("round trip drifted:\n%s", rendered)
	}
}
