// Package yamlenc renders native pipeline steps as human-readable YAML.
//
// It is a write-only convenience renderer restricted to the native step
// shape, not a general YAML encoder: no anchors, no multi-document streams,
// no flow mappings. Flat scalar arrays render inline, everything nested
// renders in block style.
package yamlenc

import (
	"math"
	"strconv"
	"strings"

	"github.com/nirslab/nirspipe/pkg/obj"
)

// Render serializes a native step list to YAML text. The output always ends
// with a newline; an empty list renders as the empty flow sequence.
func Render(steps []any) string {
	if len(steps) == 0 {
		return "[]\n"
	}
	var b strings.Builder
	for _, s := range steps {
		writeItem(&b, s, 0)
	}
	return b.String()
}

func pad(indent int) string {
	return strings.Repeat("  ", indent)
}

// writeItem emits one `- ` sequence entry at the given indent level.
func writeItem(b *strings.Builder, v any, indent int) {
	dash := pad(indent) + "- "

	switch t := v.(type) {
	case *obj.Object:
		writeEntries(b, t, indent+1, dash)
	case []any:
		if isScalarList(t) {
			b.WriteString(dash + inlineList(t) + "\n")
			return
		}
		b.WriteString(pad(indent) + "-\n")
		for _, e := range t {
			writeItem(b, e, indent+1)
		}
	default:
		b.WriteString(dash + formatScalar(t) + "\n")
	}
}

// writeEntries emits an object's keys in block style. The first key goes on
// the firstPrefix line (a dash line for sequence entries); subsequent keys
// align beneath it.
func writeEntries(b *strings.Builder, o *obj.Object, indent int, firstPrefix string) {
	first := true
	o.Iter(func(key string, value any) bool {
		prefix := pad(indent)
		if first {
			prefix = firstPrefix
			first = false
		}
		writeEntry(b, key, value, indent, prefix)
		return true
	})
	if first {
		b.WriteString(firstPrefix + "{}\n")
	}
}

func writeEntry(b *strings.Builder, key string, v any, indent int, prefix string) {
	k := formatScalar(key)

	switch t := v.(type) {
	case *obj.Object:
		if t.Len() == 0 {
			b.WriteString(prefix + k + ": {}\n")
			return
		}
		b.WriteString(prefix + k + ":\n")
		writeEntries(b, t, indent+1, pad(indent+1))
	case []any:
		if isScalarList(t) {
			b.WriteString(prefix + k + ": " + inlineList(t) + "\n")
			return
		}
		b.WriteString(prefix + k + ":\n")
		for _, e := range t {
			writeItem(b, e, indent+1)
		}
	case nil:
		b.WriteString(prefix + k + ":\n")
	default:
		b.WriteString(prefix + k + ": " + formatScalar(t) + "\n")
	}
}

func isScalarList(list []any) bool {
	if len(list) == 0 {
		return true
	}
	for _, e := range list {
		if !obj.IsScalar(e) {
			return false
		}
	}
	return true
}

func inlineList(list []any) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = formatScalar(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		if needsQuoting(t) {
			return strconv.Quote(t)
		}
		return t
	default:
		return strconv.Quote("")
	}
}

// reserved words a YAML parser would read as non-strings.
var reservedWords = map[string]bool{
	"true": true, "false": true, "null": true, "yes": true, "no": true,
}

const specialChars = ":{}[],&*?|>!%@`#'\"\\"

// needsQuoting judges whether a bare string would be ambiguous in YAML:
// empty, a reserved word, numeric-looking, containing special characters,
// or padded with whitespace.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if reservedWords[strings.ToLower(s)] {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if strings.ContainsAny(s, specialChars) || strings.ContainsAny(s, "\n\t") {
		return true
	}
	if s != strings.TrimSpace(s) {
		return true
	}
	return false
}
