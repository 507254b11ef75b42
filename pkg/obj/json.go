package obj

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses JSON bytes into the decoded value domain.
// Object key order follows the source bytes.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	if tok, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("unexpected trailing token: %v", tok)
	}
	return v, nil
}

// DecodeObject parses JSON bytes that must be a single object.
func DecodeObject(data []byte) (*Object, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	o, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
	return o, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			o := New()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				o.Set(key, value)
			}
			if _, err := dec.Token(); err != nil { // closing }
				return nil, err
			}
			return o, nil
		case '[':
			list := []any{}
			for dec.More() {
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, value)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter: %v", t)
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		// string, bool, or nil
		return tok, nil
	}
}

// Encode renders a decoded value back to JSON bytes.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// EncodeIndent renders a decoded value to indented JSON bytes.
func EncodeIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (o *Object) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("{")
	first := true
	var marshalErr error
	o.Iter(func(key string, value any) bool {
		if !first {
			buf.WriteString(",")
		}
		first = false

		k, err := json.Marshal(key)
		if err != nil {
			marshalErr = err
			return false
		}
		buf.Write(k)
		buf.WriteString(":")

		v, err := json.Marshal(value)
		if err != nil {
			marshalErr = err
			return false
		}
		buf.Write(v)
		return true
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func (o *Object) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeObject(data)
	if err != nil {
		return err
	}
	*o = *decoded
	return nil
}
