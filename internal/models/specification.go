package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// SpecKind tags the JSON type a specification value was stored with.
type SpecKind int

const (
	SpecString SpecKind = iota
	SpecNumber
	SpecBool
	SpecNull
	SpecOther
)

// SpecValue is one scalar of a product specification. The raw text is kept
// so that 8 and "8" remain distinguishable after a round trip.
type SpecValue struct {
	Kind SpecKind
	raw  string
}

func StringValue(s string) SpecValue { return SpecValue{Kind: SpecString, raw: s} }

func IntValue(n int64) SpecValue { return SpecValue{Kind: SpecNumber, raw: strconv.FormatInt(n, 10)} }

func NumberValue(n json.Number) SpecValue { return SpecValue{Kind: SpecNumber, raw: n.String()} }

func BoolValue(b bool) SpecValue { return SpecValue{Kind: SpecBool, raw: strconv.FormatBool(b)} }

func NullValue() SpecValue { return SpecValue{Kind: SpecNull, raw: "null"} }

// String renders the value the way facets and substring matching see it:
// strings verbatim, numbers in canonical form, everything else as its JSON
// literal.
func (v SpecValue) String() string {
	if v.Kind == SpecNumber {
		return canonicalNumber(v.raw)
	}
	return v.raw
}

// canonicalNumber keeps integer literals exact and renders any other number
// as its shortest float64 form with a ".0" suffix for whole values, so 1.50
// reads "1.5" and 1e2 reads "100.0".
func canonicalNumber(raw string) string {
	if i, ok := new(big.Int).SetString(raw, 10); ok {
		return i.String()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return raw
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(out, '.') {
		out += ".0"
	}
	return out
}

// EqualsInt reports whether v is a number numerically equal to n.
func (v SpecValue) EqualsInt(n int64) bool {
	return v.EqualsInteger(big.NewInt(n))
}

// EqualsInteger reports whether v is a number numerically equal to n. Integer
// literals of any size compare exactly; other numbers compare through their
// float64 value.
func (v SpecValue) EqualsInteger(n *big.Int) bool {
	if v.Kind != SpecNumber || n == nil {
		return false
	}
	if i, ok := new(big.Int).SetString(v.raw, 10); ok {
		return i.Cmp(n) == 0
	}
	f, err := strconv.ParseFloat(v.raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return false
	}
	return new(big.Float).SetFloat64(f).Cmp(new(big.Float).SetInt(n)) == 0
}

// EqualsString reports whether v is a string equal to s.
func (v SpecValue) EqualsString(s string) bool {
	return v.Kind == SpecString && v.raw == s
}

func (v SpecValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case SpecString:
		return json.Marshal(v.raw)
	case SpecNull:
		return []byte("null"), nil
	default:
		if v.raw == "" {
			return []byte("null"), nil
		}
		return []byte(v.raw), nil
	}
}

func (v *SpecValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty specification value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case 'n':
		*v = NullValue()
	case '[', '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*v = SpecValue{Kind: SpecOther, raw: buf.String()}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NumberValue(n)
	}
	return nil
}

type SpecEntry struct {
	Key   string
	Value SpecValue
}

// Specification is the open key/value attribute blob of a product. Entries
// keep their document order; a repeated key replaces the earlier value.
type Specification []SpecEntry

func (s Specification) Get(key string) (SpecValue, bool) {
	for _, e := range s {
		if e.Key == key {
			return e.Value, true
		}
	}
	return SpecValue{}, false
}

// Set replaces the value of key or appends a new entry.
func (s *Specification) Set(key string, v SpecValue) {
	for i := range *s {
		if (*s)[i].Key == key {
			(*s)[i].Value = v
			return
		}
	}
	*s = append(*s, SpecEntry{Key: key, Value: v})
}

func (s Specification) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Specification) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("specification must be a JSON object, got %v", tok)
	}

	spec := Specification{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected specification key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var v SpecValue
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("specification %q: %w", key, err)
		}
		spec.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = spec
	return nil
}
