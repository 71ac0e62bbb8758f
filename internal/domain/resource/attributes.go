package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnsupportedAttrValue = errors.New("unsupported attribute value type")

// AttrKind enumerates the closed set of scalar types an attribute may hold.
type AttrKind int

const (
	AttrString AttrKind = iota
	AttrInt
	AttrFloat
	AttrBool
)

// AttrValue is a typed scalar variant. Resources carry free-form metadata
// (floor number, color, license class) as a map of these instead of an open
// dynamic type.
type AttrValue struct {
	kind AttrKind
	s    string
	i    int64
	f    float64
	b    bool
}

func StringAttr(v string) AttrValue { return AttrValue{kind: AttrString, s: v} }
func IntAttr(v int64) AttrValue     { return AttrValue{kind: AttrInt, i: v} }
func FloatAttr(v float64) AttrValue { return AttrValue{kind: AttrFloat, f: v} }
func BoolAttr(v bool) AttrValue     { return AttrValue{kind: AttrBool, b: v} }

func (v AttrValue) Kind() AttrKind { return v.kind }

func (v AttrValue) String() (string, bool) { return v.s, v.kind == AttrString }
func (v AttrValue) Int() (int64, bool)     { return v.i, v.kind == AttrInt }
func (v AttrValue) Float() (float64, bool) { return v.f, v.kind == AttrFloat }
func (v AttrValue) Bool() (bool, bool)     { return v.b, v.kind == AttrBool }

func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttrString:
		return json.Marshal(v.s)
	case AttrInt:
		return json.Marshal(v.i)
	case AttrFloat:
		return json.Marshal(v.f)
	case AttrBool:
		return json.Marshal(v.b)
	default:
		return nil, ErrUnsupportedAttrValue
	}
}

func (v *AttrValue) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch val := raw.(type) {
	case string:
		*v = StringAttr(val)
	case bool:
		*v = BoolAttr(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			*v = IntAttr(i)
			return nil
		}
		f, err := val.Float64()
		if err != nil {
			return err
		}
		*v = FloatAttr(f)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedAttrValue, raw)
	}
	return nil
}

// Attributes is the typed replacement for the open key-value settings bag.
type Attributes map[string]AttrValue
