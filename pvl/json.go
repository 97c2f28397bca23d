package pvl

import (
	"bytes"

	json "github.com/SCP002/jsonexraw"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ToJSON returns <obj> as indented JSON with members in label order.
//
// Groups and objects become JSON objects, keywords become strings, arrays of strings or null if they have no
// values. Values with unit become {"value": ..., "unit": ...}. Elements sharing a name are collected into an array.
func ToJSON(obj *Object) ([]byte, error) {
	out, err := json.MarshalIndent(objectJSON(obj), "", "    ")
	return out, errors.Wrap(err, "Encode label to JSON")
}

// jsonObject represents JSON object keeping order of its members
type jsonObject struct {
	keys   []string
	values map[string]any
}

func newJSONObject() *jsonObject {
	return &jsonObject{values: map[string]any{}}
}

// put adds <value> under <name>, turning it into array if the name is already taken
func (o *jsonObject) put(name string, value any) {
	existing, ok := o.values[name]
	if !ok {
		o.keys = append(o.keys, name)
		o.values[name] = value
		return
	}
	if list, ok := existing.(repeated); ok {
		o.values[name] = append(list, value)
		return
	}
	o.values[name] = repeated{existing, value}
}

// MarshalJSON used to satisfy json.Marshaler interface
func (o *jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, errors.Wrapf(err, "Encode [%v]", key)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// repeated holds values of elements sharing a name
type repeated []any

func objectJSON(obj *Object) *jsonObject {
	out := containerJSON(&obj.Container)
	for _, grp := range obj.Groups {
		out.put(grp.Name, containerJSON(&grp.Container))
	}
	for _, child := range obj.Objects {
		out.put(child.Name, objectJSON(child))
	}
	return out
}

func containerJSON(c *Container) *jsonObject {
	out := newJSONObject()
	for _, kw := range c.Keywords {
		out.put(kw.Name, keywordJSON(kw))
	}
	return out
}

func keywordJSON(kw *Keyword) any {
	values := lo.Map(kw.Values, func(v Value, _ int) any {
		if v.Unit == "" {
			return v.Text
		}
		withUnit := newJSONObject()
		withUnit.put("value", v.Text)
		withUnit.put("unit", v.Unit)
		return withUnit
	})
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return values
	}
}
