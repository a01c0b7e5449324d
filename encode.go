package jsondiffpatch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON renders v as JSON text, preserving object member
// insertion order. Printing is an external collaborator per §1 ("a
// printer that serializes it"), but is implemented here rather than
// left as a stub because every test in §8 asserts on exact delta JSON
// bytes, and a caller needs some way to get a Value back out to text.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		return json.Marshal(v.arr)
	case KindObject:
		return v.obj.MarshalJSON()
	default:
		return nil, fmt.Errorf("jsondiffpatch: invalid Value kind %d", v.kind)
	}
}

// UnmarshalJSON decodes JSON text into v, preserving object member
// insertion order — something encoding/json's default map[string]any
// target cannot do, since Go maps do not remember insertion order and
// §3 requires it for byte-identical delta output across
// implementations.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	decoded, err := decodeToken(dec, tok)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalJSON renders the object as a JSON object with members in
// insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
