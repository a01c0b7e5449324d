package jsondiffpatch

// arrayMarkerKey and arrayMarkerValue tag an object delta as an array
// delta, per the jsondiffpatch wire format (§3, §6).
const (
	arrayMarkerKey   = "_t"
	arrayMarkerValue = "a"
)

// addition builds the delta shape for an inserted value: a one-element
// array [new]. The input is cloned so the delta is self-contained.
func addition(v Value) Value {
	return Array([]Value{v.Clone()})
}

// change builds the delta shape for a replacement: a two-element array
// [old, new]. Both inputs are cloned.
func change(old, new_ Value) Value {
	return Array([]Value{old.Clone(), new_.Clone()})
}

// deletion builds the delta shape for a removal: [old, 0, 0]. The
// trailing zeros are literal numeric zeros, distinguishing a deletion
// array (length 3) from a change array (length 2).
func deletion(old Value) Value {
	return Array([]Value{old.Clone(), Number(0), Number(0)})
}

// deltaShape classifies a delta value by inspection, per §3.
type deltaShape int

const (
	shapeInvalid deltaShape = iota
	shapeAddition
	shapeChange
	shapeDeletion
	shapeObjectSubdiff
	shapeArraySubdiff
)

// classifyDelta inspects v and reports which of the wire-format shapes
// it matches. A plain object without the _t marker is an object
// subdiff; an object carrying _t = "a" is an array subdiff.
func classifyDelta(v Value) deltaShape {
	switch v.kind {
	case KindArray:
		switch len(v.arr) {
		case 1:
			return shapeAddition
		case 2:
			return shapeChange
		case 3:
			if isLiteralZero(v.arr[1]) && isLiteralZero(v.arr[2]) {
				return shapeDeletion
			}
			return shapeInvalid
		default:
			return shapeInvalid
		}
	case KindObject:
		if marker, ok := v.obj.Get(arrayMarkerKey); ok {
			if s, ok := marker.AsString(); ok && s == arrayMarkerValue {
				return shapeArraySubdiff
			}
			return shapeInvalid
		}
		return shapeObjectSubdiff
	default:
		return shapeInvalid
	}
}

func isLiteralZero(v Value) bool {
	n, ok := v.AsNumber()
	return ok && n == 0
}
