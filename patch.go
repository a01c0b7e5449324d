package jsondiffpatch

import (
	"sort"

	"github.com/olafura/jsondiffpatch/internal/safety"
)

// patchContext carries the depth guard through the mutually recursive
// patch walk, mirroring diffContext (see diff.go) for the same reason:
// an explicit, caller-owned context in place of the C original's
// thread-local depth counter.
type patchContext struct {
	depth *safety.DepthGuard
}

// Patch applies delta to base and returns the reconstructed value, per
// §4.G. The returned bool is false only for the "cannot patch" sentinel
// (§7 kind 2: the recursion-depth guard tripped); a false return comes
// with no diagnostic, matching the spec's leniency requirement. An
// ill-formed delta (§7 kind 3) never makes Patch return false — the
// patcher ignores the offending entry and returns whatever it could
// apply, typically a deep copy of base for that subtree.
//
// The result shares no storage with base or delta (§9: implementers
// SHOULD deep-copy on return rather than alias into either input).
func Patch(base, delta Value) (Value, bool) {
	ctx := &patchContext{depth: safety.NewDepthGuard()}
	return patchValue(ctx, base, delta)
}

func patchValue(ctx *patchContext, base, delta Value) (Value, bool) {
	if !ctx.depth.Enter() {
		ctx.depth.Exit()
		return Null(), false
	}
	defer ctx.depth.Exit()

	switch classifyDelta(delta) {
	case shapeChange:
		arr, _ := delta.AsArray()
		return arr[1].Clone(), true
	case shapeAddition, shapeDeletion:
		// A length-1 or length-3 array reaching patchValue directly
		// (rather than through an object/array delta's member loop) is
		// ill-formed at this position (§4.G step 3): fall back to a
		// deep copy of base.
		return base.Clone(), true
	case shapeArraySubdiff:
		if base.Kind() == KindArray {
			return patchArray(ctx, base, delta)
		}
		return base.Clone(), true
	case shapeObjectSubdiff:
		return patchObject(ctx, base, delta)
	default: // shapeInvalid
		return base.Clone(), true
	}
}

// patchObject implements §4.G step 5: start from a deep copy of base
// (or an empty object if base is not itself an object) and apply each
// entry of delta in insertion order.
func patchObject(ctx *patchContext, base, delta Value) (Value, bool) {
	deltaObj, _ := delta.AsObject()

	var result *Object
	if baseObj, ok := base.AsObject(); ok {
		result = baseObj.Clone()
	} else {
		result = NewObject()
	}

	for _, key := range deltaObj.Keys() {
		v, _ := deltaObj.Get(key)
		switch classifyDelta(v) {
		case shapeAddition:
			arr, _ := v.AsArray()
			result.Set(key, arr[0].Clone())
		case shapeDeletion:
			result.Delete(key)
		case shapeChange:
			arr, _ := v.AsArray()
			result.Set(key, arr[1].Clone())
		case shapeObjectSubdiff, shapeArraySubdiff:
			if cur, ok := result.Get(key); ok {
				if patched, ok := patchValue(ctx, cur, v); ok {
					result.Set(key, patched)
				}
			}
			// key absent in base: nothing to recurse into, ignore.
		default:
			// shapeInvalid: ill-formed entry, ignore.
		}
	}

	return ObjectValue(result), true
}

// arrayEntryKind classifies one member of an array delta object per the
// key-prefix and value-shape rules of §4.G-array step 1.
type arrayEntryKind int

const (
	arrayEntryDelete arrayEntryKind = iota
	arrayEntryMove
	arrayEntryAdd
	arrayEntryReplace
	arrayEntryNested
)

type arrayEntry struct {
	kind arrayEntryKind
	idx  int
	dest int   // arrayEntryMove only
	val  Value // old value (delete), new value (add/replace), or sub-delta (nested)
}

// classifyArrayEntries walks delta's members in insertion order and
// classifies each per §4.G-array step 1, dropping entries whose index is
// unparseable, negative, or overflowing (§4.H).
func classifyArrayEntries(deltaObj *Object) []arrayEntry {
	var entries []arrayEntry
	for _, key := range deltaObj.Keys() {
		if key == arrayMarkerKey {
			continue
		}
		v, _ := deltaObj.Get(key)

		if len(key) > 0 && key[0] == '_' {
			idx, ok := safety.ParseArrayIndex(key[1:])
			if !ok {
				continue
			}
			arr, isArr := v.AsArray()
			if !isArr || len(arr) != 3 {
				continue
			}
			if isLiteralZero(arr[1]) && isLiteralZero(arr[2]) {
				entries = append(entries, arrayEntry{kind: arrayEntryDelete, idx: idx, val: arr[0]})
				continue
			}
			if s, ok := arr[0].AsString(); ok && s == "" {
				if destN, ok1 := arr[1].AsNumber(); ok1 {
					if threeN, ok2 := arr[2].AsNumber(); ok2 && threeN == 3 {
						entries = append(entries, arrayEntry{kind: arrayEntryMove, idx: idx, dest: int(destN)})
					}
				}
			}
			continue
		}

		idx, ok := safety.ParseArrayIndex(key)
		if !ok {
			continue
		}
		switch classifyDelta(v) {
		case shapeAddition:
			arr, _ := v.AsArray()
			entries = append(entries, arrayEntry{kind: arrayEntryAdd, idx: idx, val: arr[0]})
		case shapeChange:
			arr, _ := v.AsArray()
			entries = append(entries, arrayEntry{kind: arrayEntryReplace, idx: idx, val: arr[1]})
		case shapeObjectSubdiff, shapeArraySubdiff:
			entries = append(entries, arrayEntry{kind: arrayEntryNested, idx: idx, val: v})
		default:
			// shapeDeletion or shapeInvalid under a non-underscore key
			// is ill-formed; ignore.
		}
	}
	return entries
}

// patchArray implements §4.G-array: classify, delete (descending index
// order), move (ascending destination), then
// apply additions/replacements/nested patches in delta order.
func patchArray(ctx *patchContext, base, delta Value) (Value, bool) {
	baseArr, _ := base.AsArray()
	deltaObj, _ := delta.AsObject()

	w := make([]Value, len(baseArr))
	for i, v := range baseArr {
		w[i] = v.Clone()
	}

	entries := classifyArrayEntries(deltaObj)

	// Every deletion is applied, in descending index order, before any
	// addition. An addition then inserts at its index, shifting the slots
	// at and after it, or appends when its index is past the end: the
	// diff emitter's addition keys are target-array positions, so a
	// deletion and an addition under the same index (a replacement)
	// leave the new value in that slot.
	var delIdx []int
	for _, e := range entries {
		if e.kind == arrayEntryDelete {
			delIdx = append(delIdx, e.idx)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(delIdx)))
	for _, idx := range delIdx {
		if idx >= 0 && idx < len(w) {
			w = append(w[:idx], w[idx+1:]...)
		}
	}

	var moves []arrayEntry
	for _, e := range entries {
		if e.kind == arrayEntryMove {
			moves = append(moves, e)
		}
	}
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].dest < moves[j].dest })
	for _, mv := range moves {
		if mv.idx < 0 || mv.idx >= len(baseArr) || mv.dest < 0 {
			continue
		}
		srcVal := baseArr[mv.idx]

		pos := -1
		if mv.idx < len(w) && Equal(w[mv.idx], srcVal, true) {
			pos = mv.idx
		} else {
			for i, el := range w {
				if Equal(el, srcVal, true) {
					pos = i
					break
				}
			}
		}
		if pos == -1 {
			continue
		}
		val := w[pos]
		w = append(w[:pos], w[pos+1:]...)

		if mv.dest >= len(w) {
			w = append(w, val)
		} else {
			w = append(w, Value{})
			copy(w[mv.dest+1:], w[mv.dest:])
			w[mv.dest] = val
		}
	}

	for _, e := range entries {
		switch e.kind {
		case arrayEntryAdd:
			if e.idx < 0 {
				continue
			}
			switch {
			case e.idx >= len(w):
				w = append(w, e.val.Clone())
			default:
				w = append(w, Value{})
				copy(w[e.idx+1:], w[e.idx:])
				w[e.idx] = e.val.Clone()
			}
		case arrayEntryReplace:
			if e.idx >= 0 && e.idx < len(w) {
				w[e.idx] = e.val.Clone()
			}
		case arrayEntryNested:
			if e.idx >= 0 && e.idx < len(w) {
				if patched, ok := patchValue(ctx, w[e.idx], e.val); ok {
					w[e.idx] = patched
				}
			}
		}
	}

	return Array(w), true
}
