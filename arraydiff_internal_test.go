package jsondiffpatch

import (
	"testing"

	"github.com/olafura/jsondiffpatch/internal/safety"
)

func TestMyersSESIdenticalSlices(t *testing.T) {
	a := []Value{Number(1), Number(2), Number(3)}
	ops := myersSES(a, a, true)
	if len(ops) != 0 && !(len(ops) == 1 && ops[0].kind == sesEqual && ops[0].length == 3) {
		t.Fatalf("myersSES(identical) = %+v, want a single equal run or nothing", ops)
	}
}

func TestMyersSESPureInsertDelete(t *testing.T) {
	a := []Value{Number(1)}
	b := []Value{Number(1), Number(2)}
	ops := myersSES(a, b, true)

	var inserts, deletes int
	for _, op := range ops {
		switch op.kind {
		case sesInsert:
			inserts++
		case sesDelete:
			deletes++
		}
	}
	if inserts != 1 || deletes != 0 {
		t.Fatalf("myersSES(%v, %v) inserts=%d deletes=%d, want inserts=1 deletes=0", a, b, inserts, deletes)
	}
}

func TestMyersSESReconstructsB(t *testing.T) {
	a := []Value{Number(1), Number(2), Number(3), Number(4)}
	b := []Value{Number(2), Number(4), Number(5)}
	ops := myersSES(a, b, true)

	var out []Value
	for _, op := range ops {
		switch op.kind {
		case sesEqual:
			out = append(out, a[op.aStart:op.aStart+op.length]...)
		case sesInsert:
			out = append(out, b[op.bStart])
		case sesDelete:
			// contributes nothing to b
		}
	}
	if len(out) != len(b) {
		t.Fatalf("reconstructed length %d, want %d (ops=%+v)", len(out), len(b), ops)
	}
	for i := range b {
		if !Equal(out[i], b[i], true) {
			t.Fatalf("reconstructed[%d] = %v, want %v", i, out[i], b[i])
		}
	}
}

func TestMyersSESSingleSubstitution(t *testing.T) {
	a := []Value{Number(3)}
	b := []Value{Number(4)}
	ops := myersSES(a, b, true)

	if len(ops) != 2 || ops[0].kind != sesDelete || ops[1].kind != sesInsert {
		t.Fatalf("myersSES(%v, %v) = %+v, want [delete, insert]", a, b, ops)
	}
	if ops[0].aStart != 0 {
		t.Errorf("delete aStart = %d, want 0", ops[0].aStart)
	}
	if ops[1].bStart != 0 {
		t.Errorf("insert bStart = %d, want 0", ops[1].bStart)
	}
}

func TestMergeArrayOfObjectsPairing(t *testing.T) {
	obj := NewObject()
	oldObj := NewObject()
	oldObj.Set("id", Number(1))
	newObj := NewObject()
	newObj.Set("id", Number(2))

	obj.Set("0", addition(ObjectValue(newObj)))
	obj.Set("_0", deletion(ObjectValue(oldObj)))

	ctx := &diffContext{opts: defaultOptions(), depth: safety.NewDepthGuard()}
	mergeArrayOfObjects(ctx, obj)

	if obj.Has("_0") {
		t.Error("paired deletion key _0 still present after merge")
	}
	v, ok := obj.Get("0")
	if !ok {
		t.Fatal("merged nested subdiff missing at key 0")
	}
	if classifyDelta(v) != shapeObjectSubdiff {
		t.Errorf("merged value shape = %v, want shapeObjectSubdiff", classifyDelta(v))
	}
}
