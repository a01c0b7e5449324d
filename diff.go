package jsondiffpatch

import (
	"encoding/json"
	"fmt"

	"github.com/olafura/jsondiffpatch/internal/safety"
)

// diffContext carries the per-call configuration and depth guard
// through the mutually recursive diff walk. The spec's reference
// implementation threads this state through a thread-local; this
// module instead passes an explicit context value, which the design
// notes (§9 "Thread-local state") call out as an equivalent,
// Go-preferable alternative. Two goroutines diffing disjoint inputs
// each own their own diffContext and never contend.
type diffContext struct {
	opts  Options
	depth *safety.DepthGuard
}

// Diff computes the delta between left and right, per §4.F. It returns
// Null() when the two values are equal (§3: "a null return from diff
// means values are equal, no delta needed") or when the recursion-depth
// guard trips (§4.H, §7 kind 2: a bounded-resource refusal is silent by
// design, matching the C original's contract).
func Diff(left, right Value, opts ...Option) Value {
	o := resolveOptions(opts)
	if o.Arena != nil {
		o.Arena.Reset()
	}
	ctx := &diffContext{opts: o, depth: safety.NewDepthGuard()}
	return diffValue(ctx, left, right)
}

func diffValue(ctx *diffContext, l, r Value) Value {
	if !ctx.depth.Enter() {
		ctx.depth.Exit()
		return Null()
	}
	defer ctx.depth.Exit()

	if Equal(l, r, ctx.opts.strict()) {
		return Null()
	}

	if l.kind != r.kind || (l.kind != KindArray && l.kind != KindObject) {
		return change(l, r)
	}

	if l.kind == KindArray {
		return diffArray(ctx, l, r)
	}
	return diffObject(ctx, l, r)
}

// DiffFromText parses leftSrc and rightSrc as JSON text and computes
// their delta, per §6 operation 4. JSON parsing is explicitly an
// external collaborator (§1): this convenience wraps encoding/json
// rather than reimplementing a tokenizer, the same boundary the C
// original draws between json_diff (the core) and json_diff_str (its
// text-parsing wrapper over the jsmn tokenizer in src/parse_jsmn.c).
func DiffFromText(leftSrc, rightSrc []byte, opts ...Option) (Value, error) {
	if err := safety.CheckInputSize(leftSrc); err != nil {
		return Null(), fmt.Errorf("jsondiffpatch: left input: %w", err)
	}
	if err := safety.CheckInputSize(rightSrc); err != nil {
		return Null(), fmt.Errorf("jsondiffpatch: right input: %w", err)
	}

	left, err := decodeJSON(leftSrc)
	if err != nil {
		return Null(), fmt.Errorf("jsondiffpatch: decode left: %w", err)
	}
	right, err := decodeJSON(rightSrc)
	if err != nil {
		return Null(), fmt.Errorf("jsondiffpatch: decode right: %w", err)
	}

	return Diff(left, right, opts...), nil
}

// decodeJSON parses JSON text into a Value tree, preserving object
// member insertion order (§3) — something encoding/json's default
// map[string]any target cannot do, since Go maps do not remember
// insertion order. A json.Decoder driven token-by-token gives us that
// order back without hand-writing a tokenizer, matching the spirit of
// the C original's jsmn_tree (a thin, order-preserving view over the
// jsmn tokenizer's flat token array).
func decodeJSON(src []byte) (Value, error) {
	var v Value
	if err := json.Unmarshal(src, &v); err != nil {
		return Null(), err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Null(), fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			var items []Value
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				items = append(items, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Null(), err
			}
			return Array(items), nil
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null(), err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null(), fmt.Errorf("expected object key, got %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Null(), err
			}
			return ObjectValue(obj), nil
		default:
			return Null(), fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return Null(), fmt.Errorf("unexpected JSON token %v (%T)", tok, tok)
	}
}
