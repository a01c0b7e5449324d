// Package safety implements the resource guards required by §4.H of the
// jsondiffpatch specification: a recursion-depth guard, an input-size
// guard, and strict integer-index parsing for array delta keys.
//
// The C original (olafura/json_diff_c) tracks recursion depth with a
// __thread (thread-local) counter. Go programs more commonly thread an
// explicit context value through recursive calls rather than relying on
// goroutine-local storage — the design notes in the spec call this out
// as an equivalent, preferable alternative in languages where TLS is
// heavyweight — so DepthGuard is a small value passed by the caller
// instead of package-level state. Two goroutines calling Diff/Patch on
// disjoint inputs each carry their own DepthGuard and never contend.
package safety

import (
	"fmt"
	"math"

	"github.com/agentflare-ai/jsonpointer"
)

// MaxJSONDepth is the default recursion-depth ceiling for Diff and
// Patch, matching MAX_JSON_DEPTH in the C original's test_security.c.
const MaxJSONDepth = 1024

// MaxJSONInputSize is the default ceiling, in bytes, on text fed to the
// text entry point, matching MAX_JSON_INPUT_SIZE in the C original.
const MaxJSONInputSize = 1 << 20 // 1 MiB

// DepthGuard tracks recursion depth for a single Diff or Patch call.
// Create one with NewDepthGuard or NewDepthGuardWithLimit; the zero
// value has a ceiling of 0 and refuses every Enter.
type DepthGuard struct {
	depth int
	max   int
}

// NewDepthGuard returns a guard with the default depth ceiling.
func NewDepthGuard() *DepthGuard {
	return &DepthGuard{max: MaxJSONDepth}
}

// NewDepthGuardWithLimit returns a guard with a caller-supplied ceiling,
// primarily for tests that exercise the boundary without allocating a
// MaxJSONDepth-deep tree.
func NewDepthGuardWithLimit(limit int) *DepthGuard {
	return &DepthGuard{max: limit}
}

// Enter increments the depth counter and reports whether the caller is
// still within bounds. Every successful Enter must be paired with an
// Exit on all return paths, including early returns triggered by a
// failed Enter itself (the caller should still call Exit once for the
// increment that just happened).
func (g *DepthGuard) Enter() bool {
	g.depth++
	return g.depth <= g.max
}

// Exit decrements the depth counter. Must be called exactly once for
// every call to Enter, on every exit path.
func (g *DepthGuard) Exit() {
	g.depth--
}

// CheckInputSize reports an error if b exceeds MaxJSONInputSize.
func CheckInputSize(b []byte) error {
	if len(b) > MaxJSONInputSize {
		return fmt.Errorf("safety: input of %d bytes exceeds MAX_JSON_INPUT_SIZE (%d bytes)", len(b), MaxJSONInputSize)
	}
	return nil
}

// ParseArrayIndex strictly parses a decimal array-delta index: no
// leading sign, no overflow, and the result must fit the 32-bit signed
// range required by §4.H. It reuses jsonpointer.ParseArrayIndex, the
// same strict non-negative decimal parser the teacher library already
// relies on for RFC 6901 array tokens, rather than hand-rolling
// strconv.Atoi plus bounds checks.
func ParseArrayIndex(token string) (int, bool) {
	idx, err := jsonpointer.ParseArrayIndex(token)
	if err != nil {
		return 0, false
	}
	if idx > math.MaxInt32 {
		return 0, false
	}
	return int(idx), true
}
