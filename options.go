package jsondiffpatch

import "github.com/olafura/jsondiffpatch/internal/arena"

// Options configures a Diff call, per §6 of the specification.
type Options struct {
	// StrictEquality selects bit-exact number comparison when true, or
	// a 1e-9 absolute tolerance when false. Default true.
	StrictEquality bool

	// Arena, if non-nil, is the allocation pool utilization is tracked
	// against for the resulting delta. The arena is reset on entry to
	// Diff, so one Arena supports one live delta at a time (§5). Leave
	// nil to use the ambient allocator.
	Arena *arena.Arena
}

// Option mutates an Options value. The pattern follows the
// functional-options style used by the jsondiff Differ in the example
// corpus (Differ.WithOpts(opts ...Option)) rather than requiring every
// caller to spell out a full Options literal and get StrictEquality's
// zero value (false) wrong relative to the spec's "default true".
type Option func(*Options)

// WithStrictEquality overrides number-comparison strictness.
func WithStrictEquality(strict bool) Option {
	return func(o *Options) { o.StrictEquality = strict }
}

// WithArena attaches an allocation arena to the call.
func WithArena(a *arena.Arena) Option {
	return func(o *Options) { o.Arena = a }
}

func defaultOptions() Options {
	return Options{StrictEquality: true}
}

func resolveOptions(opts []Option) Options {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func (o Options) strict() bool {
	return o.StrictEquality
}
