package jsondiffpatch

// diffObject implements §4.D: walk L's keys in insertion order emitting
// deletions/recursive subdiffs, then walk R's keys for additions. l and
// r must both be KindObject; equality has already been ruled out by the
// caller.
func diffObject(ctx *diffContext, l, r Value) Value {
	lo, _ := l.AsObject()
	ro, _ := r.AsObject()

	out := NewObject()

	for _, k := range lo.Keys() {
		lv, _ := lo.Get(k)
		if rv, ok := ro.Get(k); ok {
			if sub := diffValue(ctx, lv, rv); !sub.IsNull() {
				out.Set(k, sub)
			}
			continue
		}
		out.Set(k, deletion(lv))
	}

	for _, k := range ro.Keys() {
		if lo.Has(k) {
			continue
		}
		rv, _ := ro.Get(k)
		out.Set(k, addition(rv))
	}

	if ctx.opts.Arena != nil {
		ctx.opts.Arena.Track(out.Len())
	}

	if out.Len() == 0 {
		return Null()
	}
	return ObjectValue(out)
}
