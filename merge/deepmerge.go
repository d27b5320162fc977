package merge

// mergeValue merges src into dst and returns the result.
//
// Two objects merge key by key with source keys overwriting destination
// keys and nested objects recursing. Two arrays combine per mode. Any
// other pairing is a scalar overwrite: the source value wins.
func mergeValue(dst, src any, mode ArrayMode, pos Position) any {
	if dm, ok := dst.(map[string]any); ok {
		if sm, ok := src.(map[string]any); ok {
			return mergeDeep(dm, sm, mode, pos)
		}
	}
	if da, ok := dst.([]any); ok {
		if sa, ok := src.([]any); ok {
			return mergeArrays(da, sa, mode, pos)
		}
	}
	return src
}

// mergeDeep merges source into target in place and returns target.
func mergeDeep(target, source map[string]any, mode ArrayMode, pos Position) map[string]any {
	for key, srcVal := range source {
		if targetVal, exists := target[key]; exists {
			target[key] = mergeValue(targetVal, srcVal, mode, pos)
			continue
		}
		target[key] = srcVal
	}
	return target
}

// mergeArrays combines two arrays into a fresh slice per mode and
// position. Position only matters for the appending modes: Start places
// the source items before the destination items.
func mergeArrays(dst, src []any, mode ArrayMode, pos Position) []any {
	switch mode {
	case Replace:
		out := make([]any, len(src))
		copy(out, src)
		return out
	case AppendUnique:
		filtered := make([]any, 0, len(src))
		for _, item := range src {
			if !containsValue(dst, item) {
				filtered = append(filtered, item)
			}
		}
		src = filtered
	}

	out := make([]any, 0, len(dst)+len(src))
	if pos == Start {
		out = append(out, src...)
		return append(out, dst...)
	}
	out = append(out, dst...)
	return append(out, src...)
}

func containsValue(items []any, want any) bool {
	for _, item := range items {
		if valueEqual(item, want) {
			return true
		}
	}
	return false
}

// valueEqual compares two decoded document values structurally. Numbers
// compare by value regardless of the concrete type the decoder produced
// (YAML yields int, JSON float64).
func valueEqual(a, b any) bool {
	if am, ok := a.(map[string]any); ok {
		bm, ok := b.(map[string]any)
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !valueEqual(av, bv) {
				return false
			}
		}
		return true
	}
	if aa, ok := a.([]any); ok {
		ba, ok := b.([]any)
		if !ok || len(aa) != len(ba) {
			return false
		}
		for i := range aa {
			if !valueEqual(aa[i], ba[i]) {
				return false
			}
		}
		return true
	}

	if af, ok := asFloat(a); ok {
		bf, ok := asFloat(b)
		return ok && af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
