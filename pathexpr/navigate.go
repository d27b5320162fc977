package pathexpr

import "github.com/strataforge/strata/strataerrors"

// MaxArrayPad bounds how far a Set call will grow a destination array to
// satisfy an Index segment that lands past its current end. It guards
// against a pathological recipe (e.g. items[999999999]) turning a merge
// into a multi-gigabyte allocation.
const MaxArrayPad = 100_000

// Get navigates doc following path and returns the value found, or
// (nil, false) if any segment along the way does not exist. doc is
// expected to be the result of decoding a structured document into
// map[string]any / []any / scalar, the shape every decoder in the merge
// package produces.
func Get(doc any, path *Path) (any, bool) {
	cur := doc
	for _, seg := range path.Segments {
		switch s := seg.(type) {
		case Key:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			v, ok := m[string(s)]
			if !ok {
				return nil, false
			}
			cur = v
		case Index:
			arr, ok := cur.([]any)
			if !ok || int(s) < 0 || int(s) >= len(arr) {
				return nil, false
			}
			cur = arr[int(s)]
		}
	}
	return cur, true
}

// Set navigates doc following path, creating intermediate objects and
// arrays as needed, and assigns value at the addressed location. It
// returns the (possibly new) root document, since setting a root-level
// array element may require replacing doc itself.
//
// A Key segment creates a map[string]any when the current container does
// not yet hold one. An Index segment creates a []any, padding with nil up
// to the index (bounded by MaxArrayPad) rather than erroring on a write
// past the end.
func Set(doc any, path *Path, value any) (any, error) {
	if len(path.Segments) == 0 {
		return value, nil
	}
	return setAt(doc, path.Segments, value)
}

func setAt(container any, segments []Segment, value any) (any, error) {
	seg := segments[0]
	rest := segments[1:]

	switch s := seg.(type) {
	case Key:
		m, ok := container.(map[string]any)
		if !ok {
			m = map[string]any{}
		}
		child := m[string(s)]
		if len(rest) == 0 {
			m[string(s)] = value
			return m, nil
		}
		newChild, err := setAt(child, rest, value)
		if err != nil {
			return nil, err
		}
		m[string(s)] = newChild
		return m, nil

	case Index:
		arr, ok := container.([]any)
		if !ok {
			arr = []any{}
		}
		idx := int(s)
		if idx < 0 {
			return nil, &strataerrors.NotFoundError{
				Kind:    "array index",
				Target:  "negative index",
				Message: "array indices must be non-negative",
			}
		}
		if idx >= len(arr) {
			if idx-len(arr) > MaxArrayPad {
				return nil, &strataerrors.ResourceLimitError{
					ResourceType: "array_pad",
					Limit:        MaxArrayPad,
					Actual:       int64(idx - len(arr)),
				}
			}
			padded := make([]any, idx+1)
			copy(padded, arr)
			arr = padded
		}
		if len(rest) == 0 {
			arr[idx] = value
			return arr, nil
		}
		newChild, err := setAt(arr[idx], rest, value)
		if err != nil {
			return nil, err
		}
		arr[idx] = newChild
		return arr, nil
	}

	// unreachable: Segment is a closed set of two implementations
	return container, nil
}
