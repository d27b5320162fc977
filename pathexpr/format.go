package pathexpr

import (
	"strings"

	"github.com/strataforge/strata/internal/pathutil"
)

// Format renders the path in canonical spelling: dotted keys, bracketed
// indices, and bracket-quoted keys only where the plain form would not
// parse back to the same segments. Format is the inverse of Parse for
// every canonical spelling: Parse(p.Format()) yields p's segments.
func (p *Path) Format() string {
	b := pathutil.Get()
	defer pathutil.Put(b)

	for _, seg := range p.Segments {
		switch s := seg.(type) {
		case Key:
			if needsQuoting(string(s)) {
				b.PushQuoted(string(s))
			} else {
				b.Push(string(s))
			}
		case Index:
			b.PushIndex(int(s))
		}
	}
	return b.String()
}

// needsQuoting reports whether a key must be rendered bracket-quoted to
// survive a round-trip: empty keys, the key "/" (which alone would parse
// as the root), keys with surrounding whitespace the dotted form would
// preserve but look ambiguous, and keys containing separator or quote
// characters.
func needsQuoting(key string) bool {
	if key == "" || key == "/" || strings.TrimSpace(key) != key {
		return true
	}
	return strings.ContainsAny(key, `.[]\"'`)
}
