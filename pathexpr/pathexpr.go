package pathexpr

import (
	"strconv"
	"strings"

	"github.com/strataforge/strata/strataerrors"
)

// Segment is one step in a parsed path expression: either a Key into an
// object/map or an Index into an array/sequence.
type Segment interface {
	segmentType() string
}

// Key addresses a named member of an object.
type Key string

func (k Key) segmentType() string { return "key" }

// Index addresses a positional element of an array.
type Index int

func (i Index) segmentType() string { return "index" }

// Path is a parsed path expression: an ordered list of segments describing
// how to navigate from the document root to the addressed value. An empty
// Path addresses the document root itself.
type Path struct {
	raw      string
	Segments []Segment
}

// String returns the original path-expression text the Path was parsed
// from.
func (p *Path) String() string {
	return p.raw
}

// Parse parses a path expression into a sequence of segments.
//
// An empty string or "/" parses to a Path with no segments, addressing the
// document root. Parse never returns an error for malformed bracket
// content that happens to look like a key (e.g. an empty bracket pair is
// simply skipped) — the only failure modes are a '[' that ends the input
// and an unterminated quoted bracket key, both reported as a
// *strataerrors.ParseError.
func Parse(path string) (*Path, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == "/" {
		return &Path{raw: path}, nil
	}

	p := &scanner{input: path}
	segments, err := p.scan()
	if err != nil {
		return nil, err
	}
	return &Path{raw: path, Segments: segments}, nil
}

type scanner struct {
	input string
	pos   int
}

func (s *scanner) scan() ([]Segment, error) {
	var segments []Segment
	var current strings.Builder
	escaped := false

	flush := func() {
		if current.Len() > 0 {
			segments = append(segments, Key(current.String()))
			current.Reset()
		}
	}

	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		s.pos++

		if escaped {
			current.WriteByte(ch)
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			escaped = true
		case '.':
			flush()
		case '[':
			flush()
			seg, err := s.scanBracket()
			if err != nil {
				return nil, err
			}
			if seg != nil {
				segments = append(segments, seg)
			}
		default:
			current.WriteByte(ch)
		}
	}

	flush()
	return segments, nil
}

// scanBracket consumes the bracket body following an already-consumed '['
// and returns the segment it names, or nil if the bracket was empty.
func (s *scanner) scanBracket() (Segment, error) {
	if s.pos >= len(s.input) {
		return nil, &strataerrors.ParseError{
			Path:    s.input,
			Message: "unterminated bracket",
		}
	}

	if ch := s.input[s.pos]; ch == '"' || ch == '\'' {
		s.pos++
		return s.scanQuotedKey(ch)
	}

	var body strings.Builder
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		s.pos++
		if ch == ']' {
			break
		}
		body.WriteByte(ch)
	}

	content := strings.TrimSpace(body.String())
	if content == "" {
		return nil, nil
	}
	if idx, err := strconv.Atoi(content); err == nil && idx >= 0 {
		return Index(idx), nil
	}
	return Key(content), nil
}

func (s *scanner) scanQuotedKey(quote byte) (Segment, error) {
	var key strings.Builder
	escaped := false
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		s.pos++

		if escaped {
			key.WriteByte(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == quote {
			if s.pos < len(s.input) && s.input[s.pos] == ']' {
				s.pos++
				return Key(key.String()), nil
			}
			key.WriteByte(ch)
			continue
		}
		key.WriteByte(ch)
	}
	return nil, &strataerrors.ParseError{
		Path:    s.input,
		Message: "unterminated quoted bracket key",
	}
}
