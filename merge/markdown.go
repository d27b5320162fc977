package merge

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/strataforge/strata/recipe"
	"github.com/strataforge/strata/strataerrors"
	"github.com/strataforge/strata/vfs"
)

// DefaultHeadingLevel is the section level assumed when a markdown
// operation does not name one.
const DefaultHeadingLevel = 2

// headingInfo records one document-level heading and the byte span of the
// section it opens.
type headingInfo struct {
	level     int
	text      string // normalized heading text
	lineStart int    // offset of the heading line's first byte
	bodyStart int    // offset just past the heading line
	bodyEnd   int    // offset of the next boundary heading's line, or EOF
}

// ApplyMarkdown merges the content at op.Source into the section of the
// Markdown document at op.Dest whose heading text equals op.Section (after
// trimming and collapsing whitespace runs; case-sensitive) at the
// requested level.
//
// A found section's body is replaced, or — with append set — the source
// content is inserted at the section's start or end per op.Position. A
// missing section fails unless op.CreateSection is set, in which case a
// new section is added at the start or end of the document.
func ApplyMarkdown(fsys *vfs.VFS, op *recipe.MarkdownOp) error {
	level := op.Level
	if level == 0 {
		level = DefaultHeadingLevel
	}
	pos := positionOf(op.Position)

	srcFile, ok := fsys.Get(op.Source)
	if !ok {
		return &strataerrors.NotFoundError{Kind: "merge source", Target: op.Source}
	}
	content := ensureTrailingNewline(srcFile.Content)

	destFile, _ := fsys.Get(op.Dest)
	doc := destFile.Content

	want := normalizeHeading(op.Section)
	var target *headingInfo
	for _, h := range scanSections(doc) {
		if h.level == level && h.text == want {
			target = &h
			break
		}
	}

	var out []byte
	switch {
	case target != nil && !op.Append:
		out = splice(doc, target.bodyStart, target.bodyEnd, append([]byte("\n"), content...))
	case target != nil && pos == Start:
		out = splice(doc, target.bodyStart, target.bodyStart, append([]byte("\n"), content...))
	case target != nil:
		insert := content
		if target.bodyEnd > 0 && doc[target.bodyEnd-1] != '\n' {
			insert = append([]byte("\n"), insert...)
		}
		out = splice(doc, target.bodyEnd, target.bodyEnd, insert)
	case op.CreateSection:
		out = createSection(doc, op.Section, level, content, pos)
	default:
		return &strataerrors.NotFoundError{Kind: "markdown section", Target: op.Section}
	}

	fsys.Add(op.Dest, vfs.File{Content: out, Mode: destFile.Mode, ModTime: destFile.ModTime})
	return nil
}

// scanSections parses doc and returns its document-level headings with
// their section spans. A section runs from the end of its heading line to
// the start of the next heading of equal or shallower level.
func scanSections(doc []byte) []headingInfo {
	if len(doc) == 0 {
		return nil
	}

	root := goldmark.New().Parser().Parse(text.NewReader(doc))

	var headings []headingInfo
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		h, ok := c.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		first := h.Lines().At(0)
		last := h.Lines().At(h.Lines().Len() - 1)

		lineStart := bytes.LastIndexByte(doc[:first.Start], '\n') + 1
		bodyStart := len(doc)
		if nl := bytes.IndexByte(doc[last.Stop:], '\n'); nl >= 0 {
			bodyStart = last.Stop + nl + 1
		}

		headings = append(headings, headingInfo{
			level:     h.Level,
			text:      normalizeHeading(string(collectText(h, doc))),
			lineStart: lineStart,
			bodyStart: bodyStart,
		})
	}

	for i := range headings {
		headings[i].bodyEnd = len(doc)
		for j := i + 1; j < len(headings); j++ {
			if headings[j].level <= headings[i].level {
				headings[i].bodyEnd = headings[j].lineStart
				break
			}
		}
	}
	return headings
}

// collectText gathers the literal text under a node, descending through
// inline containers such as emphasis.
func collectText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	var walk func(node ast.Node)
	walk = func(node ast.Node) {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(source))
			case *ast.String:
				buf.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return buf.Bytes()
}

// normalizeHeading trims surrounding whitespace and collapses internal
// whitespace runs to single spaces; case is preserved.
func normalizeHeading(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func createSection(doc []byte, section string, level int, content []byte, pos Position) []byte {
	heading := strings.Repeat("#", level) + " " + section + "\n"
	block := append([]byte(heading+"\n"), content...)

	if pos == Start {
		if len(doc) == 0 {
			return block
		}
		return append(append(block, '\n'), doc...)
	}

	if len(doc) == 0 {
		return block
	}
	out := ensureTrailingNewline(doc)
	out = append(out, '\n')
	return append(out, block...)
}

func splice(doc []byte, start, end int, insert []byte) []byte {
	out := make([]byte, 0, len(doc)-(end-start)+len(insert))
	out = append(out, doc[:start]...)
	out = append(out, insert...)
	return append(out, doc[end:]...)
}

func ensureTrailingNewline(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] == '\n' {
		return b
	}
	out := make([]byte, len(b), len(b)+1)
	copy(out, b)
	return append(out, '\n')
}
