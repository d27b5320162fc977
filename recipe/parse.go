package recipe

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/strataforge/strata/strataerrors"
)

// Parse decodes the YAML recipe surface into a Recipe.
//
// The surface is a sequence of single-key mappings, each key naming the
// operation kind. An empty document parses to an empty Recipe. Parse
// performs surface decoding only; call Validate for the pattern and
// precondition checks applicable at parse time.
func Parse(data []byte) (*Recipe, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &strataerrors.ParseError{Message: "malformed recipe document", Cause: err}
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return &Recipe{}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.SequenceNode {
		return nil, &strataerrors.ParseError{
			Line:    doc.Line,
			Column:  doc.Column,
			Message: "recipe must be a sequence of operations",
		}
	}

	ops, err := decodeOperations(doc.Content)
	if err != nil {
		return nil, err
	}
	return &Recipe{Operations: ops}, nil
}

func decodeOperations(items []*yaml.Node) ([]Operation, error) {
	var ops []Operation
	for _, item := range items {
		op, err := decodeOperation(item)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func decodeOperation(item *yaml.Node) (Operation, error) {
	if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
		return nil, &strataerrors.ParseError{
			Line:    item.Line,
			Column:  item.Column,
			Message: "operation must be a mapping with exactly one key",
		}
	}

	kindNode, body := item.Content[0], item.Content[1]
	kind := kindNode.Value

	fail := func(err error) (Operation, error) {
		return nil, &strataerrors.ParseError{
			Line:    body.Line,
			Column:  body.Column,
			Message: fmt.Sprintf("invalid %s operation", kind),
			Cause:   err,
		}
	}

	switch kind {
	case "repo":
		return decodeRepo(body)
	case "include":
		op := &IncludeOp{}
		if err := body.Decode(op); err != nil {
			return fail(err)
		}
		return op, nil
	case "exclude":
		op := &ExcludeOp{}
		if err := body.Decode(op); err != nil {
			return fail(err)
		}
		return op, nil
	case "rename":
		op := &RenameOp{}
		if err := body.Decode(op); err != nil {
			return fail(err)
		}
		return op, nil
	case "yaml":
		op := &YamlOp{}
		if err := body.Decode(op); err != nil {
			return fail(err)
		}
		return op, nil
	case "json":
		op := &JsonOp{}
		if err := body.Decode(op); err != nil {
			return fail(err)
		}
		return op, nil
	case "toml":
		op := &TomlOp{}
		if err := body.Decode(op); err != nil {
			return fail(err)
		}
		return op, nil
	case "ini":
		op := &IniOp{}
		if err := body.Decode(op); err != nil {
			return fail(err)
		}
		return op, nil
	case "markdown":
		op := &MarkdownOp{}
		if err := body.Decode(op); err != nil {
			return fail(err)
		}
		return op, nil
	case "template":
		op := &TemplateOp{}
		if err := body.Decode(op); err != nil {
			return fail(err)
		}
		return op, nil
	case "template-vars":
		op := &TemplateVarsOp{}
		if err := body.Decode(&op.Vars); err != nil {
			return fail(err)
		}
		return op, nil
	case "tools":
		op := &ToolsOp{}
		if err := body.Decode(op); err != nil {
			// Accept both the long form ({tools: [...]}) and a bare list.
			var bare []string
			if listErr := body.Decode(&bare); listErr != nil {
				return fail(err)
			}
			op.Tools = bare
		}
		return op, nil
	default:
		return nil, &strataerrors.ParseError{
			Line:    kindNode.Line,
			Column:  kindNode.Column,
			Message: fmt.Sprintf("unknown operation kind %q", kind),
		}
	}
}

// repoSurface mirrors RepoOp's scalar fields plus the raw "with" nodes,
// which carry nested operations and need recursive decoding.
type repoSurface struct {
	URL     string      `yaml:"url"`
	Ref     string      `yaml:"ref"`
	Subpath string      `yaml:"path"`
	With    []yaml.Node `yaml:"with"`
}

func decodeRepo(body *yaml.Node) (Operation, error) {
	var surface repoSurface
	if err := body.Decode(&surface); err != nil {
		return nil, &strataerrors.ParseError{
			Line:    body.Line,
			Column:  body.Column,
			Message: "invalid repo operation",
			Cause:   err,
		}
	}
	if surface.URL == "" {
		return nil, &strataerrors.ParseError{
			Line:    body.Line,
			Column:  body.Column,
			Message: "repo operation requires a url",
		}
	}
	if surface.Ref == "" {
		return nil, &strataerrors.ParseError{
			Line:    body.Line,
			Column:  body.Column,
			Message: "repo operation requires a ref",
		}
	}

	items := make([]*yaml.Node, len(surface.With))
	for i := range surface.With {
		items[i] = &surface.With[i]
	}
	nested, err := decodeOperations(items)
	if err != nil {
		return nil, err
	}
	return &RepoOp{
		URL:     surface.URL,
		Ref:     surface.Ref,
		Subpath: surface.Subpath,
		With:    nested,
	}, nil
}
