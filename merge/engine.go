package merge

import (
	"github.com/strataforge/strata/pathexpr"
	"github.com/strataforge/strata/strataerrors"
	"github.com/strataforge/strata/vfs"
)

// codec pairs the decode/encode functions of one document format.
type codec struct {
	name   string
	decode func(data []byte) (any, error)
	encode func(doc any) ([]byte, error)
}

// applyStructured is the shared YAML/JSON/TOML flow: load both documents
// from the VFS, locate the merge target in the destination via the path
// expression, merge the source document into it, and write the
// re-serialized destination back.
func applyStructured(fsys *vfs.VFS, source, dest, pathText string, mode ArrayMode, pos Position, c codec) error {
	srcFile, ok := fsys.Get(source)
	if !ok {
		return &strataerrors.NotFoundError{Kind: "merge source", Target: source}
	}
	srcDoc, err := c.decode(srcFile.Content)
	if err != nil {
		return &strataerrors.ParseError{
			Path:    source,
			Message: "invalid " + c.name + " document",
			Cause:   err,
		}
	}

	var dstDoc any
	destFile, destExists := fsys.Get(dest)
	if destExists && len(destFile.Content) > 0 {
		dstDoc, err = c.decode(destFile.Content)
		if err != nil {
			return &strataerrors.ParseError{
				Path:    dest,
				Message: "invalid " + c.name + " document",
				Cause:   err,
			}
		}
	}

	path, err := pathexpr.Parse(pathText)
	if err != nil {
		return err
	}

	if len(path.Segments) == 0 {
		dstDoc = mergeValue(dstDoc, srcDoc, mode, pos)
	} else {
		existing, _ := pathexpr.Get(dstDoc, path)
		merged := mergeValue(existing, srcDoc, mode, pos)
		dstDoc, err = pathexpr.Set(dstDoc, path, merged)
		if err != nil {
			return err
		}
	}

	out, err := c.encode(dstDoc)
	if err != nil {
		return &strataerrors.ParseError{
			Path:    dest,
			Message: "cannot serialize merged " + c.name + " document",
			Cause:   err,
		}
	}

	fsys.Add(dest, vfs.File{Content: out, Mode: destFile.Mode, ModTime: destFile.ModTime})
	return nil
}
