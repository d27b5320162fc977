package merge

import (
	"bytes"

	"gopkg.in/ini.v1"

	"github.com/strataforge/strata/recipe"
	"github.com/strataforge/strata/strataerrors"
	"github.com/strataforge/strata/vfs"
)

// ApplyINI merges INI content from op.Source into op.Dest.
//
// Sections merge by name, root-level entries belonging to the anonymous
// section; op.Section redirects every source entry into that one
// destination section instead. Without append, source keys overwrite
// destination keys. With append, existing destination keys win and new
// keys are added; allow_duplicates additionally records source values for
// existing keys as duplicate key lines. Round-trip stability for
// duplicate-key files follows the underlying INI library's shadow-value
// behavior.
func ApplyINI(fsys *vfs.VFS, op *recipe.IniOp) error {
	loadOpts := ini.LoadOptions{AllowShadows: true}

	srcFile, ok := fsys.Get(op.Source)
	if !ok {
		return &strataerrors.NotFoundError{Kind: "merge source", Target: op.Source}
	}
	src, err := ini.LoadSources(loadOpts, srcFile.Content)
	if err != nil {
		return &strataerrors.ParseError{Path: op.Source, Message: "invalid ini document", Cause: err}
	}

	dest := ini.Empty(loadOpts)
	destFile, destExists := fsys.Get(op.Dest)
	if destExists && len(destFile.Content) > 0 {
		dest, err = ini.LoadSources(loadOpts, destFile.Content)
		if err != nil {
			return &strataerrors.ParseError{Path: op.Dest, Message: "invalid ini document", Cause: err}
		}
	}

	for _, sec := range src.Sections() {
		if len(sec.Keys()) == 0 {
			continue
		}
		targetName := sec.Name()
		if op.Section != "" {
			targetName = op.Section
		}
		destSec := dest.Section(targetName)

		for _, key := range sec.Keys() {
			if err := mergeINIKey(destSec, key.Name(), key.ValueWithShadows(), op); err != nil {
				return err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := dest.WriteTo(&buf); err != nil {
		return &strataerrors.ParseError{Path: op.Dest, Message: "cannot serialize merged ini document", Cause: err}
	}
	fsys.Add(op.Dest, vfs.File{Content: buf.Bytes(), Mode: destFile.Mode, ModTime: destFile.ModTime})
	return nil
}

func mergeINIKey(destSec *ini.Section, name string, values []string, op *recipe.IniOp) error {
	exists := destSec.HasKey(name)

	switch {
	case !op.Append:
		// Overwrite mode: the source value replaces whatever the
		// destination had. Extra source duplicates become shadows.
		key := destSec.Key(name)
		key.SetValue(values[0])
		return addShadows(key, values[1:])

	case exists && !op.AllowDuplicates:
		// Append without duplicates: destination wins, skip entirely.
		return nil

	case exists:
		// Append with duplicates: record every source value alongside the
		// existing one.
		return addShadows(destSec.Key(name), values)

	default:
		key, err := destSec.NewKey(name, values[0])
		if err != nil {
			return &strataerrors.ParseError{Path: op.Dest, Message: "cannot add ini key " + name, Cause: err}
		}
		return addShadows(key, values[1:])
	}
}

func addShadows(key *ini.Key, values []string) error {
	for _, v := range values {
		if err := key.AddShadow(v); err != nil {
			return &strataerrors.ParseError{Message: "cannot add duplicate ini value for " + key.Name(), Cause: err}
		}
	}
	return nil
}
