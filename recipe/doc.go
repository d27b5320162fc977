// Package recipe defines the declarative document that drives the
// composition pipeline: an ordered list of tagged operations describing
// which source repositories to inherit from and how to transform and merge
// the files they contribute.
//
// A recipe is authored as a YAML sequence of single-key mappings, each key
// naming the operation kind:
//
//	- repo:
//	    url: https://github.com/acme/base-config
//	    ref: v1.2.0
//	- include:
//	    patterns:
//	      - "**/*"
//	- exclude:
//	    patterns:
//	      - "**/*.md"
//	- yaml:
//	    source: fragments/ci.yml
//	    dest: .github/workflows/ci.yml
//	    path: jobs.test.steps
//	    append: true
//
// Parse decodes that surface into a Recipe. BuildTree turns a Recipe into
// the Repository Tree the pipeline's first stage traverses, rejecting any
// recipe whose nested repo declarations would revisit a (url, ref) pair
// already on the path from the root.
package recipe
