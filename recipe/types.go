package recipe

// Operation is one step of a recipe. Implementations form a closed set of
// tagged variants; Kind returns the surface tag the variant was declared
// with ("repo", "include", "yaml", ...).
type Operation interface {
	Kind() string
}

// Recipe is an ordered sequence of operations. Order is significant:
// operations apply in declaration order.
type Recipe struct {
	Operations []Operation
}

// RepoOp declares a source repository to inherit from.
type RepoOp struct {
	// URL is the clone URL of the source repository.
	URL string `yaml:"url"`
	// Ref is the git reference to fetch: a tag or branch name (tried as a
	// tag first), a full "refs/..." name, or HEAD. A commit hash is not
	// resolved.
	Ref string `yaml:"ref"`
	// Subpath optionally restricts the source to a subdirectory of the
	// repository.
	Subpath string `yaml:"path,omitempty"`
	// With holds operations that apply to this source only, including
	// further nested repo declarations.
	With []Operation `yaml:"-"`
}

func (o *RepoOp) Kind() string { return "repo" }

// IncludeOp keeps only the entries matching at least one pattern.
type IncludeOp struct {
	Patterns []string `yaml:"patterns"`
}

func (o *IncludeOp) Kind() string { return "include" }

// ExcludeOp removes every entry matching at least one pattern.
type ExcludeOp struct {
	Patterns []string `yaml:"patterns"`
}

func (o *ExcludeOp) Kind() string { return "exclude" }

// RenameMapping pairs an anchored regex with a substitution template using
// %[N]s capture-group placeholders.
type RenameMapping struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// RenameOp renames entries by trying each mapping in order; the first
// matching mapping wins per entry.
type RenameOp struct {
	Mappings []RenameMapping `yaml:"mappings"`
}

func (o *RenameOp) Kind() string { return "rename" }

// MergeFileOp carries the surface shared by every structured-merge
// operation: a source and destination path inside the current VFS, an
// optional path expression locating the merge target inside the
// destination document, and array-merge mode flags.
type MergeFileOp struct {
	// Source is the VFS path of the document whose content is merged in.
	Source string `yaml:"source"`
	// Dest is the VFS path of the document merged into; created if absent.
	Dest string `yaml:"dest"`
	// Path is a path expression addressing the merge target inside the
	// destination document. Empty or "/" addresses the root.
	Path string `yaml:"path,omitempty"`
	// Append switches array handling from replace to append.
	Append bool `yaml:"append,omitempty"`
	// Unique suppresses appended array items already present in the
	// destination (append-unique mode). Implies Append.
	Unique bool `yaml:"unique,omitempty"`
}

// YamlOp merges a YAML source document into a YAML destination.
type YamlOp struct {
	MergeFileOp `yaml:",inline"`
}

func (o *YamlOp) Kind() string { return "yaml" }

// JsonOp merges a JSON source document into a JSON destination.
type JsonOp struct {
	MergeFileOp `yaml:",inline"`
	// Position chooses which end of the destination array appended items
	// land on: "start" or "end" (default).
	Position string `yaml:"position,omitempty"`
}

func (o *JsonOp) Kind() string { return "json" }

// TomlOp merges a TOML source document into a TOML destination.
type TomlOp struct {
	MergeFileOp `yaml:",inline"`
	// PreserveComments requests best-effort comment preservation on the
	// destination. When the serializer cannot honor it the output is
	// structurally equivalent but comment-free.
	PreserveComments bool `yaml:"preserve_comments,omitempty"`
}

func (o *TomlOp) Kind() string { return "toml" }

// IniOp merges INI section/key/value content.
type IniOp struct {
	// Source is the VFS path of the INI file whose entries are merged in.
	Source string `yaml:"source"`
	// Dest is the VFS path of the INI file merged into; created if absent.
	Dest string `yaml:"dest"`
	// Section, when set, directs every source entry into this destination
	// section. When empty, sections merge by name.
	Section string `yaml:"section,omitempty"`
	// Append makes existing destination keys win; new keys are still
	// added. Without it, source keys overwrite destination keys.
	Append bool `yaml:"append,omitempty"`
	// AllowDuplicates, together with Append, adds source keys
	// unconditionally, producing duplicate-key records where the INI
	// writer supports them.
	AllowDuplicates bool `yaml:"allow_duplicates,omitempty"`
}

func (o *IniOp) Kind() string { return "ini" }

// MarkdownOp merges source content into a section of a Markdown document.
type MarkdownOp struct {
	// Source is the VFS path of the content merged in.
	Source string `yaml:"source"`
	// Dest is the VFS path of the Markdown document merged into.
	Dest string `yaml:"dest"`
	// Section is the heading text identifying the destination section.
	Section string `yaml:"section"`
	// Level is the heading level (1-6) the section must have; 0 means the
	// default of 2.
	Level int `yaml:"level,omitempty"`
	// Append adds the source content to the section instead of replacing
	// the section body.
	Append bool `yaml:"append,omitempty"`
	// Position chooses where appended content lands within the section,
	// and where a newly created section is placed in the document:
	// "start" or "end" (default).
	Position string `yaml:"position,omitempty"`
	// CreateSection creates the section when it is missing instead of
	// failing.
	CreateSection bool `yaml:"create_section,omitempty"`
}

func (o *MarkdownOp) Kind() string { return "markdown" }

// TemplateOp is accepted by the parser but not implemented by the core.
type TemplateOp struct {
	Patterns []string `yaml:"patterns"`
}

func (o *TemplateOp) Kind() string { return "template" }

// TemplateVarsOp is accepted by the parser but not implemented by the core.
type TemplateVarsOp struct {
	Vars map[string]string `yaml:"-"`
}

func (o *TemplateVarsOp) Kind() string { return "template-vars" }

// ToolsOp is accepted by the parser but not implemented by the core.
type ToolsOp struct {
	Tools []string `yaml:"tools"`
}

func (o *ToolsOp) Kind() string { return "tools" }
