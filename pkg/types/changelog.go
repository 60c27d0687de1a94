package types

// ChangeLog is a parsed changelog document.
type ChangeLog struct {
	// Location is the physical location the document was parsed from.
	// It is the key used for duplicate-include detection.
	Location string `yaml:"location" json:"location"`

	// Preconditions declared at document level.
	Preconditions []*Precondition `yaml:"preconditions,omitempty" json:"preconditions,omitempty"`

	ChangeSets []*ChangeSet `yaml:"changeSets,omitempty" json:"changeSets,omitempty"`

	// Includes are the changelogs included by this document, in document order.
	Includes []*Include `yaml:"includes,omitempty" json:"includes,omitempty"`

	// SchemaNames holds every schemaName value found anywhere in the document tree,
	// in document order.
	SchemaNames []string `yaml:"schemaNames,omitempty" json:"schemaNames,omitempty"`
}

// Include references another changelog.
type Include struct {
	// Location of the included changelog, already resolved by the parser.
	Location string `yaml:"location" json:"location"`

	// ChangeLog is set when the parser has already materialized the included
	// document. When nil the linter asks its resolver for it.
	ChangeLog *ChangeLog `yaml:"-" json:"-"`
}

// ChangeSet is an ordered unit of changes inside a changelog.
type ChangeSet struct {
	ID      string `yaml:"id" json:"id"`
	Author  string `yaml:"author" json:"author"`
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`
	Context string `yaml:"context,omitempty" json:"context,omitempty"`

	// Preconditions attached to this changeset. They are distinct from the
	// changelog level preconditions.
	Preconditions []*Precondition `yaml:"preconditions,omitempty" json:"preconditions,omitempty"`

	Changes []Change `yaml:"-" json:"-"`
}

// Precondition is an opaque precondition node. Only its presence matters to rules.
type Precondition struct {
	Type       string            `yaml:"type" json:"type"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Nested     []*Precondition   `yaml:"nested,omitempty" json:"nested,omitempty"`
}

// Column describes a column inside a table-bearing change.
type Column struct {
	// Name is empty when the column has no name.
	Name        string       `yaml:"name,omitempty" json:"name,omitempty"`
	Type        string       `yaml:"type,omitempty" json:"type,omitempty"`
	Remarks     string       `yaml:"remarks,omitempty" json:"remarks,omitempty"`
	Constraints *Constraints `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// Constraints is the constraints descriptor of a column. A nil flag means the
// attribute was not specified, which is different from an explicit false.
type Constraints struct {
	Nullable       *bool  `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	PrimaryKey     *bool  `yaml:"primaryKey,omitempty" json:"primaryKey,omitempty"`
	PrimaryKeyName string `yaml:"primaryKeyName,omitempty" json:"primaryKeyName,omitempty"`
	Unique         *bool  `yaml:"unique,omitempty" json:"unique,omitempty"`
}

// IsPrimaryKey reports whether the constraints mark the column as part of a primary key.
func (c *Constraints) IsPrimaryKey() bool {
	if c == nil {
		return false
	}
	return (c.PrimaryKey != nil && *c.PrimaryKey) || c.PrimaryKeyName != ""
}

// Bool returns a pointer to v. It is a convenience for building constraints.
func Bool(v bool) *bool {
	return &v
}
