package types

// ChangeKind identifies a change variant. Values match the change element names
// used in changelog documents.
type ChangeKind string

const (
	ChangeKindCreateTable             ChangeKind = "createTable"
	ChangeKindAddColumn               ChangeKind = "addColumn"
	ChangeKindAddForeignKeyConstraint ChangeKind = "addForeignKeyConstraint"
	ChangeKindAddPrimaryKey           ChangeKind = "addPrimaryKey"
	ChangeKindAddUniqueConstraint     ChangeKind = "addUniqueConstraint"
	ChangeKindMergeColumns            ChangeKind = "mergeColumns"
	ChangeKindRenameColumn            ChangeKind = "renameColumn"
	ChangeKindRenameTable             ChangeKind = "renameTable"
	ChangeKindRenameView              ChangeKind = "renameView"
	ChangeKindCreateView              ChangeKind = "createView"
	ChangeKindCreateIndex             ChangeKind = "createIndex"
	ChangeKindInsertData              ChangeKind = "insert"
)

// Change is a single migration operation. The set of implementations is closed:
// rules switch on the concrete type, and anything the parser does not model is
// an *OpaqueChange.
type Change interface {
	Kind() ChangeKind

	// Attribute returns the named attribute of the change. ok is false when the
	// change has no attribute of that name, which is different from an
	// attribute that exists but is empty.
	Attribute(name string) (value string, ok bool)

	change()
}

// ColumnsChange is implemented by changes that carry column descriptors.
type ColumnsChange interface {
	Change
	ChangeColumns() []*Column
}

// CreateTable creates a table.
type CreateTable struct {
	SchemaName string
	TableName  string
	Remarks    string
	Columns    []*Column
}

func (*CreateTable) Kind() ChangeKind { return ChangeKindCreateTable }
func (*CreateTable) change()          {}

func (c *CreateTable) ChangeColumns() []*Column { return c.Columns }

func (c *CreateTable) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "tableName":
		return c.TableName, true
	case "remarks":
		return c.Remarks, true
	}
	return "", false
}

// AddColumn adds columns to an existing table.
type AddColumn struct {
	SchemaName string
	TableName  string
	Columns    []*Column
}

func (*AddColumn) Kind() ChangeKind { return ChangeKindAddColumn }
func (*AddColumn) change()          {}

func (c *AddColumn) ChangeColumns() []*Column { return c.Columns }

func (c *AddColumn) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "tableName":
		return c.TableName, true
	}
	return "", false
}

// AddForeignKeyConstraint adds a foreign key.
type AddForeignKeyConstraint struct {
	ConstraintName        string
	BaseTableSchemaName   string
	BaseTableName         string
	BaseColumnNames       string
	ReferencedTableName   string
	ReferencedColumnNames string
}

func (*AddForeignKeyConstraint) Kind() ChangeKind { return ChangeKindAddForeignKeyConstraint }
func (*AddForeignKeyConstraint) change()          {}

func (c *AddForeignKeyConstraint) Attribute(name string) (string, bool) {
	switch name {
	case "constraintName":
		return c.ConstraintName, true
	case "baseTableSchemaName":
		return c.BaseTableSchemaName, true
	case "baseTableName":
		return c.BaseTableName, true
	case "baseColumnNames":
		return c.BaseColumnNames, true
	case "referencedTableName":
		return c.ReferencedTableName, true
	case "referencedColumnNames":
		return c.ReferencedColumnNames, true
	}
	return "", false
}

// AddPrimaryKey adds a primary key to an existing table.
type AddPrimaryKey struct {
	SchemaName     string
	TableName      string
	ColumnNames    string
	ConstraintName string
}

func (*AddPrimaryKey) Kind() ChangeKind { return ChangeKindAddPrimaryKey }
func (*AddPrimaryKey) change()          {}

func (c *AddPrimaryKey) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "tableName":
		return c.TableName, true
	case "columnNames":
		return c.ColumnNames, true
	case "constraintName":
		return c.ConstraintName, true
	}
	return "", false
}

// AddUniqueConstraint adds a unique constraint to an existing table.
type AddUniqueConstraint struct {
	SchemaName     string
	TableName      string
	ColumnNames    string
	ConstraintName string
}

func (*AddUniqueConstraint) Kind() ChangeKind { return ChangeKindAddUniqueConstraint }
func (*AddUniqueConstraint) change()          {}

func (c *AddUniqueConstraint) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "tableName":
		return c.TableName, true
	case "columnNames":
		return c.ColumnNames, true
	case "constraintName":
		return c.ConstraintName, true
	}
	return "", false
}

// MergeColumns merges two columns into one.
type MergeColumns struct {
	SchemaName      string
	TableName       string
	Column1Name     string
	Column2Name     string
	FinalColumnName string
	FinalColumnType string
}

func (*MergeColumns) Kind() ChangeKind { return ChangeKindMergeColumns }
func (*MergeColumns) change()          {}

func (c *MergeColumns) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "tableName":
		return c.TableName, true
	case "column1Name":
		return c.Column1Name, true
	case "column2Name":
		return c.Column2Name, true
	case "finalColumnName":
		return c.FinalColumnName, true
	case "finalColumnType":
		return c.FinalColumnType, true
	}
	return "", false
}

// RenameColumn renames a column.
type RenameColumn struct {
	SchemaName    string
	TableName     string
	OldColumnName string
	NewColumnName string
}

func (*RenameColumn) Kind() ChangeKind { return ChangeKindRenameColumn }
func (*RenameColumn) change()          {}

func (c *RenameColumn) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "tableName":
		return c.TableName, true
	case "oldColumnName":
		return c.OldColumnName, true
	case "newColumnName":
		return c.NewColumnName, true
	}
	return "", false
}

// RenameTable renames a table.
type RenameTable struct {
	SchemaName   string
	OldTableName string
	NewTableName string
}

func (*RenameTable) Kind() ChangeKind { return ChangeKindRenameTable }
func (*RenameTable) change()          {}

func (c *RenameTable) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "oldTableName":
		return c.OldTableName, true
	case "newTableName":
		return c.NewTableName, true
	}
	return "", false
}

// RenameView renames a view.
type RenameView struct {
	SchemaName  string
	OldViewName string
	NewViewName string
}

func (*RenameView) Kind() ChangeKind { return ChangeKindRenameView }
func (*RenameView) change()          {}

func (c *RenameView) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "oldViewName":
		return c.OldViewName, true
	case "newViewName":
		return c.NewViewName, true
	}
	return "", false
}

// CreateView creates a view.
type CreateView struct {
	SchemaName  string
	ViewName    string
	SelectQuery string
	Remarks     string
}

func (*CreateView) Kind() ChangeKind { return ChangeKindCreateView }
func (*CreateView) change()          {}

func (c *CreateView) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "viewName":
		return c.ViewName, true
	case "remarks":
		return c.Remarks, true
	}
	return "", false
}

// CreateIndex creates an index.
type CreateIndex struct {
	SchemaName string
	TableName  string
	IndexName  string
	Unique     *bool
	Columns    []*Column
}

func (*CreateIndex) Kind() ChangeKind { return ChangeKindCreateIndex }
func (*CreateIndex) change()          {}

func (c *CreateIndex) ChangeColumns() []*Column { return c.Columns }

func (c *CreateIndex) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "tableName":
		return c.TableName, true
	case "indexName":
		return c.IndexName, true
	}
	return "", false
}

// InsertData inserts a row.
type InsertData struct {
	SchemaName string
	TableName  string
	Columns    []*Column
}

func (*InsertData) Kind() ChangeKind { return ChangeKindInsertData }
func (*InsertData) change()          {}

func (c *InsertData) ChangeColumns() []*Column { return c.Columns }

func (c *InsertData) Attribute(name string) (string, bool) {
	switch name {
	case "schemaName":
		return c.SchemaName, true
	case "tableName":
		return c.TableName, true
	}
	return "", false
}

// OpaqueChange is any change the model does not describe in detail.
type OpaqueChange struct {
	Type       string
	Attributes map[string]string
}

func (c *OpaqueChange) Kind() ChangeKind { return ChangeKind(c.Type) }
func (*OpaqueChange) change()            {}

func (c *OpaqueChange) Attribute(name string) (string, bool) {
	v, ok := c.Attributes[name]
	return v, ok
}
