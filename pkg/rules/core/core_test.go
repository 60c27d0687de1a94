package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/config"
	"github.com/nsxbet/changelog-linter/pkg/types"
)

const upperSnake = "^(?!_)[A-Z_0-9]+(?<!_)$"

func newRunner(rules map[string][]*config.RuleConfig) *advisor.Runner {
	registry := advisor.NewRegistry()
	RegisterAll(registry)
	return advisor.NewRunner(config.New(rules), registry)
}

func only(name string, opts ...config.RuleOption) map[string][]*config.RuleConfig {
	return map[string][]*config.RuleConfig{name: {config.NewRuleConfig(opts...)}}
}

func runChange(t *testing.T, rules map[string][]*config.RuleConfig, change types.Change) []string {
	t.Helper()
	vs, err := newRunner(rules).RunChange(&types.ChangeLog{Location: "db.yaml"}, &types.ChangeSet{ID: "1"}, change)
	require.NoError(t, err)
	return messages(vs)
}

func messages(vs []*advisor.Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Message)
	}
	return out
}

func column(name string, nullable *bool) *types.Column {
	col := &types.Column{Name: name}
	if nullable != nil {
		col.Constraints = &types.Constraints{Nullable: nullable}
	}
	return col
}

func pkColumn(name, pkName string) *types.Column {
	return &types.Column{
		Name:        name,
		Constraints: &types.Constraints{Nullable: types.Bool(false), PrimaryKey: types.Bool(true), PrimaryKeyName: pkName},
	}
}

func TestRegisterAllOnce(t *testing.T) {
	registry := advisor.NewRegistry()
	RegisterAll(registry)
	assert.Len(t, registry.Rules(), len(All()))
	assert.Panics(t, func() { RegisterAll(registry) })

	_, ok := advisor.DefaultRegistry().Lookup("object-name")
	assert.True(t, ok)
}

func TestNullableConstraint(t *testing.T) {
	rules := only("create-column-nullable-constraint")

	got := runChange(t, rules, &types.CreateTable{
		TableName: "ORDERS",
		Columns: []*types.Column{
			column("ID", types.Bool(false)),
			column("NAME", nil),
			{Name: "TOTAL", Constraints: &types.Constraints{PrimaryKey: types.Bool(true)}},
			column("NOTE", types.Bool(true)),
		},
	})
	assert.Equal(t, []string{
		"Add column 'NAME' must specify nullable constraint",
		"Add column 'TOTAL' must specify nullable constraint",
	}, got)

	got = runChange(t, rules, &types.AddColumn{TableName: "ORDERS", Columns: []*types.Column{column("", nil)}})
	assert.Equal(t, []string{"Add column '<missing>' must specify nullable constraint"}, got)

	// Other changes with columns are not checked.
	assert.Empty(t, runChange(t, rules, &types.InsertData{TableName: "ORDERS", Columns: []*types.Column{column("ID", nil)}}))
}

func TestNullableConstraintExplicitFalse(t *testing.T) {
	got := runChange(t, only("create-column-nullable-constraint"), &types.AddColumn{
		Columns: []*types.Column{column("A", types.Bool(false)), column("B", types.Bool(false))},
	})
	assert.Empty(t, got)
}

func TestRemarksRequired(t *testing.T) {
	rules := only("create-table-remarks")
	assert.Equal(t, []string{"Create table must contain remark attribute"},
		runChange(t, rules, &types.CreateTable{TableName: "ORDERS"}))
	assert.Equal(t, []string{"Create table must contain remark attribute"},
		runChange(t, rules, &types.CreateTable{TableName: "ORDERS", Remarks: "   "}))
	assert.Empty(t, runChange(t, rules, &types.CreateTable{TableName: "ORDERS", Remarks: "Orders"}))
	assert.Empty(t, runChange(t, rules, &types.AddColumn{TableName: "ORDERS"}))

	custom := only("create-table-remarks", config.WithErrorMessage("Table %s needs remarks"))
	assert.Equal(t, []string{"Table ORDERS needs remarks"},
		runChange(t, custom, &types.CreateTable{TableName: "ORDERS"}))
}

func TestObjectNameMissing(t *testing.T) {
	rules := only("object-name", config.WithPattern(upperSnake))
	changes := []types.Change{
		&types.AddColumn{Columns: []*types.Column{{}}},
		&types.AddForeignKeyConstraint{BaseTableName: "BASE", ReferencedTableName: "REFERENCED"},
		&types.AddPrimaryKey{TableName: "VALUE"},
		&types.AddUniqueConstraint{},
		&types.CreateTable{Columns: []*types.Column{{}}},
		&types.MergeColumns{},
		&types.RenameColumn{},
		&types.RenameView{},
		&types.CreateView{},
		&types.CreateIndex{},
	}
	for _, change := range changes {
		t.Run(string(change.Kind()), func(t *testing.T) {
			assert.Len(t, runChange(t, rules, change), 1)
		})
	}
}

func TestObjectNameMessage(t *testing.T) {
	rules := only("object-name",
		config.WithPattern(upperSnake),
		config.WithErrorMessage("Object name '%s' must follow pattern '%s'"),
	)
	want := "Object name '&VALUE' must follow pattern '^(?!_)[A-Z_0-9]+(?<!_)$'"
	changes := []types.Change{
		&types.AddColumn{Columns: []*types.Column{{Name: "&VALUE"}}},
		&types.AddForeignKeyConstraint{ConstraintName: "&VALUE"},
		&types.AddPrimaryKey{ConstraintName: "&VALUE", TableName: "VALUE"},
		&types.AddUniqueConstraint{ConstraintName: "&VALUE"},
		&types.CreateTable{Columns: []*types.Column{{Name: "&VALUE"}}},
		&types.MergeColumns{FinalColumnName: "&VALUE"},
		&types.RenameColumn{NewColumnName: "&VALUE"},
		&types.RenameView{NewViewName: "&VALUE"},
		&types.CreateView{ViewName: "&VALUE"},
		&types.CreateIndex{IndexName: "&VALUE"},
	}
	for _, change := range changes {
		t.Run(string(change.Kind()), func(t *testing.T) {
			assert.Equal(t, []string{want}, runChange(t, rules, change))
		})
	}
}

func TestObjectNameJoinsFailingNames(t *testing.T) {
	rules := only("object-name",
		config.WithPattern(upperSnake),
		config.WithErrorMessage("Object name '%s' must follow pattern '%s'"),
	)
	got := runChange(t, rules, &types.AddColumn{Columns: []*types.Column{
		{Name: "&VALUE"}, {Name: "GOOD"}, {Name: "&VALUE2"}, {Name: "&VALUE"},
	}})
	assert.Equal(t, []string{"Object name '&VALUE,&VALUE2' must follow pattern '^(?!_)[A-Z_0-9]+(?<!_)$'"}, got)
}

func TestObjectNameDefaultMessageAndPass(t *testing.T) {
	rules := only("object-name", config.WithPattern(upperSnake))
	assert.Empty(t, runChange(t, rules, &types.RenameColumn{NewColumnName: "VALID_NAME"}))
	assert.Equal(t,
		[]string{"Object name '_BAD' must follow pattern '^(?!_)[A-Z_0-9]+(?<!_)$'"},
		runChange(t, rules, &types.RenameColumn{NewColumnName: "_BAD"}))

	// Without a pattern only missing names fail.
	assert.Empty(t, runChange(t, only("object-name"), &types.CreateView{ViewName: "anything"}))
	assert.Len(t, runChange(t, only("object-name"), &types.CreateView{}), 1)

	// Unsupported changes are skipped.
	assert.Empty(t, runChange(t, rules, &types.OpaqueChange{Type: "sql"}))
}

func TestPrimaryKeyNameAddPrimaryKey(t *testing.T) {
	add := func(name string) types.Change {
		return &types.AddPrimaryKey{TableName: "TABLE", ConstraintName: name}
	}

	assert.Equal(t,
		[]string{"Primary key name <missing> is missing or does not follow pattern ''"},
		runChange(t, only("primary-key-name"), add("")))

	basic := only("primary-key-name", config.WithPattern("^VALID_PK$"))
	assert.Equal(t,
		[]string{"Primary key name INVALID_PK is missing or does not follow pattern '^VALID_PK$'"},
		runChange(t, basic, add("INVALID_PK")))
	assert.Empty(t, runChange(t, basic, add("VALID_PK")))

	dynamic := only("primary-key-name", config.WithPattern("^{{value}}_PK$"), config.WithDynamicValue("tableName"))
	assert.Equal(t,
		[]string{"Primary key name INVALID_PK is missing or does not follow pattern '^TABLE_PK$'"},
		runChange(t, dynamic, add("INVALID_PK")))
	assert.Empty(t, runChange(t, dynamic, add("TABLE_PK")))

	custom := only("primary-key-name",
		config.WithPattern("^VALID_PK$"),
		config.WithErrorMessage("Primary key constraints %s must follow pattern '%s'"),
	)
	assert.Equal(t,
		[]string{"Primary key constraints INVALID_PK must follow pattern '^VALID_PK$'"},
		runChange(t, custom, add("INVALID_PK")))
}

func TestPrimaryKeyNameCreateTable(t *testing.T) {
	create := func(cols ...*types.Column) types.Change {
		return &types.CreateTable{TableName: "table", Columns: cols}
	}

	assert.Len(t, runChange(t, only("primary-key-name"), create(pkColumn("ID", ""))), 1)

	dynamic := only("primary-key-name", config.WithPattern("^{{value}}_PK$"), config.WithDynamicValue("tableName"))
	assert.Len(t, runChange(t, dynamic, create(pkColumn("ID", "INVALID_PK"))), 1)
	assert.Empty(t, runChange(t, dynamic, create(pkColumn("ID", "TABLE_PK"))))

	// Tables without a primary key have nothing to check.
	assert.Empty(t, runChange(t, dynamic, create(column("ID", types.Bool(false)))))

	custom := only("primary-key-name",
		config.WithPattern("^VALID_PK$"),
		config.WithErrorMessage("Primary key constraints %s must follow pattern '%s'"),
	)
	assert.Equal(t,
		[]string{"Primary key constraints INVALID_PK must follow pattern '^VALID_PK$'"},
		runChange(t, custom, create(pkColumn("A", "INVALID_PK"), pkColumn("B", "INVALID_PK"))))
}

func TestOtherNamingRules(t *testing.T) {
	tests := []struct {
		rule   string
		bad    types.Change
		good   types.Change
		expect string
	}{
		{
			rule:   "table-name",
			bad:    &types.RenameTable{OldTableName: "A", NewTableName: "orders"},
			good:   &types.CreateTable{TableName: "ORDERS"},
			expect: "Table name 'orders' must follow pattern '^[A-Z_]+$'",
		},
		{
			rule:   "foreign-key-name",
			bad:    &types.AddForeignKeyConstraint{ConstraintName: "fk"},
			good:   &types.AddForeignKeyConstraint{ConstraintName: "FK_A"},
			expect: "Foreign key name 'fk' is missing or does not follow pattern '^[A-Z_]+$'",
		},
		{
			rule:   "unique-constraint-name",
			bad:    &types.AddUniqueConstraint{},
			good:   &types.AddUniqueConstraint{ConstraintName: "UQ_A"},
			expect: "Unique constraint name '<missing>' is missing or does not follow pattern '^[A-Z_]+$'",
		},
		{
			rule:   "create-index-name",
			bad:    &types.CreateIndex{IndexName: "idx"},
			good:   &types.CreateIndex{IndexName: "IDX_A"},
			expect: "Index name 'idx' is missing or does not follow pattern '^[A-Z_]+$'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			rules := only(tt.rule, config.WithPattern("^[A-Z_]+$"))
			assert.Equal(t, []string{tt.expect}, runChange(t, rules, tt.bad))
			assert.Empty(t, runChange(t, rules, tt.good))
		})
	}
}

func TestMultipleConfigsRunInOrder(t *testing.T) {
	rules := map[string][]*config.RuleConfig{
		"table-name": {
			config.NewRuleConfig(
				config.WithPattern(upperSnake),
				config.WithErrorMessage("Object name '%s' name must be uppercase and use '_' separation"),
			),
			config.NewRuleConfig(
				config.WithPattern("^POWER.*$"),
				config.WithErrorMessage("Object name '%s' name must begin with 'POWER'"),
			),
			config.NewRuleConfig(config.WithEnabled(false), config.WithPattern("^NEVER$")),
		},
	}
	assert.Equal(t,
		[]string{"Object name 'nope' name must be uppercase and use '_' separation", "Object name 'nope' name must begin with 'POWER'"},
		runChange(t, rules, &types.CreateTable{TableName: "nope"}))
	assert.Equal(t,
		[]string{"Object name 'NOPE' name must begin with 'POWER'"},
		runChange(t, rules, &types.CreateTable{TableName: "NOPE"}))
	assert.Empty(t, runChange(t, rules, &types.CreateTable{TableName: "POWER_TABLE"}))
}

func TestObjectNameLength(t *testing.T) {
	rules := only("object-name-length", config.WithMaxLength(5))
	assert.Equal(t,
		[]string{"Object name 'TOO_LONG,LONGER' name must be less than 5 characters"},
		runChange(t, rules, &types.AddColumn{Columns: []*types.Column{{Name: "TOO_LONG"}, {Name: "OK"}, {Name: "LONGER"}}}))
	assert.Empty(t, runChange(t, rules, &types.CreateIndex{IndexName: "IDX"}))
	assert.Empty(t, runChange(t, only("object-name-length"), &types.CreateIndex{IndexName: "A_VERY_LONG_NAME"}))
}

func TestObjectNameLengthCountsCharacters(t *testing.T) {
	rules := only("object-name-length", config.WithMaxLength(5))
	assert.Empty(t, runChange(t, rules, &types.CreateIndex{IndexName: "ÇÃOÉÜ"}))
	assert.Equal(t,
		[]string{"Object name 'ÇÃOÉÜS' name must be less than 5 characters"},
		runChange(t, rules, &types.CreateIndex{IndexName: "ÇÃOÉÜS"}))
}

func TestNoPreconditions(t *testing.T) {
	runner := newRunner(only("no-preconditions"))
	changeLog := &types.ChangeLog{Location: "db.yaml"}

	vs, err := runner.RunChangeSet(changeLog, &types.ChangeSet{ID: "1"})
	require.NoError(t, err)
	assert.Empty(t, vs)

	vs, err = runner.RunChangeSet(changeLog, &types.ChangeSet{ID: "1", Preconditions: []*types.Precondition{{Type: "tableExists"}}})
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "Preconditions are not allowed in this project", vs[0].Message)
	assert.Equal(t, "1", vs[0].ChangeSet)

	vs, err = runner.RunChangeLog(&types.ChangeLog{Location: "db.yaml", Preconditions: []*types.Precondition{{Type: "dbms"}}})
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "db.yaml", vs[0].ChangeLog)
}

type visitedSet map[string]bool

func (v visitedSet) Visit(location string) bool {
	seen := v[location]
	v[location] = true
	return seen
}

func TestNoDuplicateIncludes(t *testing.T) {
	visited := visitedSet{}
	runner := newRunner(only("no-duplicate-includes"))

	require.NoError(t, runner.RunInclude("a.xml", visited))
	err := runner.RunInclude("a.xml", visited)
	require.Error(t, err)

	var dupErr *advisor.DuplicateIncludeError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "a.xml", dupErr.Location)
	assert.Equal(t, "Changelog file 'a.xml' was included more than once", err.Error())
	assert.Equal(t, advisor.DuplicateInclude, advisor.CodeOf(err))
}

func TestNoDuplicateIncludesDisabled(t *testing.T) {
	visited := visitedSet{}
	runner := newRunner(only("no-duplicate-includes", config.WithEnabled(false)))

	require.NoError(t, runner.RunInclude("a.xml", visited))
	require.NoError(t, runner.RunInclude("a.xml", visited))
	assert.Empty(t, visited)
}

func TestNoDuplicateIncludesListUsesFirstConfig(t *testing.T) {
	visited := visitedSet{}
	runner := newRunner(map[string][]*config.RuleConfig{
		"no-duplicate-includes": {
			config.NewRuleConfig(config.WithErrorMessage("first %s")),
			config.NewRuleConfig(config.WithErrorMessage("second %s")),
		},
	})
	require.NoError(t, runner.RunInclude("a.xml", visited))
	assert.EqualError(t, runner.RunInclude("a.xml", visited), "first a.xml")
}

func TestSchemaName(t *testing.T) {
	runner := newRunner(only("schema-name", config.WithPattern(`^\$\{[A-Za-z0-9_]+\}$`)))
	changeLog := &types.ChangeLog{Location: "db.yaml"}

	vs, err := runner.RunValue(changeLog, "${schema}")
	require.NoError(t, err)
	assert.Empty(t, vs)

	vs, err = runner.RunValue(changeLog, "PUBLIC")
	require.NoError(t, err)
	assert.Equal(t, []string{"Must use schema name token, not PUBLIC"}, messages(vs))

	custom := newRunner(only("schema-name", config.WithPattern("^APP_[A-Z]+$")))
	vs, err = custom.RunValue(changeLog, "APP_CORE")
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestSchemaNameWithoutPatternDoesNotApply(t *testing.T) {
	runner := newRunner(only("schema-name"))

	vs, err := runner.RunValue(&types.ChangeLog{Location: "db.yaml"}, "PUBLIC")
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestChangeSetRules(t *testing.T) {
	runner := newRunner(map[string][]*config.RuleConfig{
		"has-comment": {config.NewRuleConfig()},
		"has-context": {config.NewRuleConfig(config.WithPattern("^(dev|prod)$"))},
	})
	changeLog := &types.ChangeLog{Location: "db.yaml"}

	vs, err := runner.RunChangeSet(changeLog, &types.ChangeSet{ID: "7"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Changeset '7' must have a comment",
		"Changeset '7' must have a context",
	}, messages(vs))

	vs, err = runner.RunChangeSet(changeLog, &types.ChangeSet{ID: "7", Comment: "c", Context: "test"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Changeset '7' context 'test' must follow pattern '^(dev|prod)$'"}, messages(vs))

	vs, err = runner.RunChangeSet(changeLog, &types.ChangeSet{ID: "7", Comment: "c", Context: "prod"})
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestUnknownDynamicValueIsConfigError(t *testing.T) {
	runner := newRunner(only("object-name", config.WithPattern("^{{value}}_X$"), config.WithDynamicValue("viewName")))
	_, err := runner.RunChange(nil, nil, &types.AddUniqueConstraint{ConstraintName: "A"})
	require.Error(t, err)

	var cfgErr *advisor.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "object-name", cfgErr.Rule)
	assert.Equal(t, advisor.Configuration, advisor.CodeOf(err))
}
