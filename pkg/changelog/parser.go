// Package changelog reads YAML and JSON changelog documents into the model
// the linter walks.
//
// The document layout is the usual one:
//
//	databaseChangeLog:
//	  - include:
//	      file: tables/orders.yaml
//	      relativeToChangelogFile: true
//	  - changeSet:
//	      id: 1
//	      author: dev
//	      changes:
//	        - createTable:
//	            tableName: ORDERS
//	            columns:
//	              - column:
//	                  name: ID
//	                  constraints:
//	                    nullable: false
//
// Changes the model does not describe are kept as opaque changes.
package changelog

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/changelog-linter/pkg/types"
)

const rootKey = "databaseChangeLog"

// ParseError reports a malformed document.
type ParseError struct {
	Location string
	Line     int
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Location, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Location, e.Msg)
}

// Parse decodes a changelog document read from location. Include paths are
// resolved against location when relativeToChangelogFile is set.
func Parse(location string, data []byte) (*types.ChangeLog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", location)
	}
	p := &parser{location: location}
	return p.document(&doc)
}

type parser struct {
	location string
}

func (p *parser) errorf(n *yaml.Node, format string, args ...interface{}) error {
	line := 0
	if n != nil {
		line = n.Line
	}
	return &ParseError{Location: p.location, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) document(doc *yaml.Node) (*types.ChangeLog, error) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, p.errorf(nil, "empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, p.errorf(root, "expected a mapping with %q", rootKey)
	}
	entries := lookup(root, rootKey)
	if entries == nil {
		return nil, p.errorf(root, "missing %q", rootKey)
	}
	if entries.Kind != yaml.SequenceNode {
		return nil, p.errorf(entries, "%q must be a list", rootKey)
	}

	cl := &types.ChangeLog{
		Location:    p.location,
		SchemaNames: schemaNames(entries, nil),
	}
	for _, entry := range entries.Content {
		kind, body, err := p.single(entry)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "preConditions":
			cl.Preconditions = p.preconditions(body)
		case "include":
			inc, err := p.include(body)
			if err != nil {
				return nil, err
			}
			cl.Includes = append(cl.Includes, inc)
		case "changeSet":
			cs, err := p.changeSet(body)
			if err != nil {
				return nil, err
			}
			cl.ChangeSets = append(cl.ChangeSets, cs)
		default:
			slog.Debug("Skipping changelog entry", "location", p.location, "line", entry.Line, "entry", kind)
		}
	}
	return cl, nil
}

// single splits a one-key mapping such as "- changeSet: {...}".
func (p *parser) single(n *yaml.Node) (string, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, p.errorf(n, "expected a single-key mapping")
	}
	return n.Content[0].Value, n.Content[1], nil
}

func (p *parser) include(n *yaml.Node) (*types.Include, error) {
	attrs := scalars(n)
	file := attrs["file"]
	if file == "" {
		return nil, p.errorf(n, "include without file")
	}
	if rel, _ := strconv.ParseBool(attrs["relativeToChangelogFile"]); rel {
		file = filepath.Join(filepath.Dir(p.location), file)
	}
	return &types.Include{Location: filepath.Clean(file)}, nil
}

func (p *parser) changeSet(n *yaml.Node) (*types.ChangeSet, error) {
	if n.Kind != yaml.MappingNode {
		return nil, p.errorf(n, "changeSet must be a mapping")
	}
	attrs := scalars(n)
	cs := &types.ChangeSet{
		ID:      attrs["id"],
		Author:  attrs["author"],
		Comment: attrs["comment"],
		Context: attrs["context"],
	}
	if cs.Context == "" {
		cs.Context = attrs["contextFilter"]
	}
	if pre := lookup(n, "preConditions"); pre != nil {
		cs.Preconditions = p.preconditions(pre)
	}
	if changes := lookup(n, "changes"); changes != nil {
		if changes.Kind != yaml.SequenceNode {
			return nil, p.errorf(changes, "changes must be a list")
		}
		for _, item := range changes.Content {
			kind, body, err := p.single(item)
			if err != nil {
				return nil, err
			}
			change, err := p.change(kind, body)
			if err != nil {
				return nil, err
			}
			cs.Changes = append(cs.Changes, change)
		}
	}
	return cs, nil
}

func (p *parser) preconditions(n *yaml.Node) []*types.Precondition {
	var out []*types.Precondition
	var items []*yaml.Node
	switch n.Kind {
	case yaml.SequenceNode:
		items = n.Content
	case yaml.MappingNode:
		items = []*yaml.Node{n}
	}
	for _, item := range items {
		if item.Kind != yaml.MappingNode {
			continue
		}
		for i := 0; i+1 < len(item.Content); i += 2 {
			key, value := item.Content[i], item.Content[i+1]
			if value.Kind == yaml.ScalarNode {
				// onFail, onError and friends configure the block itself.
				continue
			}
			pre := &types.Precondition{Type: key.Value, Attributes: scalars(value)}
			if value.Kind == yaml.SequenceNode {
				pre.Nested = p.preconditions(value)
			}
			out = append(out, pre)
		}
	}
	return out
}

func (p *parser) change(kind string, n *yaml.Node) (types.Change, error) {
	a := scalars(n)
	switch types.ChangeKind(kind) {
	case types.ChangeKindCreateTable:
		cols, err := p.columns(n)
		if err != nil {
			return nil, err
		}
		return &types.CreateTable{SchemaName: a["schemaName"], TableName: a["tableName"], Remarks: a["remarks"], Columns: cols}, nil
	case types.ChangeKindAddColumn:
		cols, err := p.columns(n)
		if err != nil {
			return nil, err
		}
		return &types.AddColumn{SchemaName: a["schemaName"], TableName: a["tableName"], Columns: cols}, nil
	case types.ChangeKindAddForeignKeyConstraint:
		return &types.AddForeignKeyConstraint{
			ConstraintName:        a["constraintName"],
			BaseTableSchemaName:   a["baseTableSchemaName"],
			BaseTableName:         a["baseTableName"],
			BaseColumnNames:       a["baseColumnNames"],
			ReferencedTableName:   a["referencedTableName"],
			ReferencedColumnNames: a["referencedColumnNames"],
		}, nil
	case types.ChangeKindAddPrimaryKey:
		return &types.AddPrimaryKey{SchemaName: a["schemaName"], TableName: a["tableName"], ColumnNames: a["columnNames"], ConstraintName: a["constraintName"]}, nil
	case types.ChangeKindAddUniqueConstraint:
		return &types.AddUniqueConstraint{SchemaName: a["schemaName"], TableName: a["tableName"], ColumnNames: a["columnNames"], ConstraintName: a["constraintName"]}, nil
	case types.ChangeKindMergeColumns:
		return &types.MergeColumns{
			SchemaName:      a["schemaName"],
			TableName:       a["tableName"],
			Column1Name:     a["column1Name"],
			Column2Name:     a["column2Name"],
			FinalColumnName: a["finalColumnName"],
			FinalColumnType: a["finalColumnType"],
		}, nil
	case types.ChangeKindRenameColumn:
		return &types.RenameColumn{SchemaName: a["schemaName"], TableName: a["tableName"], OldColumnName: a["oldColumnName"], NewColumnName: a["newColumnName"]}, nil
	case types.ChangeKindRenameTable:
		return &types.RenameTable{SchemaName: a["schemaName"], OldTableName: a["oldTableName"], NewTableName: a["newTableName"]}, nil
	case types.ChangeKindRenameView:
		return &types.RenameView{SchemaName: a["schemaName"], OldViewName: a["oldViewName"], NewViewName: a["newViewName"]}, nil
	case types.ChangeKindCreateView:
		return &types.CreateView{SchemaName: a["schemaName"], ViewName: a["viewName"], SelectQuery: a["selectQuery"], Remarks: a["remarks"]}, nil
	case types.ChangeKindCreateIndex:
		cols, err := p.columns(n)
		if err != nil {
			return nil, err
		}
		unique, err := p.boolAttr(n, "unique")
		if err != nil {
			return nil, err
		}
		return &types.CreateIndex{SchemaName: a["schemaName"], TableName: a["tableName"], IndexName: a["indexName"], Unique: unique, Columns: cols}, nil
	case types.ChangeKindInsertData:
		cols, err := p.columns(n)
		if err != nil {
			return nil, err
		}
		return &types.InsertData{SchemaName: a["schemaName"], TableName: a["tableName"], Columns: cols}, nil
	}
	return &types.OpaqueChange{Type: kind, Attributes: a}, nil
}

func (p *parser) columns(n *yaml.Node) ([]*types.Column, error) {
	list := lookup(n, "columns")
	if list == nil {
		return nil, nil
	}
	if list.Kind != yaml.SequenceNode {
		return nil, p.errorf(list, "columns must be a list")
	}
	cols := make([]*types.Column, 0, len(list.Content))
	for _, item := range list.Content {
		kind, body, err := p.single(item)
		if err != nil {
			return nil, err
		}
		if kind != "column" {
			return nil, p.errorf(item, "expected column, got %q", kind)
		}
		col, err := p.column(body)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func (p *parser) column(n *yaml.Node) (*types.Column, error) {
	a := scalars(n)
	col := &types.Column{Name: a["name"], Type: a["type"], Remarks: a["remarks"]}
	cn := lookup(n, "constraints")
	if cn == nil {
		return col, nil
	}
	if cn.Kind != yaml.MappingNode {
		return nil, p.errorf(cn, "constraints must be a mapping")
	}
	c := &types.Constraints{PrimaryKeyName: scalars(cn)["primaryKeyName"]}
	var err error
	if c.Nullable, err = p.boolAttr(cn, "nullable"); err != nil {
		return nil, err
	}
	if c.PrimaryKey, err = p.boolAttr(cn, "primaryKey"); err != nil {
		return nil, err
	}
	if c.Unique, err = p.boolAttr(cn, "unique"); err != nil {
		return nil, err
	}
	col.Constraints = c
	return col, nil
}

// boolAttr reads an optional boolean. Absent keys yield nil.
func (p *parser) boolAttr(n *yaml.Node, key string) (*bool, error) {
	v := lookup(n, key)
	if v == nil || v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v.Value)
	if err != nil {
		return nil, p.errorf(v, "%s must be a boolean, got %q", key, v.Value)
	}
	return &b, nil
}

// lookup returns the value of key in mapping n.
func lookup(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// scalars returns the scalar entries of mapping n.
func scalars(n *yaml.Node) map[string]string {
	out := make(map[string]string)
	if n == nil || n.Kind != yaml.MappingNode {
		return out
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if v := n.Content[i+1]; v.Kind == yaml.ScalarNode && v.Tag != "!!null" {
			out[n.Content[i].Value] = v.Value
		}
	}
	return out
}

// schemaNames collects every schemaName value under n in document order.
func schemaNames(n *yaml.Node, out []string) []string {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Value == "schemaName" && value.Kind == yaml.ScalarNode {
				out = append(out, value.Value)
				continue
			}
			out = schemaNames(value, out)
		}
	case yaml.SequenceNode, yaml.DocumentNode:
		for _, child := range n.Content {
			out = schemaNames(child, out)
		}
	case yaml.AliasNode:
		if n.Alias != nil {
			out = schemaNames(n.Alias, out)
		}
	}
	return out
}
