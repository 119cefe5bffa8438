package database

import (
	"fmt"

	"github.com/huandu/go-sqlbuilder"
)

// Excluded references the EXCLUDED pseudo-row inside an ON CONFLICT clause
func Excluded(column string) string {
	return fmt.Sprintf("EXCLUDED.%s", column)
}

// CoalesceExcluded renders the null-safe merge expression used by the
// distribution engine's upserts: an incoming NULL never erases a stored value.
func CoalesceExcluded(table, column string) string {
	return fmt.Sprintf("COALESCE(EXCLUDED.%s, %s.%s)", column, table, column)
}

// MergeSet renders the "col = COALESCE(EXCLUDED.col, table.col)" assignment
// for each column, ready to join into an ON CONFLICT DO UPDATE SET clause.
func MergeSet(table string, columns ...string) []string {
	assignments := make([]string, 0, len(columns))
	for _, column := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = %s", column, CoalesceExcluded(table, column)))
	}
	return assignments
}

type SelectBuilder struct {
	*sqlbuilder.SelectBuilder
}

func NewSelectBuilder() *SelectBuilder {
	return &SelectBuilder{sqlbuilder.PostgreSQL.NewSelectBuilder()}
}

type UpdateBuilder struct {
	*sqlbuilder.UpdateBuilder
}

func NewUpdateBuilder() *UpdateBuilder {
	return &UpdateBuilder{sqlbuilder.PostgreSQL.NewUpdateBuilder()}
}

type InsertBuilder struct {
	*sqlbuilder.InsertBuilder
}

func NewInsertBuilder() *InsertBuilder {
	return &InsertBuilder{sqlbuilder.PostgreSQL.NewInsertBuilder()}
}
