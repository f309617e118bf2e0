// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package schema names the tables and columns of the PostgreSQL schema created
by data/migrations.

Repositories build their SQL from these descriptors so a column rename
touches one place.
*/
package schema

import "strings"

// List joins column names into a SELECT list.
func List(columns []string) string {
	return strings.Join(columns, ", ")
}

// Prefixed qualifies every column with a table alias, e.g. "q.id".
func Prefixed(alias string, columns []string) string {
	qualified := make([]string, len(columns))
	for index, column := range columns {
		qualified[index] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
