package models

// UserColumns is the column order of the `users` table definition.
var UserColumns = []string{"id", "name", "username", "email", "phone", "website"}

// Table is the whole `users` table materialized in memory.
type Table struct {
	Columns []string
	Rows    []UserRecord
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}
