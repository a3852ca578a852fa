package models

// UserRecord is one user as returned by the remote API and as stored in the
// `users` table. Every attribute is optional; nil means the key was absent or
// null in the source payload and maps to NULL in SQLite.
type UserRecord struct {
	ID       *int64  `db:"id" json:"id"`
	Name     *string `db:"name" json:"name"`
	Username *string `db:"username" json:"username"`
	Email    *string `db:"email" json:"email"`
	Phone    *string `db:"phone" json:"phone"`
	Website  *string `db:"website" json:"website"`
}

// EnrichedUser is a stored user plus the two derived attributes.
// They live only in memory and are never persisted.
type EnrichedUser struct {
	UserRecord
	NameLength int `json:"name_length"`
	// EmailDomain is nil when the email has no "@".
	EmailDomain *string `json:"email_domain"`
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
