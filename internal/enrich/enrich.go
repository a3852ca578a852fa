// Package enrich derives the computed user columns.
package enrich

import (
	"strings"
	"unicode/utf8"

	"userAnalytics/models"
)

// AbsentText is the string form of an absent value.
const AbsentText = "null"

// Stringify returns the text form of an optional value.
func Stringify(s *string) string {
	if s == nil {
		return AbsentText
	}
	return *s
}

// NameLength is the character count of the name's string form.
func NameLength(name *string) int {
	return utf8.RuneCountInString(Stringify(name))
}

// EmailDomain returns the lowercased text after the last "@", or nil when the
// email has no "@".
func EmailDomain(email *string) *string {
	s := Stringify(email)
	i := strings.LastIndex(s, "@")
	if i < 0 {
		return nil
	}
	d := strings.ToLower(s[i+1:])
	return &d
}

// Enrich derives name_length and email_domain for every row, keeping table order.
func Enrich(t models.Table) []models.EnrichedUser {
	out := make([]models.EnrichedUser, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = models.EnrichedUser{
			UserRecord:  r,
			NameLength:  NameLength(r.Name),
			EmailDomain: EmailDomain(r.Email),
		}
	}
	return out
}
