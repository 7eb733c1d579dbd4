package utils

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern builds a %term% pattern for a case-insensitive substring
// match with ILIKE.
func ContainsPattern(term string) string {
	return "%" + EscapeLike(strings.TrimSpace(term)) + "%"
}
