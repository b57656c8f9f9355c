package repository

import "strings"

// likeEscaper escapes LIKE wildcards with '!' so a search term matches
// literally on every dialect.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

const searchWhere = "LOWER(name) LIKE ? ESCAPE '!' OR LOWER(city) = ? OR LOWER(state) = ?"

// searchArgs builds the arguments for searchWhere. Name is a substring
// match while city and state must match exactly, ignoring case.
func searchArgs(term string) []any {
	lower := strings.ToLower(term)
	return []any{"%" + likeEscaper.Replace(lower) + "%", lower, lower}
}
