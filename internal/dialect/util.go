package dialect

import (
	"strings"
)

// GeneratePlaceholders is a helper function to create a slice of placeholder strings.
// It takes the number of placeholders needed and a function that returns the placeholder for a given index.
// It returns a comma-separated string of the generated placeholders.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// whereClause turns a raw predicate into a " WHERE ..." suffix, tolerating
// predicates that already carry the WHERE keyword.
func whereClause(where string) string {
	w := strings.TrimSpace(where)
	if w == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToUpper(w), "WHERE ") {
		return " " + w
	}
	return " WHERE " + w
}

// selectList prepends the key column to the compared columns.
func selectList(keyColumn string, columns []string) string {
	return strings.Join(append([]string{keyColumn}, columns...), ", ")
}

// DefaultNormalizeType is a default implementation for type normalization (lowercase).
func DefaultNormalizeType(sqlType string) string {
	return strings.ToLower(sqlType)
}
