package search

import (
	"fmt"
	"strings"
)

// matchNothing is emitted when a non-empty term has no field to match
// against, so the condition stays composable with AND.
const matchNothing = "1 = 0"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PredicateBuilder turns a search term and a field set into a SQL
// condition over the denormalized task view. Field paths are resolved
// through a column map; a path with no mapped column cannot hold a
// matching value and is skipped.
type PredicateBuilder struct {
	columns map[string]string
}

func NewPredicateBuilder(columns map[string]string) *PredicateBuilder {
	return &PredicateBuilder{columns: columns}
}

// Build returns a condition string using $N placeholders starting at
// argIndex, and the matching argument list.
//
// An empty term yields an empty condition (match everything). A non-empty
// term with no usable field yields a condition matching nothing. The term
// is matched as a literal case-insensitive substring: LIKE wildcards in
// the term are escaped before use.
func (b *PredicateBuilder) Build(term string, fields []string, argIndex int) (string, []any) {
	if term == "" {
		return "", nil
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"

	var clauses []string
	var args []any
	for _, field := range fields {
		col, ok := b.columns[field]
		if !ok {
			continue
		}
		clauses = append(clauses, fmt.Sprintf(`LOWER(%s) LIKE $%d ESCAPE '\'`, col, argIndex))
		args = append(args, pattern)
		argIndex++
	}
	if len(clauses) == 0 {
		return matchNothing, nil
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args
}
