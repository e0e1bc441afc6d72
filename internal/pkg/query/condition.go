package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

type eqCondition struct {
	field string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("category", "Jeans") generates "category = @p0"
func Eq(field string, value interface{}) Condition {
	return &eqCondition{
		field: field,
		value: value,
	}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

type containsFoldCondition struct {
	field string
	term  string
}

// ContainsFold matches rows whose field contains term, ignoring case.
// LIKE wildcards in term match literally.
// Example: ContainsFold("name", "Tee") generates "LOWER(name) LIKE @p0"
// with @p0 = "%tee%".
func ContainsFold(field, term string) Condition {
	return &containsFoldCondition{field: field, term: term}
}

func (c *containsFoldCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("LOWER(%s) LIKE @%s", c.field, paramName), map[string]interface{}{
		paramName: "%" + EscapeLike(strings.ToLower(c.term)) + "%",
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE metacharacters in s with a backslash.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
