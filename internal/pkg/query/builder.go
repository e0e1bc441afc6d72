package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

type joinKind int

const (
	innerJoin joinKind = iota
	leftJoin
)

type join struct {
	kind  joinKind
	table string
	on    string
}

// Builder constructs SQL SELECT queries for Cloud Spanner.
// Every method returns a new Builder, so a base query can be shared
// between the row query and its Count without copying by hand.
// Parameter names are generated in condition order (@p0, @p1, ...).
type Builder struct {
	table        string
	selectCols   []string
	joins        []join
	whereClauses []Condition
	groupBy      []string
	orderByCol   string
	orderByDir   Direction
	limitVal     int64
	offsetVal    int64
	subquery     *Builder
}

// From creates a new Builder for the specified table.
// The table may carry an alias ("products p").
func From(table string) *Builder {
	return &Builder{
		table:        table,
		selectCols:   []string{},
		whereClauses: []Condition{},
	}
}

// Select specifies the columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Join adds an INNER JOIN on the given condition.
func (b *Builder) Join(table, on string) *Builder {
	nb := b.clone()
	nb.joins = append(nb.joins, join{kind: innerJoin, table: table, on: on})
	return nb
}

// LeftJoin adds a LEFT JOIN on the given condition.
func (b *Builder) LeftJoin(table, on string) *Builder {
	nb := b.clone()
	nb.joins = append(nb.joins, join{kind: leftJoin, table: table, on: on})
	return nb
}

// Where adds a WHERE condition.
// Multiple calls are combined with AND logic.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.whereClauses = append(nb.whereClauses, condition)
	return nb
}

// GroupBy sets the GROUP BY columns.
func (b *Builder) GroupBy(columns ...string) *Builder {
	nb := b.clone()
	nb.groupBy = append(nb.groupBy, columns...)
	return nb
}

// OrderBy specifies the column and direction for sorting.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderByCol = column
	nb.orderByDir = direction
	return nb
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limitVal = limit
	return nb
}

// Offset sets the number of rows to skip.
func (b *Builder) Offset(offset int64) *Builder {
	nb := b.clone()
	nb.offsetVal = offset
	return nb
}

// Count returns a builder that counts the rows the receiver would
// return without pagination. Joins and WHERE conditions are kept.
// A grouped query is counted as a subquery so each group counts once.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.limitVal = 0
	nb.offsetVal = 0
	nb.orderByCol = ""
	if len(nb.groupBy) == 0 {
		nb.selectCols = []string{"COUNT(*)"}
		return nb
	}
	return &Builder{
		table:        "(" + nb.Build().SQL + ")",
		selectCols:   []string{"COUNT(*)"},
		whereClauses: []Condition{},
		subquery:     nb,
	}
}

// Build constructs the final spanner.Statement with SQL and parameters.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	if b.subquery != nil {
		inner := b.subquery.Build()
		for k, v := range inner.Params {
			params[k] = v
		}
	}

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	for _, j := range b.joins {
		if j.kind == leftJoin {
			sql.WriteString(" LEFT JOIN ")
		} else {
			sql.WriteString(" JOIN ")
		}
		sql.WriteString(j.table)
		sql.WriteString(" ON ")
		sql.WriteString(j.on)
	}

	if len(b.whereClauses) > 0 {
		sql.WriteString(" WHERE ")
		whereParts := make([]string, 0, len(b.whereClauses))
		paramIndex := 0
		for _, condition := range b.whereClauses {
			fragment, condParams := condition.SQL(paramIndex)
			whereParts = append(whereParts, fragment)
			for k, v := range condParams {
				params[k] = v
			}
			paramIndex += len(condParams)
		}
		sql.WriteString(strings.Join(whereParts, " AND "))
	}

	if len(b.groupBy) > 0 {
		sql.WriteString(" GROUP BY ")
		sql.WriteString(strings.Join(b.groupBy, ", "))
	}

	if b.orderByCol != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(b.orderByCol)
		if b.orderByDir == Desc {
			sql.WriteString(" DESC")
		} else {
			sql.WriteString(" ASC")
		}
	}

	if b.limitVal > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limitVal
	}

	if b.offsetVal > 0 {
		sql.WriteString(" OFFSET @offset")
		params["offset"] = b.offsetVal
	}

	return spanner.Statement{
		SQL:    sql.String(),
		Params: params,
	}
}

func (b *Builder) clone() *Builder {
	nb := &Builder{
		table:        b.table,
		selectCols:   make([]string, len(b.selectCols)),
		joins:        make([]join, len(b.joins)),
		whereClauses: make([]Condition, len(b.whereClauses)),
		groupBy:      make([]string, len(b.groupBy)),
		orderByCol:   b.orderByCol,
		orderByDir:   b.orderByDir,
		limitVal:     b.limitVal,
		offsetVal:    b.offsetVal,
		subquery:     b.subquery,
	}
	copy(nb.selectCols, b.selectCols)
	copy(nb.joins, b.joins)
	copy(nb.whereClauses, b.whereClauses)
	copy(nb.groupBy, b.groupBy)
	return nb
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
