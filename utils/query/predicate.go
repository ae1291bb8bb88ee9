package queryHelper

import (
	"strings"

	"gorm.io/gorm"
)

// Operator is the comparison a Condition applies to its columns.
type Operator int

const (
	// OpEqual is an exact, case-sensitive match.
	OpEqual Operator = iota
	// OpContainsFold is a case-insensitive substring match.
	OpContainsFold
)

// Condition compares Value against one or more columns. Several columns form
// an OR group.
type Condition struct {
	Columns []string
	Op      Operator
	Value   interface{}
}

// Predicate is a conjunction of conditions. The zero value matches every row.
type Predicate struct {
	conditions []Condition
}

// Equal adds "column = value". Blank strings are ignored.
func (p *Predicate) Equal(column string, value string) *Predicate {
	value = strings.TrimSpace(value)
	if value == "" {
		return p
	}
	p.conditions = append(p.conditions, Condition{Columns: []string{column}, Op: OpEqual, Value: value})
	return p
}

// EqualBool adds "column = value" when value is set.
func (p *Predicate) EqualBool(column string, value *bool) *Predicate {
	if value == nil {
		return p
	}
	p.conditions = append(p.conditions, Condition{Columns: []string{column}, Op: OpEqual, Value: *value})
	return p
}

// ContainsFold adds a case-insensitive substring match of term against any of
// columns. Blank terms are ignored.
func (p *Predicate) ContainsFold(term string, columns ...string) *Predicate {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return p
	}
	p.conditions = append(p.conditions, Condition{
		Columns: columns,
		Op:      OpContainsFold,
		Value:   "%" + EscapeLike(term) + "%",
	})
	return p
}

// SQL renders the predicate as a WHERE fragment with "?" placeholders and the
// matching bind values. An empty predicate renders as "".
func (p *Predicate) SQL() (string, []interface{}) {
	if len(p.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(p.conditions))
	args := make([]interface{}, 0, len(p.conditions))

	for _, cond := range p.conditions {
		parts := make([]string, 0, len(cond.Columns))
		for _, column := range cond.Columns {
			switch cond.Op {
			case OpContainsFold:
				parts = append(parts, column+" ILIKE ?")
			default:
				parts = append(parts, column+" = ?")
			}
			args = append(args, cond.Value)
		}

		clause := strings.Join(parts, " OR ")
		if len(parts) > 1 {
			clause = "(" + clause + ")"
		}
		clauses = append(clauses, clause)
	}

	return strings.Join(clauses, " AND "), args
}

// Scope applies the predicate to a GORM query. Count and page queries built
// from the same predicate always agree.
func (p *Predicate) Scope() func(db *gorm.DB) *gorm.DB {
	where, args := p.SQL()
	return func(db *gorm.DB) *gorm.DB {
		if where == "" {
			return db
		}
		return db.Where(where, args...)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so term matches literally.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
