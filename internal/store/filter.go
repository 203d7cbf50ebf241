package store

import "gorm.io/gorm"

type predicate struct {
	column string
	value  interface{}
}

// filter is an AND-combined list of equality predicates layered on a base query.
type filter []predicate

func (f filter) eq(column string, value interface{}) filter {
	return append(f, predicate{column: column, value: value})
}

// eqIf adds the predicate only when ok is true.
func (f filter) eqIf(ok bool, column string, value interface{}) filter {
	if !ok {
		return f
	}
	return f.eq(column, value)
}

func (f filter) apply(q *gorm.DB) *gorm.DB {
	for _, p := range f {
		q = q.Where(p.column+" = ?", p.value)
	}
	return q
}
