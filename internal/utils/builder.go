package querybuilder

import (
	"fmt"
	"sort"
	"strings"
)

// QueryBuilder assembles one SQL statement with ? placeholders. Callers rebind
// the placeholders for their driver, e.g. sqlx.Rebind(sqlx.DOLLAR, query).
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder

	Or(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder

	OrderBy(col string, asc bool) QueryBuilder
	Limit(n int) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder

	// OnConflict makes an insert an upsert; combine with DoNothing or SetExclude
	OnConflict(cols ...string) QueryBuilder
	DoNothing() QueryBuilder
	SetExclude(cols ...string) QueryBuilder

	Update(table string, data UpdateData) QueryBuilder
	Returning(cols ...string) QueryBuilder

	Build() (string, []interface{})
}

type queryBuilder struct {
	schema      string
	table       string
	cols        []string
	conditions  []Condition
	values      InsertRows
	updateData  UpdateData
	orderBy     []string
	limit       int
	onConflict  []string
	excludeCols []string
	returning   []string
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{schema: schema}
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	return q.And(clause, args...)
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, Condition{condType: CondTypeAnd, clause: clause, args: args})
	return q
}

func (q *queryBuilder) Or(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, Condition{condType: CondTypeOr, clause: clause, args: args})
	return q
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	direction := "ASC"
	if !asc {
		direction = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, direction))
	return q
}

func (q *queryBuilder) Limit(n int) QueryBuilder {
	q.limit = n
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

func (q *queryBuilder) OnConflict(cols ...string) QueryBuilder {
	q.onConflict = cols
	return q
}

func (q *queryBuilder) DoNothing() QueryBuilder {
	q.excludeCols = nil
	return q
}

func (q *queryBuilder) SetExclude(cols ...string) QueryBuilder {
	q.excludeCols = cols
	return q
}

func (q *queryBuilder) Update(table string, data UpdateData) QueryBuilder {
	q.table = table
	q.updateData = data
	return q
}

func (q *queryBuilder) Returning(cols ...string) QueryBuilder {
	q.returning = append(q.returning, cols...)
	return q
}

// Build returns an empty query when the builder is inconsistent, e.g. a value
// row whose length does not match the insert columns
func (q *queryBuilder) Build() (string, []interface{}) {
	switch {
	case len(q.values) > 0:
		return q.buildInsert()
	case len(q.updateData) > 0:
		return q.buildUpdate()
	default:
		return q.buildSelect()
	}
}

func (q *queryBuilder) qualified() string {
	if q.schema == "" {
		return q.table
	}
	return fmt.Sprintf("%s.%s", q.schema, q.table)
}

func (q *queryBuilder) where() (string, []interface{}) {
	if len(q.conditions) == 0 {
		return "", nil
	}
	clause, args := buildCondition(q.conditions)
	return " WHERE " + clause, args
}

func (q *queryBuilder) suffix() string {
	var b strings.Builder
	if len(q.orderBy) > 0 {
		b.WriteString(" ORDER BY " + strings.Join(q.orderBy, ", "))
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}
	if len(q.returning) > 0 {
		b.WriteString(" RETURNING " + strings.Join(q.returning, ", "))
	}
	return b.String()
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), q.qualified())
	where, args := q.where()
	return query + where + q.suffix(), args
}

func (q *queryBuilder) buildInsert() (string, []interface{}) {
	numOfParam := len(q.cols)
	if numOfParam == 0 {
		return "", nil
	}

	args := make([]interface{}, 0, numOfParam*len(q.values))
	tuples := make([]string, 0, len(q.values))
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", numOfParam), ", ")
	for _, row := range q.values {
		if len(row) != numOfParam {
			return "", nil
		}
		args = append(args, row...)
		tuples = append(tuples, "("+placeholders+")")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		q.qualified(), strings.Join(q.cols, ", "), strings.Join(tuples, ", "))

	if len(q.onConflict) > 0 {
		query += fmt.Sprintf(" ON CONFLICT (%s)", strings.Join(q.onConflict, ", "))
		if len(q.excludeCols) == 0 {
			query += " DO NOTHING"
		} else {
			sets := make([]string, 0, len(q.excludeCols))
			for _, col := range q.excludeCols {
				sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
			}
			query += " DO UPDATE SET " + strings.Join(sets, ", ")
		}
	}
	return query + q.suffix(), args
}

func (q *queryBuilder) buildUpdate() (string, []interface{}) {
	cols := make([]string, 0, len(q.updateData))
	for col := range q.updateData {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		switch v := q.updateData[col].(type) {
		case Raw:
			sets = append(sets, fmt.Sprintf("%s = %s", col, v))
		default:
			sets = append(sets, fmt.Sprintf("%s = ?", col))
			args = append(args, v)
		}
	}

	query := fmt.Sprintf("UPDATE %s SET %s", q.qualified(), strings.Join(sets, ", "))
	where, condArgs := q.where()
	args = append(args, condArgs...)
	return query + where + q.suffix(), args
}
