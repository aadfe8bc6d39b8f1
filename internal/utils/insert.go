package querybuilder

// InsertRows holds one value slice per inserted row
type InsertRows [][]interface{}

// UpdateData maps column to new value. Columns are emitted in sorted order.
type UpdateData map[string]interface{}

// Raw is an SQL expression used verbatim as an update value, e.g. "violation_count + 1"
type Raw string
