package querybuilder

type CondType int

const (
	CondTypeAnd CondType = iota + 1
	CondTypeOr
)

func (c CondType) ToString() string {
	switch c {
	case CondTypeAnd:
		return "AND"
	case CondTypeOr:
		return "OR"
	default:
		return ""
	}
}

type Condition struct {
	condType CondType
	clause   string
	args     []interface{}
}

func buildCondition(conditions []Condition) (string, []interface{}) {
	clause := ""
	args := make([]interface{}, 0)
	for i, cond := range conditions {
		if i > 0 {
			clause += " " + cond.condType.ToString() + " "
		}
		clause += cond.clause
		args = append(args, cond.args...)
	}
	return clause, args
}
