package domain

// Operator is a comparison applied by a backend filter
type Operator string

const (
	OpEq         Operator = "eq"
	OpNeq        Operator = "neq"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startswith"
	OpEndsWith   Operator = "endswith"
	OpRegex      Operator = "regex"
)

// OperatorLabels are the display names shown next to each operator
var OperatorLabels = map[Operator]string{
	OpEq:         "Equals",
	OpNeq:        "Not equals",
	OpGt:         "Greater than",
	OpGte:        "Greater or equal",
	OpLt:         "Less than",
	OpLte:        "Less or equal",
	OpContains:   "Contains",
	OpStartsWith: "Starts with",
	OpEndsWith:   "Ends with",
	OpRegex:      "Matches regex",
}

var allowedOperators = map[FieldType][]Operator{
	FieldTypeString:  {OpEq, OpNeq, OpContains, OpStartsWith, OpEndsWith, OpRegex},
	FieldTypeNumber:  {OpEq, OpNeq, OpGt, OpGte, OpLt, OpLte},
	FieldTypeBoolean: {OpEq, OpNeq},
	FieldTypeSelect:  {OpEq, OpNeq},
}

// DefaultOperators returns the operators offered for a field type when a
// filter does not restrict them. Unknown types fall back to the string set.
func DefaultOperators(t FieldType) []string {
	ops, ok := allowedOperators[t]
	if !ok {
		ops = allowedOperators[FieldTypeString]
	}
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = string(op)
	}
	return out
}

// EffectiveOperators returns the filter's own operators, or the type
// defaults when none are set
func (f FilterDescriptor) EffectiveOperators() []string {
	if len(f.Operators) > 0 {
		return cloneStrings(f.Operators)
	}
	return DefaultOperators(f.Type)
}

// OperatorInfo describes one operator for catalog responses
type OperatorInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// OperatorCatalog is the allowed operator set per field type with labels
type OperatorCatalog map[FieldType][]OperatorInfo

// NewOperatorCatalog builds the catalog for every supported field type
func NewOperatorCatalog() OperatorCatalog {
	catalog := make(OperatorCatalog, len(FieldTypes))
	for _, t := range FieldTypes {
		ops := allowedOperators[t]
		infos := make([]OperatorInfo, len(ops))
		for i, op := range ops {
			infos[i] = OperatorInfo{ID: string(op), Label: OperatorLabels[op]}
		}
		catalog[t] = infos
	}
	return catalog
}

// FilterTemplates lists the field types and per-type operators a
// backend filter may use
type FilterTemplates struct {
	Types     []FieldType              `json:"types"`
	Operators map[FieldType][]Operator `json:"operators"`
}

// NewFilterTemplates returns the templates offered to descriptor authors
func NewFilterTemplates() FilterTemplates {
	ops := make(map[FieldType][]Operator, len(allowedOperators))
	for t, list := range allowedOperators {
		cp := make([]Operator, len(list))
		copy(cp, list)
		ops[t] = cp
	}
	types := make([]FieldType, len(FieldTypes))
	copy(types, FieldTypes)
	return FilterTemplates{Types: types, Operators: ops}
}
