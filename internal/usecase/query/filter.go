package query

import (
	"strings"

	"github.com/kailas-cloud/ftquery/internal/domain/condition"
)

// Filter drops empty operands from spec: absent or blank values, empty
// candidate sets, and operator conditions left without a usable operand.
// Hash entries and AND/OR operands are filtered recursively. Any other
// operator is dropped when any of its operands is blank, not just the first.
func Filter(spec condition.Spec) condition.Spec {
	switch spec.Kind() {
	case condition.KindMap:
		pairs := make([]condition.Pair, 0, len(spec.Pairs()))
		for _, p := range spec.Pairs() {
			if isBlank(p.Value) {
				continue
			}
			pairs = append(pairs, p)
		}
		return condition.Hash(pairs...)
	case condition.KindList:
		return filterOperator(spec)
	default:
		return spec
	}
}

func filterOperator(spec condition.Spec) condition.Spec {
	items := spec.Items()
	if len(items) == 0 || items[0].IsComposite() || items[0].IsAbsent() {
		return spec
	}
	op := strings.ToUpper(items[0].Text())
	operands := items[1:]

	switch op {
	case condition.OpAnd, condition.OpOr:
		kept := make([]condition.Spec, 0, len(operands))
		for _, o := range operands {
			if f := Filter(o); !isBlank(f) {
				kept = append(kept, f)
			}
		}
		if len(kept) == 0 {
			return condition.Spec{}
		}
		return condition.Op(op, kept...)
	case condition.OpNot:
		// wrong arity is reported by the compiler
		if len(operands) != 1 {
			return spec
		}
		f := Filter(operands[0])
		if isBlank(f) {
			return condition.Spec{}
		}
		return condition.Not(f)
	default:
		for _, o := range operands {
			if isBlank(o) {
				return condition.Spec{}
			}
		}
		return spec
	}
}

func isBlank(s condition.Spec) bool {
	if s.IsComposite() {
		return s.IsEmpty()
	}
	return s.IsAbsent() || strings.TrimSpace(s.Text()) == ""
}
