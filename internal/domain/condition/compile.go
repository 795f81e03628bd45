package condition

import (
	"strings"

	"github.com/kailas-cloud/ftquery/internal/domain"
)

// Params collects bound parameters discovered during compilation. The search
// grammar has no placeholders, so the compiler never writes to it.
type Params map[string]string

type builderFunc func(op string, operands []Spec, params Params) (string, error)

var builders map[string]builderFunc

func init() {
	builders = map[string]builderFunc{
		OpNot:   buildNot,
		OpAnd:   buildAnd,
		OpOr:    buildAnd,
		OpIn:    buildIn,
		OpNotIn: buildIn,
		OpWild:  buildWild,
	}
}

// Build compiles spec without a parameter sink.
func Build(spec Spec) (string, error) {
	return Compile(spec, nil)
}

// Compile turns a condition into a query-string fragment. Values it cannot
// interpret degrade to an empty fragment; only a NOT with the wrong number of
// operands is an error.
func Compile(spec Spec, params Params) (string, error) {
	switch spec.kind {
	case KindLiteral:
		return spec.text, nil
	case KindMap:
		if len(spec.pairs) == 0 {
			return "", nil
		}
		return buildHash(spec.pairs, params)
	}

	if len(spec.items) == 0 {
		return "", nil
	}
	head := spec.items[0]
	if head.IsComposite() || head.IsAbsent() {
		return "", nil
	}

	op := strings.ToUpper(head.text)
	build, ok := builders[op]
	if !ok {
		build = buildSimple
	}
	return build(op, spec.items[1:], params)
}

// buildHash emits field:value per entry. Sequence values become IN tests and
// absent values are skipped.
func buildHash(pairs []Pair, params Params) (string, error) {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.Value.IsComposite() {
			part, err := buildIn(OpIn, []Spec{Lit(p.Field), p.Value}, params)
			if err != nil {
				return "", err
			}
			if part != "" {
				parts = append(parts, part)
			}
			continue
		}
		if !p.Value.IsAbsent() {
			parts = append(parts, p.Field+":"+p.Value.text)
		}
	}

	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], nil
	default:
		return "(" + strings.Join(parts, ") AND (") + ")", nil
	}
}

// buildAnd joins the non-empty operands into one flat chain: (a) OP (b) OP (c).
func buildAnd(op string, operands []Spec, params Params) (string, error) {
	parts := make([]string, 0, len(operands))
	for _, operand := range operands {
		part, err := Compile(operand, params)
		if err != nil {
			return "", err
		}
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, ") "+op+" (") + ")", nil
}

func buildNot(op string, operands []Spec, params Params) (string, error) {
	if len(operands) != 1 {
		return "", &domain.InvalidOperandError{Operator: op, Count: len(operands)}
	}

	operand, err := Compile(operands[0], params)
	if err != nil {
		return "", err
	}
	if operand == "" {
		return "", nil
	}
	return op + " (" + operand + ")", nil
}

// buildIn expects [field, values]. values may be a list, a map (its values
// are the candidates) or a single literal.
func buildIn(op string, operands []Spec, _ Params) (string, error) {
	if len(operands) != 2 || operands[0].IsComposite() || operands[0].IsEmpty() {
		return "", nil
	}
	field := operands[0].text

	var candidates []Spec
	switch values := operands[1]; values.kind {
	case KindList:
		candidates = values.items
	case KindMap:
		candidates = make([]Spec, len(values.pairs))
		for i, p := range values.pairs {
			candidates[i] = p.Value
		}
	default:
		candidates = []Spec{values}
	}

	terms := make([]string, 0, len(candidates))
	for _, v := range candidates {
		if v.IsAbsent() {
			continue
		}
		terms = append(terms, field+":"+v.String())
	}
	if len(terms) == 0 {
		return "", nil
	}

	joined := strings.Join(terms, " OR ")
	if op == OpNotIn {
		return OpNot + " (" + joined + ")", nil
	}
	if len(terms) == 1 {
		return joined, nil
	}
	return "(" + joined + ")", nil
}

// buildWild compiles operands only to find out whether any is non-empty, then
// emits the original operands. Nested conditions are therefore not compiled.
func buildWild(_ string, operands []Spec, params Params) (string, error) {
	nonEmpty := false
	for _, operand := range operands {
		part, err := Compile(operand, params)
		if err != nil {
			return "", err
		}
		if part != "" {
			nonEmpty = true
		}
	}
	if !nonEmpty {
		return "", nil
	}

	raw := make([]string, len(operands))
	for i, operand := range operands {
		raw[i] = operand.String()
	}
	return strings.Join(raw, " "), nil
}

// buildSimple emits unknown operators verbatim: OP operand1 operand2 ...
func buildSimple(op string, operands []Spec, _ Params) (string, error) {
	parts := make([]string, 0, len(operands)+1)
	parts = append(parts, op)
	for _, operand := range operands {
		parts = append(parts, operand.String())
	}
	return strings.Join(parts, " "), nil
}
