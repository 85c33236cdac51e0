package expert

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the node type of a Pattern.
type Kind int

const (
	KindEquals Kind = iota + 1
	KindAny
	KindAbsent
	KindAnd
	KindOr
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindEquals:
		return "equals"
	case KindAny:
		return "any"
	case KindAbsent:
		return "absent"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Pattern is a boolean condition tree over fact fields. Leaves are
// Equals/Any/Absent predicates; And/Or/Not combine them.
type Pattern struct {
	Kind     Kind
	Field    Field
	Value    string
	Children []Pattern
}

// Equals matches when field is present and exactly equal to value.
func Equals(field Field, value string) Pattern {
	return Pattern{Kind: KindEquals, Field: field, Value: value}
}

// Any matches regardless of field's value or presence.
func Any(field Field) Pattern {
	return Pattern{Kind: KindAny, Field: field}
}

// Absent matches when field has no value.
func Absent(field Field) Pattern {
	return Pattern{Kind: KindAbsent, Field: field}
}

// And matches when every child matches.
func And(ps ...Pattern) Pattern {
	return Pattern{Kind: KindAnd, Children: ps}
}

// Or matches when at least one child matches.
func Or(ps ...Pattern) Pattern {
	return Pattern{Kind: KindOr, Children: ps}
}

// Not inverts p.
func Not(p Pattern) Pattern {
	return Pattern{Kind: KindNot, Children: []Pattern{p}}
}

// Fact is a convenience for an And of Equals predicates, one per entry, in
// canonical field order.
func Fact(values map[Field]string) Pattern {
	ps := make([]Pattern, 0, len(values))
	for _, f := range Fields {
		if v, ok := values[f]; ok {
			ps = append(ps, Equals(f, v))
		}
	}
	return And(ps...)
}

// Matches evaluates p against fact. And stops at the first failing child and
// Or at the first succeeding one.
func Matches(p Pattern, fact ProjectAttributes) bool {
	switch p.Kind {
	case KindEquals:
		v, ok := fact.Get(p.Field)
		return ok && v == p.Value
	case KindAny:
		return true
	case KindAbsent:
		_, ok := fact.Get(p.Field)
		return !ok
	case KindAnd:
		for _, child := range p.Children {
			if !Matches(child, fact) {
				return false
			}
		}
		return true
	case KindOr:
		for _, child := range p.Children {
			if Matches(child, fact) {
				return true
			}
		}
		return false
	case KindNot:
		if len(p.Children) != 1 {
			return false
		}
		return !Matches(p.Children[0], fact)
	default:
		return false
	}
}

// Validate checks that p only references known fields and that combinators
// are well formed. Empty And/Or are rejected even though Matches gives them
// vacuous meaning.
func Validate(p Pattern) error {
	return validate(p, "")
}

func validate(p Pattern, path string) error {
	here := path + "/" + p.Kind.String()
	switch p.Kind {
	case KindEquals, KindAny, KindAbsent:
		if !p.Field.Valid() {
			return fmt.Errorf("%w: %s references unknown field %q", ErrMalformedPattern, here, p.Field)
		}
		if len(p.Children) != 0 {
			return fmt.Errorf("%w: %s predicate has children", ErrMalformedPattern, here)
		}
		return nil
	case KindAnd, KindOr:
		if len(p.Children) == 0 {
			return fmt.Errorf("%w: %s has no children", ErrMalformedPattern, here)
		}
		for i, child := range p.Children {
			if err := validate(child, here+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
		return nil
	case KindNot:
		if len(p.Children) != 1 {
			return fmt.Errorf("%w: %s needs exactly one child, got %d", ErrMalformedPattern, here, len(p.Children))
		}
		return validate(p.Children[0], here)
	default:
		return fmt.Errorf("%w: %s unknown kind", ErrMalformedPattern, here)
	}
}

// String renders p in a compact prefix form, e.g.
// and(size="small", any(size), not(absent(risk))).
func (p Pattern) String() string {
	switch p.Kind {
	case KindEquals:
		return string(p.Field) + "=" + strconv.Quote(p.Value)
	case KindAny, KindAbsent:
		return p.Kind.String() + "(" + string(p.Field) + ")"
	case KindAnd, KindOr, KindNot:
		parts := make([]string, 0, len(p.Children))
		for _, child := range p.Children {
			parts = append(parts, child.String())
		}
		return p.Kind.String() + "(" + strings.Join(parts, ", ") + ")"
	default:
		return p.Kind.String()
	}
}
