package expert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFacts(t *testing.T) []ProjectAttributes {
	t.Helper()
	return []ProjectAttributes{
		mustFact(t, nil),
		mustFact(t, map[Field]string{FieldSize: ""}),
		mustFact(t, map[Field]string{FieldSize: "small"}),
		mustFact(t, map[Field]string{FieldSize: "small", FieldComplexity: "low", FieldDeadline: "flexible", FieldTeamExperience: "high"}),
		mustFact(t, map[Field]string{FieldSize: "large", FieldComplexity: "high", FieldDeadline: "strict", FieldTeamExperience: "low", FieldRisk: "high"}),
		mustFact(t, map[Field]string{FieldComplexity: "medium", FieldDeadline: "strict", FieldRisk: "low"}),
	}
}

func samplePatterns() []Pattern {
	return []Pattern{
		Equals(FieldSize, "small"),
		Any(FieldRisk),
		Absent(FieldRisk),
		And(),
		Or(),
		And(Equals(FieldComplexity, "low"), Equals(FieldDeadline, "flexible")),
		Or(Equals(FieldSize, "large"), Absent(FieldSize)),
		Not(Equals(FieldDeadline, "strict")),
		Or(And(Any(FieldSize), Equals(FieldComplexity, "medium")), Not(Absent(FieldRisk))),
	}
}

func TestMatchesLeaves(t *testing.T) {
	empty := mustFact(t, nil)
	blank := mustFact(t, map[Field]string{FieldSize: ""})
	small := mustFact(t, map[Field]string{FieldSize: "small"})

	assert.True(t, Matches(Equals(FieldSize, "small"), small))
	assert.False(t, Matches(Equals(FieldSize, "Small"), small))
	assert.False(t, Matches(Equals(FieldSize, ""), empty))
	assert.True(t, Matches(Equals(FieldSize, ""), blank))

	assert.True(t, Matches(Any(FieldSize), empty))
	assert.True(t, Matches(Any(FieldSize), small))

	assert.True(t, Matches(Absent(FieldSize), empty))
	assert.False(t, Matches(Absent(FieldSize), blank))
	assert.False(t, Matches(Absent(FieldSize), small))
}

func TestMatchesVacuousCombinators(t *testing.T) {
	fact := mustFact(t, nil)
	assert.True(t, Matches(And(), fact))
	assert.False(t, Matches(Or(), fact))
	assert.False(t, Matches(Not(And()), fact))
	assert.True(t, Matches(Not(Or()), fact))
}

func TestMatchesOrderIndependent(t *testing.T) {
	a := Equals(FieldComplexity, "low")
	b := Absent(FieldRisk)
	c := Not(Equals(FieldSize, "large"))

	perms := [][]Pattern{{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}}
	for _, fact := range sampleFacts(t) {
		wantAnd := Matches(And(perms[0]...), fact)
		wantOr := Matches(Or(perms[0]...), fact)
		for _, p := range perms[1:] {
			assert.Equal(t, wantAnd, Matches(And(p...), fact))
			assert.Equal(t, wantOr, Matches(Or(p...), fact))
		}
	}
}

func TestMatchesDoubleNegation(t *testing.T) {
	for _, fact := range sampleFacts(t) {
		for _, p := range samplePatterns() {
			assert.Equal(t, Matches(p, fact), Matches(Not(Not(p)), fact), p.String())
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		pattern Pattern
		wantErr bool
	}{
		{name: "equals", pattern: Equals(FieldSize, "small")},
		{name: "nested", pattern: Or(And(Any(FieldSize), Equals(FieldRisk, "low")), Not(Absent(FieldDeadline)))},
		{name: "unknown_field", pattern: Equals(Field("budget"), "high"), wantErr: true},
		{name: "empty_and", pattern: And(), wantErr: true},
		{name: "empty_or", pattern: Or(Equals(FieldSize, "small"), Or()), wantErr: true},
		{name: "bad_not", pattern: Pattern{Kind: KindNot}, wantErr: true},
		{name: "zero_value", pattern: Pattern{}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.pattern)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedPattern))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPatternString(t *testing.T) {
	p := And(Any(FieldSize), Equals(FieldComplexity, "low"), Not(Absent(FieldRisk)))
	assert.Equal(t, `and(any(size), complexity="low", not(absent(risk)))`, p.String())
}
