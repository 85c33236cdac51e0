package expert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalogErrors(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name: "unknown_field",
			yaml: `
rules:
  - name: r
    when: {equals: {budget: high}}
    then: {approach: A, confidence: 0.5}
`,
			wantErr: ErrMalformedPattern,
		},
		{
			name: "two_keys",
			yaml: `
rules:
  - name: r
    when: {any: size, absent: risk}
    then: {approach: A, confidence: 0.5}
`,
			wantErr: ErrMalformedPattern,
		},
		{
			name: "empty_and",
			yaml: `
rules:
  - name: r
    when: {and: []}
    then: {approach: A, confidence: 0.5}
`,
			wantErr: ErrMalformedPattern,
		},
		{
			name: "empty_node",
			yaml: `
rules:
  - name: r
    when: {}
    then: {approach: A, confidence: 0.5}
`,
			wantErr: ErrMalformedPattern,
		},
		{
			name: "bad_confidence",
			yaml: `
rules:
  - name: r
    when: {any: size}
    then: {approach: A, confidence: 1.5}
`,
			wantErr: ErrInvalidRecommendation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), err.Error())
		})
	}
}

func TestParseCatalogNestedNodes(t *testing.T) {
	rs, err := ParseCatalog([]byte(`
rules:
  - name: not_small_or_risky
    when:
      or:
        - not: {equals: {size: small}}
        - equals: {risk: high}
    then: {approach: Kanban, confidence: 0.6, explanation: test}
`))
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())

	rule := rs.All()[0]
	assert.Equal(t, `or(not(size="small"), risk="high")`, rule.Pattern.String())
	assert.True(t, Matches(rule.Pattern, mustFact(t, nil)))
	assert.False(t, Matches(rule.Pattern, mustFact(t, map[Field]string{FieldSize: "small"})))
	assert.True(t, Matches(rule.Pattern, mustFact(t, map[Field]string{FieldSize: "small", FieldRisk: "high"})))
}

func TestNewRuleSetValidation(t *testing.T) {
	produce := func(ProjectAttributes) Recommendation { return NoRecommendation() }

	_, err := NewRuleSet(Rule{Name: "a", Pattern: Any(FieldSize), Produce: produce}, Rule{Name: "a", Pattern: Any(FieldSize), Produce: produce})
	assert.Error(t, err)

	_, err = NewRuleSet(Rule{Name: "a", Pattern: Any(FieldSize)})
	assert.Error(t, err)

	_, err = NewRuleSet(Rule{Name: "a", Pattern: Or(), Produce: produce})
	assert.True(t, errors.Is(err, ErrMalformedPattern))

	rs, err := NewRuleSet(Rule{Name: "a", Pattern: Any(FieldSize), Produce: produce})
	require.NoError(t, err)
	all := rs.All()
	all[0].Name = "changed"
	assert.Equal(t, "a", rs.All()[0].Name)
}
