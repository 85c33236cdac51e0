// Package expert is the rule-based inference core that maps project
// attributes to methodology recommendations.
package expert

// Infer evaluates every rule against fact in declaration order and returns
// the product of each rule that matched. Results are not ranked or
// deduplicated. When nothing matches the result is the single fallback
// recommendation, so the slice is never empty.
func Infer(rs *RuleSet, fact ProjectAttributes) []Recommendation {
	var out []Recommendation
	for _, r := range rs.All() {
		if Matches(r.Pattern, fact) {
			out = append(out, r.Produce(fact))
		}
	}
	if len(out) == 0 {
		return []Recommendation{NoRecommendation()}
	}
	return out
}

// Firing records whether a single rule matched a fact.
type Firing struct {
	Rule    string
	Pattern string
	Matched bool
}

// Explain reports, for every rule in order, whether it matches fact.
func Explain(rs *RuleSet, fact ProjectAttributes) []Firing {
	rules := rs.All()
	out := make([]Firing, 0, len(rules))
	for _, r := range rules {
		out = append(out, Firing{
			Rule:    r.Name,
			Pattern: r.Pattern.String(),
			Matched: Matches(r.Pattern, fact),
		})
	}
	return out
}

// Fired returns the names of the rules that match fact.
func Fired(rs *RuleSet, fact ProjectAttributes) []string {
	var names []string
	for _, f := range Explain(rs, fact) {
		if f.Matched {
			names = append(names, f.Rule)
		}
	}
	return names
}
