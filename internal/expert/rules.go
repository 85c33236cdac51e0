package expert

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Producer builds the recommendation for a fired rule. It must be pure.
type Producer func(ProjectAttributes) Recommendation

// Rule pairs a pattern with the recommendation it yields.
type Rule struct {
	Name    string
	Pattern Pattern
	Produce Producer
}

// RuleSet is an ordered, immutable collection of rules. It is safe to share
// between goroutines.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet validates each rule and returns them as a set in the given order.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	seen := make(map[string]bool, len(rules))
	out := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d: name is required", i)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("rule %q: duplicate name", r.Name)
		}
		seen[r.Name] = true
		if r.Produce == nil {
			return nil, fmt.Errorf("rule %q: producer is required", r.Name)
		}
		if err := Validate(r.Pattern); err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		out = append(out, r)
	}
	return &RuleSet{rules: out}, nil
}

// All returns the rules in declaration order.
func (rs *RuleSet) All() []Rule {
	if rs == nil {
		return nil
	}
	return append([]Rule(nil), rs.rules...)
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// BuildRuleSet compiles the embedded catalog.
func BuildRuleSet() (*RuleSet, error) {
	return ParseCatalog(catalogYAML)
}

// MustBuildRuleSet is BuildRuleSet for process start; it panics on error.
func MustBuildRuleSet() *RuleSet {
	rs, err := BuildRuleSet()
	if err != nil {
		panic(fmt.Sprintf("expert: build rule set: %v", err))
	}
	return rs
}

type catalogFile struct {
	Rules []catalogRule `yaml:"rules"`
}

type catalogRule struct {
	Name string          `yaml:"name"`
	When whenNode        `yaml:"when"`
	Then catalogProduces `yaml:"then"`
}

type whenNode struct {
	Equals map[string]string `yaml:"equals"`
	Any    string            `yaml:"any"`
	Absent string            `yaml:"absent"`
	And    *[]whenNode       `yaml:"and"`
	Or     *[]whenNode       `yaml:"or"`
	Not    *whenNode         `yaml:"not"`
}

type catalogProduces struct {
	Approach     string               `yaml:"approach"`
	Confidence   float64              `yaml:"confidence"`
	Explanation  string               `yaml:"explanation"`
	Alternatives []catalogAlternative `yaml:"alternatives"`
}

type catalogAlternative struct {
	Approach    string  `yaml:"approach"`
	Confidence  float64 `yaml:"confidence"`
	Explanation string  `yaml:"explanation"`
}

// ParseCatalog compiles a YAML rule catalog into a RuleSet.
func ParseCatalog(data []byte) (*RuleSet, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	rules := make([]Rule, 0, len(file.Rules))
	for i, cr := range file.Rules {
		pattern, err := cr.When.compile()
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, cr.Name, err)
		}
		produce, err := cr.Then.producer()
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, cr.Name, err)
		}
		rules = append(rules, Rule{Name: cr.Name, Pattern: pattern, Produce: produce})
	}
	return NewRuleSet(rules...)
}

func (n whenNode) compile() (Pattern, error) {
	set := 0
	if n.Equals != nil {
		set++
	}
	if n.Any != "" {
		set++
	}
	if n.Absent != "" {
		set++
	}
	if n.And != nil {
		set++
	}
	if n.Or != nil {
		set++
	}
	if n.Not != nil {
		set++
	}
	if set != 1 {
		return Pattern{}, fmt.Errorf("%w: node must set exactly one of equals/any/absent/and/or/not, got %d", ErrMalformedPattern, set)
	}

	switch {
	case n.Equals != nil:
		return compileEquals(n.Equals)
	case n.Any != "":
		return Any(Field(n.Any)), nil
	case n.Absent != "":
		return Absent(Field(n.Absent)), nil
	case n.And != nil:
		children, err := compileAll(*n.And)
		if err != nil {
			return Pattern{}, err
		}
		return And(children...), nil
	case n.Or != nil:
		children, err := compileAll(*n.Or)
		if err != nil {
			return Pattern{}, err
		}
		return Or(children...), nil
	default:
		child, err := n.Not.compile()
		if err != nil {
			return Pattern{}, err
		}
		return Not(child), nil
	}
}

func compileAll(nodes []whenNode) ([]Pattern, error) {
	out := make([]Pattern, 0, len(nodes))
	for _, node := range nodes {
		p, err := node.compile()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// compileEquals turns a field map into Equals predicates. A single entry is
// returned bare; several are joined with And in canonical field order.
func compileEquals(values map[string]string) (Pattern, error) {
	typed := make(map[Field]string, len(values))
	var unknown []string
	for k, v := range values {
		f := Field(k)
		if !f.Valid() {
			unknown = append(unknown, k)
			continue
		}
		typed[f] = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Pattern{}, fmt.Errorf("%w: unknown fields %v", ErrMalformedPattern, unknown)
	}
	if len(typed) == 0 {
		return Pattern{}, fmt.Errorf("%w: equals has no fields", ErrMalformedPattern)
	}
	p := Fact(typed)
	if len(p.Children) == 1 {
		return p.Children[0], nil
	}
	return p, nil
}

func (c catalogProduces) producer() (Producer, error) {
	alts := make([]Alternative, 0, len(c.Alternatives))
	for _, a := range c.Alternatives {
		alts = append(alts, Alternative{Approach: a.Approach, Confidence: a.Confidence, Explanation: a.Explanation})
	}
	rec, err := NewRecommendation(c.Approach, c.Confidence, c.Explanation, alts...)
	if err != nil {
		return nil, err
	}
	return func(ProjectAttributes) Recommendation {
		out := rec
		out.Alternatives = append([]Alternative{}, rec.Alternatives...)
		return out
	}, nil
}
