package consultations

import (
	"fmt"
	"strings"

	"methodology-advisor/internal/expert"
)

// RenderText formats a consultation for terminals and tool output.
func RenderText(c Consultation) string {
	var b strings.Builder

	var given []string
	for _, f := range expert.Fields {
		if v, ok := c.Fact.Get(f); ok {
			given = append(given, fmt.Sprintf("%s=%s", f, v))
		}
	}
	if len(given) == 0 {
		b.WriteString("Recommendations (no attributes given):\n\n")
	} else {
		fmt.Fprintf(&b, "Recommendations for %s:\n\n", strings.Join(given, ", "))
	}

	for i, rec := range c.Recommendations {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, rec.Approach, FormatConfidence(rec.Confidence))
		if rec.Explanation != "" {
			fmt.Fprintf(&b, "   %s\n", rec.Explanation)
		}
		if len(rec.Alternatives) > 0 {
			b.WriteString("   Alternatives:\n")
			for _, a := range rec.Alternatives {
				fmt.Fprintf(&b, "   - %s (%s): %s\n", a.Approach, FormatConfidence(a.Confidence), a.Explanation)
			}
		}
	}

	if msg := MissingMessage(c.Fact.Missing()); msg != "" {
		fmt.Fprintf(&b, "\n%s\n", msg)
	}
	return b.String()
}
