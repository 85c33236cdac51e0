package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"methodology-advisor/internal/consultations"
	"methodology-advisor/internal/expert"
)

type recommendOptions struct {
	values  map[expert.Field]*string
	json    bool
	explain bool
}

func newRecommendCommand() *cobra.Command {
	opts := &recommendOptions{values: make(map[expert.Field]*string, len(expert.Fields))}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend methodologies for a project",
		Long: `Recommend methodologies for a project described by flags.

Omitted attributes are treated as unknown. Values are matched case-insensitively.`,
		Example: `  advisor recommend --size small --complexity low --deadline flexible --team-experience high
  advisor recommend --complexity medium --deadline strict --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, opts)
		},
	}

	flags := cmd.Flags()
	for _, f := range expert.Fields {
		opts.values[f] = flags.String(flagName(f), "", fmt.Sprintf("Project %s", flagLabel(f)))
	}
	flags.BoolVar(&opts.json, "json", false, "Print the result as JSON")
	flags.BoolVar(&opts.explain, "explain", false, "Show every rule and whether it fired")

	return cmd
}

func runRecommend(cmd *cobra.Command, opts *recommendOptions) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	raw := make(map[string]any, len(opts.values))
	for f, v := range opts.values {
		if cmd.Flags().Changed(flagName(f)) {
			raw[string(f)] = *v
		}
	}
	fact, err := consultations.ParseAttributes(raw)
	if err != nil {
		return err
	}

	c := svc.Recommend(cmd.Context(), fact, "")
	out := cmd.OutOrStdout()

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(consultations.NewConsultationResponse(c))
	}

	fmt.Fprint(out, consultations.RenderText(c))
	if opts.explain {
		fmt.Fprintln(out, "\nRules:")
		for _, f := range expert.Explain(svc.Rules, fact) {
			mark := " "
			if f.Matched {
				mark = "x"
			}
			fmt.Fprintf(out, "  [%s] %s: %s\n", mark, f.Rule, f.Pattern)
		}
	}
	return nil
}

func flagName(f expert.Field) string {
	if f == expert.FieldTeamExperience {
		return "team-experience"
	}
	return string(f)
}

func flagLabel(f expert.Field) string {
	if f == expert.FieldTeamExperience {
		return "team experience"
	}
	return string(f)
}
