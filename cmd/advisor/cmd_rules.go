package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalog in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			summaries := svc.RuleSummaries()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summaries)
			}
			for i, r := range summaries {
				fmt.Fprintf(out, "%2d. %-32s %s\n    when %s\n", i+1, r.Name, r.Approach, r.Pattern)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}
