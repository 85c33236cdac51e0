package main

import (
	"github.com/spf13/cobra"

	"methodology-advisor/internal/consultations"
	"methodology-advisor/internal/expert"
	"methodology-advisor/internal/shared/telemetry"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Recommend a project management methodology",
		Long: `advisor recommends project management methodologies from five
project attributes: size, complexity, deadline, team experience and risk.

Run it once from the terminal with "recommend", inspect the rule catalog with
"rules", or serve the advisor to an MCP client with "mcp".`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// stdout carries command output and the MCP stream.
		telemetry.SetOutput(cmd.ErrOrStderr())
		if *debugLogging {
			telemetry.SetLevel("debug")
		}
	}

	cmd.AddCommand(newRecommendCommand())
	cmd.AddCommand(newRulesCommand())
	cmd.AddCommand(newMCPCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

// newService builds a service without history; CLI runs are one-shot.
func newService() (*consultations.Service, error) {
	rules, err := expert.BuildRuleSet()
	if err != nil {
		return nil, err
	}
	return consultations.NewService(rules, nil), nil
}
