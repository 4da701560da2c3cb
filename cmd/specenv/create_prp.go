package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/specenv/internal/prp"
)

type createPRPFlags struct {
	template string
	feature  string
}

// newCreatePRPCmd creates the create-prp command.
func newCreatePRPCmd() *cobra.Command {
	var flags createPRPFlags
	cmd := &cobra.Command{
		Use:   "create-prp",
		Short: "Materialize the PRP template for the current feature",
		Long: `Materialize a PRP document from a {{TOKEN}} template.

The template (default .specify/templates/prp-template.md) is filled with
the feature's paths and written to prps/<feature>.md, replacing any
existing file. Paths that do not exist yet are marked " (missing)".

Placeholders:
  {{FEATURE_BRANCH}} {{FEATURE_NAME}} {{DATE}} {{REPO_ROOT}}
  {{FEATURE_DIR}} {{PRP_FILE}} {{FEATURE_SPEC}} {{IMPL_PLAN}} {{TASKS}}
  {{RESEARCH}} {{DATA_MODEL}} {{CONTRACTS_DIR}} {{QUICKSTART}}

Unknown placeholders are left in place and reported as a warning.

Examples:
  specenv create-prp                          # Use the current branch
  specenv create-prp --feature 042-add-export # Name the feature explicitly
  specenv create-prp --template ./my-prp.md   # Use another template`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreatePRP(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.template, "template", "", "Template path (default .specify/templates/prp-template.md)")
	cmd.Flags().StringVar(&flags.feature, "feature", "", "Feature identifier (default current branch)")
	return cmd
}

// runCreatePRP executes the create-prp command.
func runCreatePRP(cmd *cobra.Command, flags createPRPFlags) error {
	printer := newPrinter(cmd)

	resolver := newResolver(cmd, printer)
	resolver.FeatureOverride = flags.feature
	feature, err := resolver.Locate(cmd.Context())
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := prp.Create(feature, prp.Request{TemplatePath: flags.template})
	if err != nil {
		printer.Error(err)
		return err
	}

	if len(result.Unconsumed) > 0 {
		printer.Warn("template placeholders left without a value: %s", strings.Join(result.Unconsumed, ", "))
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"PRP_FILE":       result.Path,
			"FEATURE_BRANCH": result.Branch,
			"TEMPLATE":       result.Template,
			"UNCONSUMED":     nonNil(result.Unconsumed),
		})
	}

	printer.KeyValue("PRP_FILE", result.Path)
	printer.KeyValue("FEATURE_BRANCH", result.Branch)
	printer.KeyValue("TEMPLATE", result.Template)
	return nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
