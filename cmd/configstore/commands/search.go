package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omushpapa/configstore/cmd/configstore/app"
	"github.com/omushpapa/configstore/pkg/store"
)

type searchOptions struct {
	*Options
	exact      bool
	ignoreCase bool
	threshold  float64
}

func newSearchCommand(opts *Options) *cobra.Command {
	sopts := &searchOptions{Options: opts}

	cmd := &cobra.Command{
		Use:   "search <value>",
		Short: "Find the key holding a value",
		Long: `Search every section for the given value and print the best match as
"section key value". By default values are compared by similarity
ratio; --exact requires equality.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args[0], sopts)
		},
	}

	cmd.Flags().BoolVar(&sopts.exact, "exact", false,
		"require an exact value match")
	cmd.Flags().BoolVar(&sopts.ignoreCase, "ignore-case", false,
		"compare values case-insensitively")
	cmd.Flags().Float64Var(&sopts.threshold, "threshold", store.DefaultSearchThreshold,
		"minimum similarity ratio, between 0 and 1")

	return cmd
}

func runSearch(value string, opts *searchOptions) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	match, err := application.Store().Search(value, store.SearchOptions{
		ExactMatch: opts.exact,
		IgnoreCase: opts.ignoreCase,
		Threshold:  opts.threshold,
	})
	if err != nil {
		return err
	}
	if match == nil {
		return fmt.Errorf("no match for %q", value)
	}

	return application.WriteOutput(fmt.Sprintf("%s %s %v", match.Section, match.Key, match.Value))
}
