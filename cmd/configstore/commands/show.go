package commands

import (
	"github.com/spf13/cobra"

	"github.com/omushpapa/configstore/cmd/configstore/app"
)

func newShowCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the whole settings file",
		Long: `Display every section and option of the settings file in the
configured output format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts)
		},
	}

	return cmd
}

func runShow(opts *Options) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	rendered, err := application.FormatSnapshot()
	if err != nil {
		return err
	}
	return application.WriteOutput(rendered)
}
