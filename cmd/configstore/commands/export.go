package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omushpapa/configstore/cmd/configstore/app"
	"github.com/omushpapa/configstore/pkg/store"
)

type exportOptions struct {
	*Options
	noPrepend bool
}

func newExportCommand(opts *Options) *cobra.Command {
	eopts := &exportOptions{Options: opts}

	cmd := &cobra.Command{
		Use:   "export <json|env>",
		Short: "Export the settings file",
		Long: `Export the whole settings file. "json" writes an indented JSON
document to the configured output. "env" sets one SECTION_KEY variable
per option in the process environment of the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "json":
				return runExportJSON(eopts)
			case "env":
				return runExportEnv(eopts)
			default:
				return fmt.Errorf("unknown export target: %s", args[0])
			}
		},
	}

	cmd.Flags().BoolVar(&eopts.noPrepend, "no-prepend", false,
		"do not prefix variable names with the section name")

	return cmd
}

func runExportJSON(opts *exportOptions) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	document, err := application.Store().ToJSON(nil)
	if err != nil {
		return err
	}
	return application.WriteOutput(document)
}

func runExportEnv(opts *exportOptions) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	return application.Store().ToEnv(store.ToEnvOptions{
		NoPrepend: opts.noPrepend,
	})
}
