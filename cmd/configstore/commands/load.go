package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omushpapa/configstore/cmd/configstore/app"
	"github.com/omushpapa/configstore/pkg/store"
)

type loadOptions struct {
	*Options
	marker string
	prefix string
	save   bool
}

func newLoadCommand(opts *Options) *cobra.Command {
	lopts := &loadOptions{Options: opts}

	cmd := &cobra.Command{
		Use:   "load <json|env> [file]",
		Short: "Import settings from JSON or the environment",
		Long: `Import settings. "json" reads the given document; top-level keys
prefixed with the marker become sections, the rest land in --section.
"env" imports environment variables, optionally filtered by --prefix
into a section named after it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "json":
				if len(args) != 2 {
					return fmt.Errorf("load json requires a file argument")
				}
				return runLoadJSON(args[1], lopts)
			case "env":
				if len(args) != 1 {
					return fmt.Errorf("load env takes no file argument")
				}
				return runLoadEnv(lopts)
			default:
				return fmt.Errorf("unknown load source: %s", args[0])
			}
		},
	}

	cmd.Flags().StringVar(&lopts.marker, "marker", "",
		"section marker prefix for JSON keys (default \"@\")")
	cmd.Flags().StringVar(&lopts.prefix, "prefix", "",
		"only import environment variables with this prefix")
	cmd.Flags().BoolVar(&lopts.save, "save", false,
		"persist imported settings to disk")

	return cmd
}

func runLoadJSON(filename string, opts *loadOptions) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	err = application.Store().LoadJSON(filename, store.LoadJSONOptions{
		Section: application.Section(),
		Marker:  opts.marker,
	})
	if err != nil {
		return err
	}
	if opts.save {
		return application.Store().Save()
	}
	return nil
}

func runLoadEnv(opts *loadOptions) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	return application.Store().LoadEnv(store.LoadEnvOptions{
		Prefix: opts.prefix,
		Commit: opts.save,
	})
}
