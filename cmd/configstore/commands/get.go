package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omushpapa/configstore/cmd/configstore/app"
	"github.com/omushpapa/configstore/pkg/store"
)

type getOptions struct {
	*Options
	raw          bool
	defaultValue string
	save         bool
}

func newGetCommand(opts *Options) *cobra.Command {
	gopts := &getOptions{Options: opts}

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Read a value from the settings file",
		Long: `Read a value from the settings file. The stored text is evaluated to
its typed form: integers, floats, booleans, and null print as such.

With --default, a missing key is created with the given value before
being read back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args[0], gopts)
		},
	}

	cmd.Flags().BoolVar(&gopts.raw, "raw", false,
		"print the stored text without evaluation")
	cmd.Flags().StringVar(&gopts.defaultValue, "default", "",
		"value to store and return when the key is missing")
	cmd.Flags().BoolVar(&gopts.save, "save", false,
		"persist any created default to disk")

	return cmd
}

func runGet(key string, opts *getOptions) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	getOpts := store.GetOptions{
		Section: application.Section(),
		Raw:     opts.raw,
		Commit:  opts.save,
	}
	if opts.defaultValue != "" {
		getOpts.Default = opts.defaultValue
	}

	value, err := application.Store().Get(key, getOpts)
	if err != nil {
		return err
	}

	return application.WriteOutput(fmt.Sprintf("%v", value))
}
