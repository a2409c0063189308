package commands

import (
	"github.com/spf13/cobra"

	"github.com/omushpapa/configstore/cmd/configstore/app"
	"github.com/omushpapa/configstore/pkg/store"
)

type setOptions struct {
	*Options
	save bool
}

func newSetCommand(opts *Options) *cobra.Command {
	sopts := &setOptions{Options: opts}

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a value to the settings file",
		Long: `Write a value to the settings file. Values containing %(name)s
references are validated against the target section at write time.

Changes stay in memory unless --save is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args[0], args[1], sopts)
		},
	}

	cmd.Flags().BoolVar(&sopts.save, "save", false,
		"persist the change to disk")

	return cmd
}

func runSet(key, value string, opts *setOptions) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	return application.Store().Set(key, value, store.SetOptions{
		Section: application.Section(),
		Commit:  opts.save,
	})
}
