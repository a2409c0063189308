package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omushpapa/configstore/cmd/configstore/app"
	"github.com/omushpapa/configstore/pkg/store"
)

type unsetOptions struct {
	*Options
	wholeSection bool
	save         bool
}

func newUnsetCommand(opts *Options) *cobra.Command {
	uopts := &unsetOptions{Options: opts}

	cmd := &cobra.Command{
		Use:   "unset [key]",
		Short: "Remove a key or a whole section",
		Long: `Remove a key from the settings file. With --whole-section the entire
section named by --section is removed instead, and no key argument is
accepted. Removing something that does not exist is not an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if uopts.wholeSection {
				if len(args) != 0 {
					return fmt.Errorf("--whole-section takes no key argument")
				}
				return runUnsetSection(uopts)
			}
			if len(args) != 1 {
				return fmt.Errorf("requires a key argument")
			}
			return runUnsetKey(args[0], uopts)
		},
	}

	cmd.Flags().BoolVar(&uopts.wholeSection, "whole-section", false,
		"remove the entire section")
	cmd.Flags().BoolVar(&uopts.save, "save", false,
		"persist the change to disk")

	return cmd
}

func runUnsetKey(key string, opts *unsetOptions) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	return application.Store().RemoveKey(key, store.RemoveOptions{
		Section: application.Section(),
		Commit:  opts.save,
	})
}

func runUnsetSection(opts *unsetOptions) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	return application.Store().RemoveSection(application.Section(), store.RemoveOptions{
		Commit: opts.save,
	})
}
