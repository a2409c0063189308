package commands

import (
	"fmt"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"

	"github.com/omushpapa/configstore/cmd/configstore/app"
)

func newItemsCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the options of one section",
		Long: `List every option of the section named by --section, with values
evaluated to their typed form, in the configured output format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItems(opts)
		},
	}

	return cmd
}

func runItems(opts *Options) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	section := application.Section()
	items, err := application.Store().GetItems(section)
	if err != nil {
		return err
	}
	if items == nil {
		return fmt.Errorf("no such section: %s", section)
	}

	document := orderedmap.New()
	document.Set(section, items)

	rendered, err := application.Formatter().Format(document)
	if err != nil {
		return err
	}
	return application.WriteOutput(rendered)
}
