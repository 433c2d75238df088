package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "bistro",
		Short:        "Restaurant menu and order management service",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newSeedCmd())
	return root
}
