package main

import (
	"github.com/spf13/cobra"

	"traingame/internal/tui"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Type carriage digits into an interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(a.solver)
		},
	}
}
