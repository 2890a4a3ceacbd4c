package main

import (
	"fmt"

	"github.com/elmdrive/elmdrive/deps"
	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps [entry]",
	Short: "List local source dependencies of an entry file",
	Args:  cobra.ExactArgs(1),
	Run:   runDeps,
}

func init() {
	depsCmd.Flags().StringSlice("root", nil, "Source root to resolve module names against (repeatable)")
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) {
	roots, _ := cmd.Flags().GetStringSlice("root")

	paths, err := deps.FindAllDependencies(args[0], roots...)
	if err != nil {
		fail("%v", err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}
