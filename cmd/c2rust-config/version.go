package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	var verbose bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(opts.stdout, "c2rust-config version %s\n", version)

			if verbose {
				fmt.Fprintf(opts.stdout, "  Build time: %s\n", buildTime)
				fmt.Fprintf(opts.stdout, "  Git commit: %s\n", gitCommit)
				fmt.Fprintf(opts.stdout, "  Go version: %s\n", runtime.Version())
			}
		},
	}
	versionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show build details")
	return versionCmd
}
