package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linemailhq/linemail/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:           "linemail",
		Short:         "Relay between a LINE group and a mailbox",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the relay server",
			Run: func(_ *cobra.Command, _ []string) {
				runServe()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(_ *cobra.Command, _ []string) {
				fmt.Println(version.GetInfo())
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
