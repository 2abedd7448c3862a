package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bankctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bankctl %s (%s/%s, %s)\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}
