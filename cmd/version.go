package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/priyamkaur/winbroom/internal/core"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wb %s (%s) built %s\n", appVersion, appCommit, appDate)
		fmt.Printf("%s %s/%s\n", core.OSVersionString(), runtime.GOOS, runtime.GOARCH)
	},
}
