package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pathwise version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "pathwise", resolveVersion())
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprintln(out, "go     ", info.GoVersion)
				fmt.Fprintln(out, "module ", info.Main.Path)
			}
		}
		return nil
	},
}

// resolveVersion falls back to the module version recorded by `go install`
// when no version was injected at link time.
func resolveVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "Also print Go toolchain and module path")
}
