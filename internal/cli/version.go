package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Mostra a versão",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printVersionInfo(cmd.OutOrStdout())
		},
	}
}

func printVersionInfo(w io.Writer) {
	fmt.Fprintf(w, "importa-empresas %s (%s, %s) %s/%s\n", version, commit, date, runtime.GOOS, runtime.GOARCH)
}
