package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

var rootCmd = &cobra.Command{
	Use:   "solcheck",
	Short: "solcheck, contract assertion verifier based on constrained Horn clauses",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func main() {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	// yices2 requires yices_init() before any context/config is
	// touched; verifyCommand's default backend (YicesBackend) creates
	// one as soon as it runs, so the whole process brackets its
	// lifetime here rather than per-command.
	yices2.Init()
	defer yices2.Exit()

	rootCmd.AddCommand(versionCommand)
	rootCmd.AddCommand(verifyCommand)

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
