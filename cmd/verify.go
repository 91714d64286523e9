package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"solcheck/internal/ast"
	"solcheck/internal/chc"
	"solcheck/internal/diagnostic"
	"solcheck/internal/horn"
	"solcheck/internal/solidity"
)

var (
	verifyFile    string
	verifyTimeout time.Duration
	verifySmtlib2 bool
)

var verifyCommand = &cobra.Command{
	Use:   "verify",
	Short: "prove or refute assert statements in a Solidity source file",
	Long:  "",
	RunE:  runVerify,
}

func init() {
	verifyCommand.Flags().StringVar(&verifyFile, "file", "", "Solidity source file to verify")
	verifyCommand.Flags().DurationVar(&verifyTimeout, "timeout", 10*time.Second, "per-query solver timeout (parsed, but not passed to either backend)")
	verifyCommand.Flags().BoolVar(&verifySmtlib2, "smtlib2", false, "emit SMT-LIB2 queries instead of solving directly")
	_ = verifyCommand.MarkFlagRequired("file")
}

func runVerify(cmd *cobra.Command, args []string) error {
	log.Infof("compiling %s", verifyFile)
	output, err := solidity.GetSolcJson(verifyFile)
	if err != nil {
		return errors.Wrap(err, "GetSolcJson")
	}
	rawAST, err := solidity.ExtractAST(output, verifyFile)
	if err != nil {
		return errors.Wrap(err, "ExtractAST")
	}
	unit, err := ast.FromSolc(rawAST)
	if err != nil {
		return errors.Wrap(err, "FromSolc")
	}

	var backend horn.Backend
	if verifySmtlib2 {
		backend = horn.NewSMTLib2Backend()
	} else {
		backend = horn.NewYicesBackend()
	}
	defer backend.Close()

	reporter := diagnostic.NewLogReporter()
	encoder := chc.NewEncoder(backend, reporter)
	log.Info("encoding source unit into Horn clauses")
	if err := encoder.Analyze(unit); err != nil {
		return errors.Wrap(err, "Analyze")
	}

	safe := encoder.SafeAssertions()
	fmt.Printf("proved safe: %d assertion(s)\n", len(safe))
	for id := range safe {
		fmt.Printf("  assert node %d: safe\n", id)
	}

	if queries := encoder.UnhandledQueries(); len(queries) > 0 {
		fmt.Printf("%d unhandled SMT-LIB2 quer(y/ies) written for offline solving\n", len(queries))
		for _, q := range queries {
			fmt.Println(q)
		}
	}
	return nil
}
