package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/go/packages"

	"github.com/sirkon/mindala/internal/globalreads"
)

var errFindings = errors.New("tracked functions bypass the tracer")

func newVetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "vet [packages...]",
		Short: "Check packages for tracked functions reading package variables directly",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"./..."}
			}

			n, err := vet(cmd, a.log, args)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%d findings: %w", n, errFindings)
			}

			return nil
		},
	}
}

// vet runs the analyzer over patterns and prints findings. Returns their count.
func vet(cmd *cobra.Command, log *zap.Logger, patterns []string) (int, error) {
	pkgs, err := packages.Load(&packages.Config{
		Mode:    packages.LoadAllSyntax,
		Context: cmd.Context(),
	}, patterns...)
	if err != nil {
		return 0, fmt.Errorf("load packages: %w", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return 0, errors.New("packages contain errors")
	}
	log.Debug("packages loaded", zap.Int("count", len(pkgs)))

	graph, err := checker.Analyze([]*analysis.Analyzer{globalreads.Analyzer}, pkgs, &checker.Options{})
	if err != nil {
		return 0, fmt.Errorf("analyze packages: %w", err)
	}

	return printDiagnostics(cmd.OutOrStdout(), graph)
}

func printDiagnostics(w io.Writer, graph *checker.Graph) (int, error) {
	var count int
	for _, act := range graph.Roots {
		if act.Err != nil {
			return count, fmt.Errorf("analyze %s: %w", act.Package.PkgPath, act.Err)
		}

		for _, d := range act.Diagnostics {
			pos := act.Package.Fset.Position(d.Pos)
			if _, err := fmt.Fprintf(w, "%s: %s\n", pos, d.Message); err != nil {
				return count, fmt.Errorf("print diagnostic: %w", err)
			}
			count++
		}
	}

	return count, nil
}
