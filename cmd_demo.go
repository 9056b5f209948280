package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirkon/mindala/internal/config"
	"github.com/sirkon/mindala/internal/demo"
	"github.com/sirkon/mindala/internal/render"
	"github.com/sirkon/mindala/tracer"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		format  = config.OutputFormatText
		summary bool
		list    bool
	)

	cmd := &cobra.Command{
		Use:   "demo [scenario...]",
		Short: "Run built-in traced scenarios and print their graphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, sc := range demo.Scenarios() {
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", sc.Name, sc.Description)
				}
				return nil
			}

			if cmd.Flags().Changed("format") {
				a.cfg.Output.Format = format
			}
			if cmd.Flags().Changed("summary") {
				a.cfg.Output.Summary = summary
			}

			scs, err := demo.Lookup(args...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, sc := range scs {
				res, err := demo.Run(cmd.Context(), sc, a.log, tracer.WithUnwindOnPanic(a.cfg.Tracer.UnwindOnPanic))
				if err != nil {
					return err
				}
				a.log.Info("scenario done",
					zap.String("scenario", res.Name),
					zap.Any("value", res.Value),
					zap.Int("depth", res.Depth),
				)

				if a.cfg.Output.Format == config.OutputFormatText {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "# %s = %v\n", res.Name, res.Value)
				}
				if err := render.Write(out, a.cfg.Output.Format, res.Graph, a.cfg.Output.Summary); err != nil {
					return fmt.Errorf("render scenario %s: %w", res.Name, err)
				}
			}

			return nil
		},
	}

	cmd.Flags().Var(&format, "format", "output format: text, yaml or dot")
	cmd.Flags().BoolVar(&summary, "summary", false, "collapse repeated edges")
	cmd.Flags().BoolVar(&list, "list", false, "list available scenarios")

	return cmd
}
