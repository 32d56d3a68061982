package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/notargets/DGNest/nest"
	"github.com/notargets/DGNest/problem"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var styleTitle = lipgloss.NewStyle().Bold(true)

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		lib     = zap.NewNop()
	)

	root := &cobra.Command{
		Use:          "nestmat",
		Short:        "Inspect and apply nested block matrices",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
				lib = newLibLogger(cmd.ErrOrStderr())
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLoggers(ctx, newLogger(cmd.ErrOrStderr(), level), lib))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = lib.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDescribeCmd())
	root.AddCommand(newMultCmd())
	root.AddCommand(newDofsCmd())
	return root
}

// loadMatrix reads a problem file and builds its nested matrix.
func loadMatrix(ctx context.Context, path string, opts ...nest.Option) (*problem.Problem, *nest.NestedMatrix, error) {
	logger := loggerFromContext(ctx)
	logger.Debug("loading problem", "path", path)

	p, err := problem.Load(path)
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, nest.WithLogger(libLoggerFromContext(ctx)))
	nm, err := p.Build(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("build %s: %w", path, err)
	}
	logger.Debug("nested matrix ready", "n", nm.N(), "blocks", len(p.Blocks))
	return p, nm, nil
}

func newDescribeCmd() *cobra.Command {
	var blocks bool
	cmd := &cobra.Command{
		Use:   "describe [file]",
		Short: "Print the block structure of a nested matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, nm, err := loadMatrix(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleTitle.Render(args[0]))
			fmt.Fprint(out, nm.Describe(blocks))
			return nil
		},
	}
	cmd.Flags().BoolVar(&blocks, "blocks", false, "list every block with its format and extents")
	return cmd
}

func newMultCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "mult [file]",
		Short: "Compute y = A x for the x given in the problem file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, nm, err := loadMatrix(cmd.Context(), args[0], nest.WithWorkers(workers))
			if err != nil {
				return err
			}
			x, err := p.Input(nm)
			if err != nil {
				return err
			}
			y, err := nm.NewRangeVector()
			if err != nil {
				return err
			}
			if err = nm.Mult(x, y); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("multiplied", "rows", y.Size(), "norm", y.Norm())
			fmt.Fprintln(cmd.OutOrStdout(), formatFloats(y.RawCopy()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "block rows multiplied concurrently")
	return cmd
}

func newDofsCmd() *cobra.Command {
	var (
		idx     int
		columns bool
	)
	cmd := &cobra.Command{
		Use:   "dofs [file]",
		Short: "Print the global indices owned by one block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, nm, err := loadMatrix(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var dofs []int
			if columns {
				dofs, err = nm.GetColumnBlockDofs(idx)
			} else {
				dofs, err = nm.GetBlockDofs(idx)
			}
			if err != nil {
				return err
			}
			parts := make([]string, len(dofs))
			for k, d := range dofs {
				parts[k] = strconv.Itoa(d)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			return nil
		},
	}
	cmd.Flags().IntVarP(&idx, "block", "b", 0, "block index")
	cmd.Flags().BoolVar(&columns, "columns", false, "use the column partition")
	return cmd
}

func formatFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for k, v := range vals {
		parts[k] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
