package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	integral "github.com/JpHernandez277/Pendientes-John"
	"github.com/JpHernandez277/Pendientes-John/cas"
)

// ============================================================
// definite
// ============================================================

func newDefiniteCommand(a *app) *cobra.Command {
	var (
		lo, hi  float64
		method  string
		asJSON  bool
		asLaTeX bool
	)
	cmd := &cobra.Command{
		Use:   "definite EXPR",
		Short: "Integrate f(x) over [a, b]",
		Example: `  integral definite "x**2" --a 0 --b 1
  integral definite "sin(x)" --a 0 --b 3.14159 --method symbolic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := integral.ValidateBounds(lo, hi); err != nil {
				return err
			}
			m, err := integral.ParseMethod(method)
			if err != nil {
				return err
			}
			expr := args[0]
			log.WithFields(log.Fields{"expr": expr, "a": lo, "b": hi, "method": m}).Debug("definite integral")
			r, err := a.engine().DefiniteIntegral(expr, lo, hi, m)
			if err != nil {
				return errors.WithMessage(err, "definite integral")
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, r)
			}
			fmt.Fprintln(out, integral.DefiniteText(integral.Normalize(expr), r))
			fmt.Fprintf(out, "absolute area: %.6f\n", r.AbsArea())
			fmt.Fprintf(out, "mean value:    %.6f\n", r.MeanValue())
			fmt.Fprintf(out, "net area:      %s\n", r.Sign())
			if asLaTeX {
				if f, err := integral.ParseSymbolic(expr); err == nil {
					fmt.Fprintln(out, integral.DefiniteLaTeX(f, lo, hi, r.Value))
				}
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.Float64Var(&lo, "a", 0, "lower bound")
	fs.Float64Var(&hi, "b", 0, "upper bound")
	fs.StringVar(&method, "method", "numeric", "numeric (scipy) or symbolic (sympy)")
	fs.BoolVar(&asJSON, "json", false, "print the result as JSON")
	fs.BoolVar(&asLaTeX, "latex", false, "also print the LaTeX form")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	addQuadratureFlags(fs)
	return cmd
}

// ============================================================
// indefinite
// ============================================================

func newIndefiniteCommand(a *app) *cobra.Command {
	var verify, asLaTeX, asTree bool
	cmd := &cobra.Command{
		Use:     "indefinite EXPR",
		Short:   "Find an antiderivative of f(x)",
		Example: `  integral indefinite "x*exp(x)" --verify`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := integral.ParseSymbolic(args[0])
			if err != nil {
				return err
			}
			anti, err := integral.IndefiniteIntegral(args[0])
			if err != nil {
				return errors.WithMessage(err, "indefinite integral")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, integral.IndefiniteText(f, anti))
			if asLaTeX {
				fmt.Fprintln(out, integral.IndefiniteLaTeX(f, anti))
			}
			if asTree {
				js, err := cas.ToJSON(anti)
				if err != nil {
					return errors.Wrap(err, "encode antiderivative")
				}
				fmt.Fprintln(out, js)
			}
			if verify {
				deriv, ok := integral.Verify(anti)
				if !ok {
					log.WithField("antiderivative", anti.String()).Warn("could not differentiate antiderivative")
					return nil
				}
				fmt.Fprintf(out, "d/dx: %s\n", deriv)
				if asLaTeX {
					fmt.Fprintln(out, integral.VerifyLaTeX(anti, deriv))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "differentiate the result")
	cmd.Flags().BoolVar(&asLaTeX, "latex", false, "also print the LaTeX form")
	cmd.Flags().BoolVar(&asTree, "tree", false, "also print the antiderivative as a JSON tree")
	return cmd
}

// ============================================================
// sample
// ============================================================

func newSampleCommand(a *app) *cobra.Command {
	var (
		lo, hi       float64
		fill, asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "sample EXPR",
		Short: "Sample f(x) for plotting",
		Long: `sample evaluates f(x) at 1000 evenly spaced points over [-10, 10], or over
[a, b] widened by 20% on each side when bounds are given. --fill adds 200
points across [a, b] for shading the integral region.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts integral.SampleOptions
			if cmd.Flags().Changed("a") || cmd.Flags().Changed("b") {
				if err := integral.ValidateBounds(lo, hi); err != nil {
					return err
				}
				opts.Bounds = &integral.Bounds{A: lo, B: hi}
			}
			opts.Fill = fill
			ps := integral.Sample(args[0], opts)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, ps)
			}
			fmt.Fprintf(out, "# %d points, %d defined\n", len(ps.X), ps.Defined())
			writeSeries(out, ps.X, ps.Y)
			if ps.Fill != nil {
				fmt.Fprintf(out, "# fill, %d points\n", len(ps.Fill.X))
				writeSeries(out, ps.Fill.X, ps.Fill.Y)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.Float64Var(&lo, "a", 0, "lower integration bound")
	fs.Float64Var(&hi, "b", 0, "upper integration bound")
	fs.BoolVar(&fill, "fill", false, "add the region under the curve between the bounds")
	fs.BoolVar(&asJSON, "json", false, "print JSON (undefined points are null)")
	return cmd
}

func writeSeries(w io.Writer, xs, ys []float64) {
	for i := range xs {
		if math.IsNaN(ys[i]) {
			fmt.Fprintf(w, "%g\tundefined\n", xs[i])
			continue
		}
		fmt.Fprintf(w, "%g\t%g\n", xs[i], ys[i])
	}
}

// ============================================================
// examples
// ============================================================

func newExamplesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List sample integrands and their antiderivatives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tf(x)\t∫ f(x) dx")
			for _, ex := range integral.Examples() {
				fmt.Fprintf(tw, "%s\t%s\t%s + C\n", ex.Category, ex.Expr, ex.Antiderivative)
			}
			return tw.Flush()
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode result")
}
