package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	integral "github.com/JpHernandez277/Pendientes-John"
	"github.com/JpHernandez277/Pendientes-John/internal/config"
)

// app carries the settings shared by every subcommand.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
}

func (a *app) engine() *integral.Engine {
	return a.cfg.Engine(log.StandardLogger())
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)
	config.BindEnv(a.v)

	root := &cobra.Command{
		Use:   "integral",
		Short: "Definite and indefinite integrals of f(x)",
		Long: `integral evaluates definite integrals numerically (adaptive Gauss-Legendre
quadrature) or symbolically (exact antiderivative), finds antiderivatives, and
samples functions for plotting.

Expressions use x, pi, e, + - * / ** (or ^), and sin cos tan exp log (or ln)
sqrt abs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (yaml, toml or json)")
	root.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text or json)")

	root.AddCommand(
		newDefiniteCommand(a),
		newIndefiniteCommand(a),
		newSampleCommand(a),
		newExamplesCommand(a),
		newServeCommand(a),
		newMCPCommand(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	for _, fs := range []*pflag.FlagSet{cmd.InheritedFlags(), cmd.LocalFlags()} {
		if err := config.BindFlags(a.v, fs); err != nil {
			return err
		}
	}
	if err := config.ReadFile(a.v, a.configFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return errors.WithMessage(err, "invalid configuration")
	}
	cfg.ApplyLogging(log.StandardLogger())
	a.cfg = cfg
	log.WithFields(log.Fields{
		"command":     cmd.Name(),
		"config_file": a.v.ConfigFileUsed(),
	}).Debug("configuration loaded")
	return nil
}

func addQuadratureFlags(fs *pflag.FlagSet) {
	q := integral.DefaultQuadrature()
	fs.Float64("abs-tol", q.AbsTol, "absolute error tolerance of the numeric method")
	fs.Float64("rel-tol", q.RelTol, "relative error tolerance of the numeric method")
	fs.Int("max-subdivisions", q.MaxSubdivisions, "subdivision budget of the numeric method")
}
