package cli

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pascal910107/objectid"
	"github.com/pascal910107/objectid/internal/config"
)

type ctxKey string

const appKey ctxKey = "app"

// app carries everything a subcommand needs after config resolution.
type app struct {
	v   *viper.Viper
	cfg config.Config
	gen *objectid.Generator
	log *log.Logger

	create []objectid.CreateOption
}

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command. Generator options are
// forwarded to objectid.NewGenerator, which lets tests pin the random
// source and the clock.
func NewRootCmd(genOpts ...objectid.Option) *cobra.Command {
	var (
		cfgPath   string
		verbose   bool
		timestamp float64
	)

	cmd := &cobra.Command{
		Use:           "objectid",
		Short:         "Generate and inspect 12-byte ObjectId-style identifiers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			flags := cmd.Root().PersistentFlags()
			for _, key := range []string{"format", "alphabet", "count"} {
				if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
					return err
				}
			}
			if err := config.Load(v); err != nil {
				return err
			}
			if err := config.CheckConfigValidity(v); err != nil {
				return err
			}

			logger := log.New(io.Discard, "", 0)
			if verbose {
				logger = log.New(cmd.ErrOrStderr(), "objectid: ", log.Ltime)
			}
			if used := v.ConfigFileUsed(); used != "" {
				logger.Printf("config file %s", used)
			}

			gen, err := objectid.NewGenerator(genOpts...)
			if err != nil {
				return err
			}

			a := &app{v: v, cfg: config.FromViper(v), gen: gen, log: logger}
			if flags.Changed("timestamp") {
				a.create = append(a.create, objectid.WithTimestamp(timestamp))
			}
			logger.Printf("format=%s count=%d", a.cfg.Format, a.cfg.Count)

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			if a.cfg.Format == config.FormatSlim {
				return printSlim(cmd, a)
			}
			return printHex(cmd, a)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (toml|yaml|json)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log resolved settings to stderr")
	pf.String("format", config.FormatHex, "output encoding when no subcommand is given (hex|slim)")
	pf.String("alphabet", objectid.DefaultAlphabet, "64-character alphabet for slim encoding")
	pf.IntP("count", "n", 1, "number of ids to print")
	pf.Float64VarP(&timestamp, "timestamp", "t", 0, "unix seconds to embed instead of the current time")

	cmd.AddCommand(newHexCmd())
	cmd.AddCommand(newSlimCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func getApp(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey).(*app)
	if !ok {
		return nil, errors.New("internal error: app not initialized")
	}
	return a, nil
}
