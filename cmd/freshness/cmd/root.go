package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/henderiw/freshness/pkg/freshness"
)

const envPrefix = "FRESHNESS"

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("freshness failed")
		os.Exit(1)
	}
}

// NewRootCmd returns the freshness command tree. Flags, FRESHNESS_* env
// variables and the optional config file resolve through one viper instance,
// in that order of precedence.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "freshness",
		Short:         "check which ingredient IDs fall in the fresh ID ranges",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(v); err != nil {
				return err
			}
			return initLogger(v)
		},
	}

	rootCmd.PersistentFlags().String("config", "",
		"optional config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("input", "input.txt",
		"database file: fresh ID ranges, a blank line, then available ingredient IDs")
	rootCmd.PersistentFlags().String("log-level", "info",
		"log level (trace, debug, info, warn, error)")
	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("input", rootCmd.PersistentFlags().Lookup("input"))
	_ = v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(newCheckCmd(v))
	rootCmd.AddCommand(newTotalCmd(v))
	return rootCmd
}

func readConfig(v *viper.Viper) error {
	config := v.GetString("config")
	if config == "" {
		return nil
	}
	v.SetConfigFile(config)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("cannot read config file %s: %w", config, err)
	}
	return nil
}

func initLogger(v *viper.Viper) error {
	lvl, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", v.GetString("log-level"), err)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return nil
}

func loadDatabase(v *viper.Viper) (*freshness.Database, error) {
	input := v.GetString("input")
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	defer f.Close()

	log.Info().Str("input", input).Msg("loading database")
	return freshness.Parse(f, freshness.WithLogger(log.Logger))
}
