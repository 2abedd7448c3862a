package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootCmd = &cobra.Command{
	Use:   "bankctl",
	Short: "Question-bank maintenance for the math practice platform",
	Long: "Bankctl audits, repairs and reorganizes the JSON question banks\n" +
		"behind the elementary-math practice platform (grades 5-6).",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default: bankctl.yaml in . or ~/.config/bankctl)")
	pf.StringSlice("banks", []string{"data/questions.json"}, "Bank files to operate on (repeatable)")
	pf.String("db", "bankctl.db", "History database path (empty disables run recording)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "console", "Log format (console, json)")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(shuffleCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}

// viperForCmd binds the command's flags and environment to a fresh
// viper instance and reads the optional config file.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())
	_ = v.BindPFlags(cmd.InheritedFlags())

	v.SetEnvPrefix("BANKCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
	} else {
		v.SetConfigName("bankctl")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bankctl")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: reading config file:", err)
		}
	}
	return v
}

// newLogger builds the zap logger the pipeline commands share.
func newLogger(v *viper.Viper) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if v.GetString("log-format") != "json" {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return cfg.Build()
}
