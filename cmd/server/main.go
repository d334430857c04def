package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yourEmotion/blog/internal/config"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "blog",
		Short:         "Blog post service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(v, cmd.Flags())
		},
	}

	for _, cmd := range []*cobra.Command{
		newServeCommand(v),
		newMigrateCommand(v),
		newSeedCommand(v),
	} {
		cobraflags.RegisterMap(cmd, commonFlags())
		root.AddCommand(cmd)
	}
	return root
}

// setup loads configuration and installs the global zap logger. The returned
// func flushes the logger.
func setup(v *viper.Viper) (*config.Config, func(), error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}

	var logger *zap.Logger
	if cfg.LogDevelopment {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed init logger: %w", err)
	}
	restore := zap.ReplaceGlobals(logger)
	return cfg, func() {
		_ = logger.Sync()
		restore()
	}, nil
}
