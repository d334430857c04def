package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newMigrateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the posts table if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, flush, err := setup(v)
			if err != nil {
				return err
			}
			defer flush()

			store, err := openStore(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			zap.L().Info("Migration complete", zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}
