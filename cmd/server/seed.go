package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yourEmotion/blog/internal/config"
	"github.com/yourEmotion/blog/internal/service"
	"go.uber.org/zap"
)

// errSeedMemory is returned by seed for the memory driver, whose posts would
// be gone as soon as the command exits.
var errSeedMemory = errors.New("seed has no effect on the memory driver; run serve with --db-seed instead")

func newSeedCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample posts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, flush, err := setup(v)
			if err != nil {
				return err
			}
			defer flush()

			if cfg.Database.Driver == config.DriverMemory {
				return errSeedMemory
			}

			store, err := openStore(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, in := range service.FixtureInputs() {
				post, err := store.Create(cmd.Context(), in)
				if err != nil {
					return fmt.Errorf("failed seed post %q: %w", in.Title, err)
				}
				zap.L().Info("Seeded post", zap.Uint64("id", post.ID), zap.String("title", post.Title))
			}
			return nil
		},
	}
}
