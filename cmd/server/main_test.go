package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourEmotion/blog/internal/config"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
}

func TestOpenStoreMemorySeeded(t *testing.T) {
	store, err := openStore(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory, Seed: true})
	require.NoError(t, err)
	defer store.Close()

	posts, err := store.ListPublished(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestOpenStoreSQLiteCreatesTable(t *testing.T) {
	store, err := openStore(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	defer store.Close()

	posts, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestSeedCommandWithFlags(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"seed", "--db-driver", "sqlite", "--db-dsn", ":memory:"})
	assert.NoError(t, root.Execute())
}

func TestSubcommandFlags(t *testing.T) {
	root := newRootCommand()

	for _, c := range root.Commands() {
		for _, name := range []string{dbDriverFlag, dbDSNFlag, dbSeedFlag, dbDebugFlag, logDevelopmentFlag} {
			assert.NotNil(t, c.Flags().Lookup(name), "%s --%s", c.Name(), name)
		}
	}

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	for _, name := range []string{portFlag, metricsPortFlag, sslFlag} {
		assert.NotNil(t, serve.Flags().Lookup(name), name)
	}
}

func TestSeedCommandRejectsMemoryDriver(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"seed", "--db-driver", "memory"})
	assert.ErrorIs(t, root.Execute(), errSeedMemory)
}
