package main

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/yourEmotion/blog/internal/config"
)

const (
	dbDriverFlag       = "db-driver"
	dbDSNFlag          = "db-dsn"
	dbSeedFlag         = "db-seed"
	dbDebugFlag        = "db-debug"
	logDevelopmentFlag = "log-development"

	portFlag        = "port"
	metricsPortFlag = "metrics-port"
	sslFlag         = "ssl"
)

// viperKeys maps each flag to the configuration key it overrides.
var viperKeys = map[string]string{
	dbDriverFlag:       "db.driver",
	dbDSNFlag:          "db.dsn",
	dbSeedFlag:         "db.seed",
	dbDebugFlag:        "db.debug",
	logDevelopmentFlag: "log.development",
	portFlag:           "http.port",
	metricsPortFlag:    "metrics.port",
	sslFlag:            "http.ssl",
}

// commonFlags are registered on every subcommand.
func commonFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		dbDriverFlag: &cobraflags.StringFlag{
			Name:  dbDriverFlag,
			Value: config.DriverPostgres,
			Usage: "storage driver: postgres, sqlite or memory",
		},
		dbDSNFlag: &cobraflags.StringFlag{
			Name:  dbDSNFlag,
			Value: "",
			Usage: "database DSN (defaults to POSTGRES_DSN or a local Postgres)",
		},
		dbSeedFlag: &cobraflags.BoolFlag{
			Name:  dbSeedFlag,
			Value: false,
			Usage: "preload sample posts into the memory driver",
		},
		dbDebugFlag: &cobraflags.BoolFlag{
			Name:  dbDebugFlag,
			Value: false,
			Usage: "log SQL statements",
		},
		logDevelopmentFlag: &cobraflags.BoolFlag{
			Name:  logDevelopmentFlag,
			Value: false,
			Usage: "human readable development logging",
		},
	}
}

func serveFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		portFlag: &cobraflags.IntFlag{
			Name:  portFlag,
			Value: 8080,
			Usage: "HTTP server port",
		},
		metricsPortFlag: &cobraflags.IntFlag{
			Name:  metricsPortFlag,
			Value: 2112,
			Usage: "Prometheus metrics port, 0 serves /metrics on the HTTP port",
		},
		sslFlag: &cobraflags.BoolFlag{
			Name:  sslFlag,
			Value: false,
			Usage: "enable SSL redirect and HSTS headers",
		},
	}
}

// bindFlags ties the flags of the command being executed to viper. An unset
// flag leaves env and defaults in charge.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range viperKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed bind flag %s: %w", name, err)
		}
	}
	return nil
}
