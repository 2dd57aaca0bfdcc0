/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "cms",
		Usage: "A multilingual content management core",
		Description: `A content management core with sites, multilingual posts,
		media, comments and per site analytics.

		All state lives in memory. The demo command seeds a site with users,
		media and posts, simulates some activity and prints the resulting
		reports so the rest of the commands have something to show.

		Flags can generally be set via environment variables, e.g.:

		--config => CMS_CONFIG=cms.toml
		--log-level => CMS_LOG_LEVEL=debug
		`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file. The embedded defaults are used when empty",
				EnvVars: []string{"CMS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"CMS_LOG_LEVEL"},
			},
		},
		Before: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			level := cfg.LogLevel
			if ctx.String("log-level") != "" {
				level = ctx.String("log-level")
			}
			parsed, err := log.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", level, err)
			}
			log.SetLevel(parsed)
			return nil
		},
		Commands: []*cli.Command{
			languagesCmd(),
			demoCmd(),
			reportCmd(),
			logsCmd(),
			feedCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}
