/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"cmscore/app"
	"cmscore/models"

	"github.com/urfave/cli/v2"
)

func printLogs(a *app.App, user models.User, limit int) error {
	entries, err := a.ShowLogs(user, limit)
	if err != nil {
		return err
	}
	fmt.Println("Latest analytics logs:")
	for _, entry := range entries {
		fmt.Println(entry.DisplayLog())
	}
	return nil
}

func logsCmd() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Show the latest analytics log entries",
		Description: `Logs in as an administrator, runs the demo activity and prints
		the most recent analytics entries, oldest first.`,
		Flags: append(credentialFlags(),
			notifierFlag(),
			&cli.IntFlag{
				Name:    "limit",
				Usage:   "Number of entries to show. Uses show_logs_limit from the config when 0",
				EnvVars: []string{"CMS_LOGS_LIMIT"},
			},
		),
		Action: func(ctx *cli.Context) error {
			a, seeded, err := seededApp(ctx)
			if err != nil {
				return err
			}
			if err := simulate(a, seeded); err != nil {
				return err
			}
			user, err := login(ctx, a)
			if err != nil {
				return err
			}
			return printLogs(a, user, ctx.Int("limit"))
		},
	}
}
