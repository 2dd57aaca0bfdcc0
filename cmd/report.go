/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"cmscore/app"
	"cmscore/models"

	"github.com/cqroot/prompt"
	"github.com/cqroot/prompt/input"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Value:   "admin",
			Usage:   "User to log in as",
			EnvVars: []string{"CMS_USERNAME"},
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Password of the user. Prompted for when empty",
			EnvVars: []string{"CMS_PASSWORD"},
		},
	}
}

// login authenticates the user named by the credential flags, asking for the
// password when none was given.
func login(ctx *cli.Context, a *app.App) (models.User, error) {
	password := ctx.String("password")
	if password == "" {
		var err error
		password, err = prompt.New().Ask("Password:").Input("", input.WithEchoMode(input.EchoNone))
		if err != nil {
			return models.User{}, err
		}
	}
	user, err := a.Login(ctx.String("username"), password)
	if err != nil {
		return models.User{}, fmt.Errorf("could not log in: %w", err)
	}
	return user, nil
}

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print analytics reports for the sites you manage",
		Description: `Logs in, runs the demo activity and prints a report for every
		site the user may manage. Pass --post to print a single post report
		instead.`,
		Flags: append(credentialFlags(),
			notifierFlag(),
			&cli.Int64Flag{
				Name:  "post",
				Usage: "Id of a post to report on",
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

			if postId := ctx.Int64("post"); postId != 0 {
				report, err := a.PostReport(user, postId)
				if err != nil {
					return err
				}
				fmt.Println(report)
				return nil
			}

			sites := lo.Filter(a.DB.Sites.List(), func(site models.Site, _ int) bool {
				return a.Guard.CheckAccess(user, site.Id) == nil
			})
			if len(sites) == 0 {
				fmt.Printf("%s does not manage any sites\n", user.Username)
				return nil
			}
			for _, site := range sites {
				report, err := a.SiteReport(user, site.Id)
				if err != nil {
					return err
				}
				fmt.Println(report)
			}
			return nil
		},
	}
}
