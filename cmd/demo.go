/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"cmscore/app"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// simulate runs a small burst of reader activity against the demo site
func simulate(a *app.App, seeded *app.Seeded) error {
	reader, other := seeded.Users[1], seeded.Users[2]

	if _, err := a.AccessSite(reader, seeded.Site.Id); err != nil {
		return err
	}
	if _, err := a.AccessSite(other, seeded.Site.Id); err != nil {
		return err
	}
	for _, post := range seeded.Posts {
		if _, err := a.ViewPost(reader, post.Id); err != nil {
			return err
		}
	}
	if _, err := a.ViewPost(other, seeded.Posts[1].Id); err != nil {
		return err
	}
	if _, err := a.CommentOnPost(reader, seeded.Posts[1].Id, "Que lugar lindo!"); err != nil {
		return err
	}
	if err := a.SharePost(other, seeded.Posts[1].Id, "mastodon"); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"entries": a.Analytics.Len(),
	}).Debug("Simulated activity")
	return nil
}

func demoCmd() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Seed demo data, simulate activity and print the results",
		Description: `Seeds an admin, two users, a site with a picture and two
		bilingual posts. Then simulates readers accessing the site, viewing,
		commenting and sharing posts before printing the site report, the
		post reports, the front page feed and the latest analytics logs.`,
		Flags: []cli.Flag{
			notifierFlag(),
		},
		Action: func(ctx *cli.Context) error {
			a, seeded, err := seededApp(ctx)
			if err != nil {
				return err
			}
			if err := simulate(a, seeded); err != nil {
				return err
			}

			report, err := a.SiteReport(seeded.Admin, seeded.Site.Id)
			if err != nil {
				return err
			}
			fmt.Println(report)

			for _, post := range seeded.Posts {
				report, err := a.PostReport(seeded.Admin, post.Id)
				if err != nil {
					return err
				}
				fmt.Println(report)
			}

			if err := printFeed(a, seeded.Site.Id, ""); err != nil {
				return err
			}
			return printLogs(a, seeded.Admin, 0)
		},
	}
}
