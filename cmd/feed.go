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

// printFeed prints the front page of a site in the requested language, or in
// each post's default language when code is empty.
func printFeed(a *app.App, siteId int64, code string) error {
	var lang *models.Language
	if code != "" {
		resolved, err := a.Catalog.Resolve(code)
		if err != nil {
			return err
		}
		lang = resolved
	}

	posts, err := a.SiteFeed(siteId)
	if err != nil {
		return err
	}
	site, err := a.DB.Sites.GetById(siteId)
	if err != nil {
		return err
	}

	fmt.Printf("Feed for %s (%s, %s):\n", site.Name, site.URL(), site.Template)
	for _, post := range posts {
		content, err := post.GetContent(lang)
		if err != nil {
			fmt.Printf("\n#%d has no %s content\n", post.Id, code)
			continue
		}
		fmt.Printf("\n#%d %s [%s]\n%s\n", post.Id, content.Title, content.Language.Code, content.Render())
	}
	fmt.Println()
	return nil
}

func feedCmd() *cli.Command {
	return &cli.Command{
		Name:  "feed",
		Usage: "Print the front page feed of the demo site",
		Flags: []cli.Flag{
			notifierFlag(),
			&cli.Int64Flag{
				Name:  "site",
				Value: 1,
				Usage: "Id of the site",
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"lang"},
				Usage:   "Language code or alias to render posts in",
			},
		},
		Action: func(ctx *cli.Context) error {
			a, seeded, err := seededApp(ctx)
			if err != nil {
				return err
			}
			if err := simulate(a, seeded); err != nil {
				return err
			}
			return printFeed(a, ctx.Int64("site"), ctx.String("language"))
		},
	}
}
