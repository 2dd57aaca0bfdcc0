/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"cmscore/languages"

	"github.com/urfave/cli/v2"
)

func catalogFromFlags(ctx *cli.Context) (*languages.Catalog, float64, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, 0, err
	}
	catalog, err := languages.FromConfig(cfg.Languages)
	if err != nil {
		return nil, 0, err
	}
	return catalog, cfg.Detection.Threshold, nil
}

func languagesCmd() *cli.Command {
	return &cli.Command{
		Name:    "languages",
		Aliases: []string{"lang"},
		Usage:   "Inspect the language catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the configured languages and their aliases",
				Action: func(ctx *cli.Context) error {
					catalog, _, err := catalogFromFlags(ctx)
					if err != nil {
						return err
					}
					for _, lang := range catalog.List() {
						fmt.Printf("%-8s %-22s iso=%s aliases=%s\n", lang.Code, lang.Name, lang.Iso, strings.Join(lang.Aliases(), ","))
					}
					return nil
				},
			},
			{
				Name:      "resolve",
				Usage:     "Resolve a language code or alias",
				ArgsUsage: "<code>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 1 {
						return errors.New("please specify exactly one language code")
					}
					catalog, _, err := catalogFromFlags(ctx)
					if err != nil {
						return err
					}
					lang, err := catalog.Resolve(ctx.Args().First())
					if err != nil {
						return err
					}
					fmt.Println(lang)
					return nil
				},
			},
			{
				Name:      "detect",
				Usage:     "Detect which catalog language a text is written in",
				ArgsUsage: "<text>",
				Action: func(ctx *cli.Context) error {
					text := strings.Join(ctx.Args().Slice(), " ")
					catalog, threshold, err := catalogFromFlags(ctx)
					if err != nil {
						return err
					}
					lang, confidence, err := languages.NewDetector(catalog, threshold).Detect(text)
					if err != nil {
						return err
					}
					fmt.Printf("%s (confidence %.2f)\n", lang, confidence)
					return nil
				},
			},
		},
	}
}
