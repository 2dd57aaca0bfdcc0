package cmd

import (
	"fmt"
	"io"
	"os"

	"cmscore/app"
	"cmscore/config"
	"cmscore/notify"

	"github.com/urfave/cli/v2"
)

func loadConfig(ctx *cli.Context) (*config.TomlConfig, error) {
	path := ctx.String("config")
	if path == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func notifierFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "notifier",
		Aliases: []string{"n"},
		Value:   "console",
		Usage:   "Where comment notifications go (console, email, log)",
		EnvVars: []string{"CMS_NOTIFIER"},
	}
}

func newNotifier(kind string, out io.Writer) (notify.Notifier, error) {
	switch kind {
	case "console":
		return &notify.ConsoleNotifier{Out: out}, nil
	case "email":
		return &notify.EmailNotifier{Out: out}, nil
	case "log":
		return notify.NewLogNotifier(), nil
	default:
		return nil, fmt.Errorf("unknown notifier %q", kind)
	}
}

// seededApp builds an App from the configuration flags and fills it with the
// demo data.
func seededApp(ctx *cli.Context) (*app.App, *app.Seeded, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	notifier, err := newNotifier(ctx.String("notifier"), os.Stdout)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(cfg, nil, notifier)
	if err != nil {
		return nil, nil, err
	}
	seeded, err := app.Seed(a)
	if err != nil {
		return nil, nil, err
	}
	return a, seeded, nil
}
