package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/zerofinance/xwallet-console/internal/signals"
	"github.com/zerofinance/xwallet-console/internal/version"
)

func main() {
	app := cli.NewApp()
	app.Name = "xwallet"
	app.Usage = "Work with the xwallet console from the command line"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
		&cli.StringFlag{
			Name:    flagLocale,
			Aliases: []string{"l"},
			Usage: "Use the specified console locale when directing you to log " +
				"in again; defaults to XWALLET_DEFAULT_LOCALE",
		},
		&cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "Log at the specified level to stderr",
			Value: "warn",
		},
		&cli.BoolFlag{
			Name:    flagBrowse,
			Aliases: []string{"b"},
			Usage: "Use the system's default web browser to open the console " +
				"login page when a session is no longer accepted",
		},
	}
	app.Commands = []*cli.Command{
		loginCommand,
		logoutCommand,
		roleCommand,
		sessionCommand,
		userCommand,
		whoamiCommand,
	}
	fmt.Println()
	if err := app.RunContext(signals.Context(), os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
	fmt.Println()
}
