package main

import "github.com/urfave/cli/v2"

const (
	flagBrowse     = "browse"
	flagEmployeeNo = "employee-no"
	flagID         = "id"
	flagInsecure   = "insecure"
	flagKeyword    = "keyword"
	flagLocale     = "locale"
	flagLogLevel   = "log-level"
	flagOutput     = "output"
	flagPage       = "page"
	flagPassword   = "password"
	flagRememberMe = "remember-me"
	flagServer     = "server"
	flagSize       = "size"
	flagStatus     = "status"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: table, " +
			"yaml, json",
		Value: "table",
	}
)
