package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"
	"github.com/zerofinance/xwallet-console/sdk/authx"
	"github.com/zerofinance/xwallet-console/sdk/session"
)

var whoamiCommand = &cli.Command{
	Name:  "whoami",
	Usage: "Show who you are logged in as",
	Flags: []cli.Flag{
		cliFlagOutput,
	},
	Action: whoami,
}

var sessionCommand = &cli.Command{
	Name:  "session",
	Usage: "Manage the current session",
	Subcommands: []*cli.Command{
		{
			Name: "refresh",
			Usage: "Reload the session from storage, discarding it if it has " +
				"expired",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: sessionRefresh,
		},
		{
			Name:   "validate",
			Usage:  "Ask the API server whether the session is still valid",
			Action: sessionValidate,
		},
	},
}

// sessionSummary is the printable summary of a session. The token itself is
// never printed.
type sessionSummary struct {
	User           *session.User `json:"user"`
	Scope          string        `json:"scope"`
	TokenExpiresAt *time.Time    `json:"tokenExpiresAt,omitempty"`
}

func summarize(store *session.Store) sessionSummary {
	sess := store.Session()
	summary := sessionSummary{
		User:  sess.User,
		Scope: store.Scope(),
	}
	if claims, err := authx.InspectToken(sess.Token); err == nil {
		summary.TokenExpiresAt = claims.ExpiresAt
	}
	return summary
}

func printSession(output string, store *session.Store) error {
	summary := summarize(store)
	if strings.ToLower(output) != "table" {
		return printStructured(output, summary, "whoami")
	}
	roleCodes := make([]string, len(summary.User.Roles))
	for i, role := range summary.User.Roles {
		roleCodes[i] = role.RoleCode
	}
	tokenExpiry := "unknown"
	if summary.TokenExpiresAt != nil {
		tokenExpiry = summary.TokenExpiresAt.Local().Format(time.RFC3339)
	}
	table := uitable.New()
	table.AddRow("ID", "EMPLOYEE NO", "USERNAME", "ROLES", "SCOPE", "TOKEN EXPIRES")
	table.AddRow(
		summary.User.ID,
		summary.User.EmployeeNo,
		summary.User.Username,
		strings.Join(roleCodes, ","),
		summary.Scope,
		tokenExpiry,
	)
	fmt.Println(table)
	return nil
}

func whoami(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	env, err := getEnvironment(c, "")
	if err != nil {
		return err
	}
	if err := requireSession(env); err != nil {
		return err
	}

	return printSession(output, env.store)
}

func sessionRefresh(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	env, err := getEnvironment(c, "")
	if err != nil {
		return err
	}
	env.store.Refresh()
	if err := requireSession(env); err != nil {
		return err
	}

	return printSession(output, env.store)
}

func sessionValidate(c *cli.Context) error {
	env, err := getEnvironment(c, "")
	if err != nil {
		return err
	}
	if err := requireSession(env); err != nil {
		return err
	}

	valid, err := env.client.Sessions().Validate(c.Context)
	if err != nil {
		return err
	}
	if !valid {
		env.store.Logout()
		fmt.Println(
			"The session is no longer valid and has been discarded. Please use " +
				"`xwallet login` to continue.",
		)
		return nil
	}
	fmt.Println("The session is valid.")
	return nil
}
