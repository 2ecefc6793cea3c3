package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/zerofinance/xwallet-console/sdk/authx"
	"golang.org/x/term"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to the xwallet console",
	Description: "Logs in with an employee number and password. Unless " +
		"--remember-me is used, the session lasts only as long as the current " +
		"terminal session.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Log into the API server at the specified address; defaults to " +
				"the address last logged in to",
		},
		&cli.StringFlag{
			Name:    flagEmployeeNo,
			Aliases: []string{"e"},
			Usage:   "Log in with the specified employee number",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage: "Specify the password for non-interactive login; prompted " +
				"for if omitted",
		},
		&cli.BoolFlag{
			Name:    flagRememberMe,
			Aliases: []string{"r"},
			Usage:   "Remember the session for 7 days across terminal sessions",
		},
	},
	Action: login,
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Log out of the xwallet console",
	Action: logout,
}

func login(c *cli.Context) error {
	employeeNo := c.String(flagEmployeeNo)
	password := c.String(flagPassword)

	env, err := getEnvironment(c, c.String(flagServer))
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	for strings.TrimSpace(employeeNo) == "" {
		if !interactive {
			return errors.Errorf("--%s is required", flagEmployeeNo)
		}
		if err := survey.AskOne(
			&survey.Input{
				Message: "Employee number",
			},
			&employeeNo,
		); err != nil {
			return err
		}
	}
	for password == "" {
		if !interactive {
			return errors.Errorf("--%s is required", flagPassword)
		}
		if err := survey.AskOne(
			&survey.Password{
				Message: "Password",
			},
			&password,
		); err != nil {
			return err
		}
	}

	if err := env.client.Sessions().Login(
		c.Context,
		authx.Credentials{
			EmployeeNo: employeeNo,
			Password:   password,
			RememberMe: c.Bool(flagRememberMe),
		},
	); err != nil {
		return loginFailure(err)
	}

	if err := saveConfig(
		env.settings,
		&config{
			APIAddress: env.apiAddress,
		},
	); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	user := env.store.Session().User
	fmt.Printf("You are logged in as %s (%s).\n", user.Username, user.EmployeeNo)
	return nil
}

func loginFailure(err error) error {
	loginErr := &authx.LoginError{}
	if !errors.As(err, &loginErr) {
		return err
	}
	msg := loginErr.Message
	if n := loginErr.Hint.RemainingAttempts; n != nil {
		msg = fmt.Sprintf("%s\n\n%d attempt(s) remain before the account is locked.", msg, *n)
	}
	if s := loginErr.Hint.LockoutSeconds; s != nil {
		msg = fmt.Sprintf(
			"%s\n\nThe account is locked. Try again in %s.",
			msg,
			time.Duration(*s)*time.Second,
		)
	}
	return errors.New(msg)
}

func logout(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("logout requires no arguments")
	}

	env, err := getEnvironment(c, "")
	if err != nil {
		return err
	}

	if err := env.client.Sessions().Logout(c.Context); err != nil {
		return err
	}

	fmt.Println("Logout was successful.")

	return nil
}
