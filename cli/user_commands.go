package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/zerofinance/xwallet-console/sdk/authx"
	"github.com/zerofinance/xwallet-console/sdk/meta"
	"golang.org/x/term"
)

var userCommand = &cli.Command{
	Name:  "user",
	Usage: "Query console users",
	Subcommands: []*cli.Command{
		{
			Name:  "get",
			Usage: "Retrieve a user",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Retrieve the specified user (required)",
					Required: true,
				},
				cliFlagOutput,
			},
			Action: userGet,
		},
		{
			Name:  "list",
			Usage: "Retrieve many users",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagKeyword,
					Aliases: []string{"q"},
					Usage: "Retrieve only users whose employee number, username, or " +
						"email match the specified keyword",
				},
				&cli.IntFlag{
					Name:  flagStatus,
					Usage: "Retrieve only users with the specified status (0 or 1)",
				},
				&cli.IntFlag{
					Name:  flagPage,
					Usage: "Start from the specified page",
					Value: 1,
				},
				&cli.IntFlag{
					Name:  flagSize,
					Usage: "Retrieve the specified number of users per page",
					Value: 20,
				},
				cliFlagOutput,
			},
			Action: userList,
		},
	},
}

func userList(c *cli.Context) error {
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

	selector := authx.UsersSelector{
		Keyword: c.String(flagKeyword),
	}
	if c.IsSet(flagStatus) {
		status := c.Int(flagStatus)
		selector.Status = &status
	}
	opts := meta.ListOptions{
		Page: c.Int(flagPage),
		Size: c.Int(flagSize),
	}

	for {
		users, err := env.client.Users().List(c.Context, selector, opts)
		if err != nil {
			return err
		}

		if len(users.Items) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		switch strings.ToLower(output) {
		case "table":
			table := uitable.New()
			table.AddRow("ID", "EMPLOYEE NO", "USERNAME", "EMAIL", "ROLES", "ENABLED?")
			for _, user := range users.Items {
				table.AddRow(
					user.ID,
					user.EmployeeNo,
					user.Username,
					user.Email,
					roleNames(user),
					user.Status == 1,
				)
			}
			fmt.Println(table)
		default:
			if err := printStructured(output, users, "list users"); err != nil {
				return err
			}
		}

		if users.Page >= users.TotalPages {
			break
		}

		// Exit after one page of output if this isn't a terminal
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			break
		}

		var shouldContinue bool
		fmt.Println()
		if err := survey.AskOne(
			&survey.Confirm{
				Message: fmt.Sprintf(
					"Page %d of %d (%d users in total). Fetch more?",
					users.Page,
					users.TotalPages,
					users.Total,
				),
			},
			&shouldContinue,
		); err != nil {
			return errors.Wrap(
				err,
				"error confirming if user wishes to continue",
			)
		}
		fmt.Println()
		if !shouldContinue {
			break
		}

		opts.Page = users.Page + 1
	}

	return nil
}

func userGet(c *cli.Context) error {
	id := c.Int64(flagID)
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

	user, err := env.client.Users().Get(c.Context, id)
	if err != nil {
		return err
	}

	if strings.ToLower(output) != "table" {
		return printStructured(output, user, "get user")
	}
	table := uitable.New()
	table.AddRow("ID", "EMPLOYEE NO", "USERNAME", "EMAIL", "ROLES", "ENABLED?", "CREATED")
	table.AddRow(
		user.ID,
		user.EmployeeNo,
		user.Username,
		user.Email,
		roleNames(user),
		user.Status == 1,
		user.CreatedAt,
	)
	fmt.Println(table)
	return nil
}

func roleNames(user authx.User) string {
	names := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		names[i] = role.RoleName
	}
	return strings.Join(names, ",")
}
