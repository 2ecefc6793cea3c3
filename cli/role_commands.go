package main

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"
)

var roleCommand = &cli.Command{
	Name:  "role",
	Usage: "Query console roles",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "Retrieve all roles",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: roleList,
		},
	},
}

func roleList(c *cli.Context) error {
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

	roles, err := env.client.Roles().List(c.Context)
	if err != nil {
		return err
	}

	if len(roles) == 0 {
		fmt.Println("No roles found.")
		return nil
	}

	if strings.ToLower(output) != "table" {
		return printStructured(output, roles, "list roles")
	}
	table := uitable.New()
	table.AddRow("ID", "CODE", "NAME", "USERS", "ENABLED?")
	for _, role := range roles {
		table.AddRow(
			role.ID,
			role.RoleCode,
			role.RoleName,
			role.UserCount,
			role.Status == 1,
		)
	}
	fmt.Println(table)
	return nil
}
