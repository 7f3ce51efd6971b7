package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"
)

func getMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}

// checkArgs returns the positional arguments named in names, all required.
func checkArgs(c *cli.Context, names ...string) ([]string, error) {
	args := make([]string, len(names))
	for i, name := range names {
		a := strings.TrimSpace(c.Args().Get(i))
		if a == "" {
			return nil, fmt.Errorf("missing argument: %s", name)
		}
		args[i] = a
	}
	return args, nil
}

// optionalString returns nil for a flag that was not given.
func optionalString(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	s := c.String(name)
	return &s
}
