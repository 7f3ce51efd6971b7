package main

import (
	"github.com/urfave/cli"
)

func runHealth(c *cli.Context) error {

	m := getMetadata(c)

	response, err := m.boot.Service.Health(m.ctx)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runStats(c *cli.Context) error {

	m := getMetadata(c)

	response, err := m.boot.Service.Stats(m.ctx)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runDashboard(c *cli.Context) error {

	m := getMetadata(c)

	dashboard, err := m.boot.Service.Dashboard(m.ctx)
	if nil != err {
		return err
	}

	return printJson(m.w, dashboard)
}
