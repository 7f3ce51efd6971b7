package main

import (
	"fmt"

	"github.com/urfave/cli"

	"sadaqah_go/internal/domain"
)

func runSadaqahList(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "BOX-ID")
	if nil != err {
		return err
	}

	page := domain.PageParams{Page: c.Int("page"), Limit: domain.SadaqahsPerPage}
	response, err := m.boot.Service.ListSadaqahs(m.ctx, args[0], page)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runSadaqahAdd(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "BOX-ID")
	if nil != err {
		return err
	}

	amount, err := domain.ParseAmount(c.String("amount"))
	if nil != err {
		return err
	}
	value, err := domain.ParseValue(c.String("value"))
	if nil != err {
		return err
	}
	if amount == nil && value == nil {
		return fmt.Errorf("either amount or value is required")
	}

	request := domain.AddSadaqahRequest{
		Amount:     amount,
		Value:      value,
		CurrencyID: c.String("currency"),
	}

	response, err := m.boot.Service.AddSadaqah(m.ctx, args[0], request)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runSadaqahDelete(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "BOX-ID", "SADAQAH-ID")
	if nil != err {
		return err
	}

	response, err := m.boot.Service.DeleteSadaqah(m.ctx, args[0], args[1])
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

// runSadaqahPreset is the quick-add: one request for the whole preset.
func runSadaqahPreset(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "BOX-ID")
	if nil != err {
		return err
	}

	var (
		preset domain.Preset
		found  bool
	)
	if id := c.String("preset"); id != "" {
		preset, found = m.boot.Presets.Get(m.ctx, id)
		if !found {
			return fmt.Errorf("preset not found: %q", id)
		}
	} else {
		preset, found = m.boot.Presets.Default(m.ctx)
		if !found {
			return fmt.Errorf("no default preset, use --preset")
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "preset: %s (%d x %s)\n", preset.Name, preset.Count(), preset.Value)
	}

	response, err := m.boot.Service.AddPresetSadaqah(m.ctx, args[0], preset)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
