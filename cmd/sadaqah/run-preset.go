package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli"

	"sadaqah_go/internal/domain"
	"sadaqah_go/internal/preset"
)

func runPresetList(c *cli.Context) error {

	m := getMetadata(c)

	presets := m.boot.Presets.List(m.ctx)
	if c.Bool("json") {
		return printJson(m.w, presets)
	}
	return printPresetTable(m.w, presets)
}

// printPresetTable prints presets in display order with their shortcut slot.
func printPresetTable(w io.Writer, presets []domain.Preset) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tNAME\tVALUE\tAMOUNT\tTOTAL\tCURRENCY\tDEFAULT\tID")
	for i, p := range presets {
		slot := "-"
		if n, ok := preset.Slot(i); ok {
			slot = fmt.Sprint(n)
		}
		def := ""
		if p.IsDefault {
			def = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			slot, p.Name, p.Value, p.Count(), p.Total(), p.CurrencyID, def, p.ID)
	}
	return tw.Flush()
}

func runPresetAdd(c *cli.Context) error {

	m := getMetadata(c)

	value, err := domain.ParseValue(c.String("value"))
	if nil != err {
		return err
	}
	if value == nil {
		return fmt.Errorf("value is required")
	}
	amount, err := domain.ParseAmount(c.String("amount"))
	if nil != err {
		return err
	}

	p, err := m.boot.Presets.Add(m.ctx, c.String("name"), *value, c.String("currency"), amount)
	if nil != err {
		return err
	}

	return printJson(m.w, p)
}

func runPresetUpdate(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "PRESET-ID")
	if nil != err {
		return err
	}

	patch := domain.PresetPatch{
		Name:        optionalString(c, "name"),
		CurrencyID:  optionalString(c, "currency"),
		ClearAmount: c.Bool("clear-amount"),
	}
	if c.IsSet("value") {
		value, err := domain.ParseValue(c.String("value"))
		if nil != err {
			return err
		}
		if value == nil {
			return fmt.Errorf("value must not be empty")
		}
		patch.Value = value
	}
	if c.IsSet("amount") {
		amount, err := domain.ParseAmount(c.String("amount"))
		if nil != err {
			return err
		}
		patch.Amount = amount
	}
	if c.Bool("default") {
		def := true
		patch.IsDefault = &def
	}

	p, found, err := m.boot.Presets.Update(m.ctx, args[0], patch)
	if nil != err {
		return err
	}
	if !found {
		return fmt.Errorf("preset not found: %q", args[0])
	}

	return printJson(m.w, p)
}

func runPresetDelete(c *cli.Context) error {
	return presetByID(c, "deleted", func(m *metadata, id string) (bool, error) {
		return m.boot.Presets.Delete(m.ctx, id)
	})
}

func runPresetDefault(c *cli.Context) error {
	return presetByID(c, "default set", func(m *metadata, id string) (bool, error) {
		return m.boot.Presets.SetDefault(m.ctx, id)
	})
}

func runPresetUnsetDefault(c *cli.Context) error {

	m := getMetadata(c)

	if err := m.boot.Presets.UnsetDefault(m.ctx); nil != err {
		return err
	}

	fmt.Fprintln(m.w, "default cleared")
	return nil
}

func runPresetUp(c *cli.Context) error {
	return presetByID(c, "moved up", func(m *metadata, id string) (bool, error) {
		return m.boot.Presets.MoveUp(m.ctx, id)
	})
}

func runPresetDown(c *cli.Context) error {
	return presetByID(c, "moved down", func(m *metadata, id string) (bool, error) {
		return m.boot.Presets.MoveDown(m.ctx, id)
	})
}

// presetByID runs an id-addressed preset operation. A false result means
// the preset is missing or, for moves, already at the edge.
func presetByID(c *cli.Context, done string, op func(*metadata, string) (bool, error)) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "PRESET-ID")
	if nil != err {
		return err
	}

	changed, err := op(m, args[0])
	if nil != err {
		return err
	}
	if !changed {
		fmt.Fprintf(m.w, "%s: no change\n", args[0])
		return nil
	}

	fmt.Fprintf(m.w, "%s: %s\n", args[0], done)
	return nil
}
