package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runCacheClear(c *cli.Context) error {

	m := getMetadata(c)

	if err := m.boot.Service.ClearCache(m.ctx); nil != err {
		return err
	}

	fmt.Fprintln(m.w, "cache cleared")
	return nil
}

func runBackupCreate(c *cli.Context) error {

	m := getMetadata(c)

	keep := c.Int("keep")
	if keep <= 0 {
		return fmt.Errorf("invalid keep: %d", keep)
	}

	path, err := m.boot.Backup(m.ctx, keep)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "backup written: %s\n", path)
	return nil
}

func runBackupRestore(c *cli.Context) error {

	m := getMetadata(c)

	snap, err := m.boot.Restore(m.ctx)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "restored %d keys from snapshot %d\n", len(snap.Items), snap.TsUnix)
	}

	return printPresetTable(m.w, m.boot.Presets.List(m.ctx))
}
