package main

import (
	"github.com/urfave/cli"
)

func pageFlag(name, usage string) cli.IntFlag {
	return cli.IntFlag{
		Name:  name,
		Value: 1,
		Usage: usage,
	}
}

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:   "health",
			Usage:  "check that the server is reachable",
			Action: runHealth,
		},
		{
			Name:   "stats",
			Usage:  "show totals across all boxes",
			Action: runStats,
		},
		{
			Name:   "dashboard",
			Usage:  "show boxes, stats, currencies and presets",
			Action: runDashboard,
		},
		{
			Name:  "box",
			Usage: "manage donation boxes",
			Subcommands: []cli.Command{
				{
					Name:  "list",
					Usage: "list boxes",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "sort-by, s",
							Value: "",
							Usage: " sort by `FIELD` [name|createdAt|count|totalValue]",
						},
						cli.StringFlag{
							Name:  "order, o",
							Value: "",
							Usage: " sort `ORDER` [asc|desc]",
						},
					},
					Action: runBoxList,
				},
				{
					Name:      "show",
					Usage:     "show a box with its sadaqahs and collections",
					ArgsUsage: "BOX-ID",
					Flags: []cli.Flag{
						pageFlag("page, p", " sadaqah `PAGE`"),
						pageFlag("collections-page", " collection `PAGE`"),
					},
					Action: runBoxShow,
				},
				{
					Name:  "create",
					Usage: "create a box",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "name, n",
							Value: "",
							Usage: "*box `NAME`",
						},
						cli.StringFlag{
							Name:  "description, d",
							Value: "",
							Usage: " optional `TEXT`",
						},
						cli.StringFlag{
							Name:  "currency",
							Value: "",
							Usage: " base currency `ID`",
						},
					},
					Action: runBoxCreate,
				},
				{
					Name:      "update",
					Usage:     "change the name, description or base currency of a box",
					ArgsUsage: "BOX-ID",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "name, n",
							Value: "",
							Usage: " new `NAME`",
						},
						cli.StringFlag{
							Name:  "description, d",
							Value: "",
							Usage: " new `TEXT`",
						},
						cli.StringFlag{
							Name:  "currency",
							Value: "",
							Usage: " new base currency `ID`",
						},
					},
					Action: runBoxUpdate,
				},
				{
					Name:      "delete",
					Usage:     "delete a box with its sadaqahs and collections",
					ArgsUsage: "BOX-ID",
					Action:    runBoxDelete,
				},
				{
					Name:      "empty",
					Usage:     "empty a box into a new collection",
					ArgsUsage: "BOX-ID",
					Action:    runBoxEmpty,
				},
				{
					Name:      "collections",
					Usage:     "list the collections of a box",
					ArgsUsage: "BOX-ID",
					Flags: []cli.Flag{
						pageFlag("page, p", " collection `PAGE`"),
					},
					Action: runBoxCollections,
				},
			},
		},
		{
			Name:  "sadaqah",
			Usage: "manage the sadaqahs in a box",
			Subcommands: []cli.Command{
				{
					Name:      "list",
					Usage:     "list the sadaqahs of a box",
					ArgsUsage: "BOX-ID",
					Flags: []cli.Flag{
						pageFlag("page, p", " `PAGE`"),
					},
					Action: runSadaqahList,
				},
				{
					Name:      "add",
					Usage:     "add sadaqahs to a box",
					ArgsUsage: "BOX-ID",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "amount, a",
							Value: "",
							Usage: " number of sadaqahs `N`",
						},
						cli.StringFlag{
							Name:  "value",
							Value: "",
							Usage: " value of each sadaqah `DECIMAL`",
						},
						cli.StringFlag{
							Name:  "currency",
							Value: "",
							Usage: " currency `ID` [box base currency]",
						},
					},
					Action: runSadaqahAdd,
				},
				{
					Name:      "delete",
					Usage:     "delete one sadaqah",
					ArgsUsage: "BOX-ID SADAQAH-ID",
					Action:    runSadaqahDelete,
				},
				{
					Name:      "preset",
					Usage:     "add sadaqahs from a preset",
					ArgsUsage: "BOX-ID",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "preset, p",
							Value: "",
							Usage: " preset `ID` [default preset]",
						},
					},
					Action: runSadaqahPreset,
				},
			},
		},
		{
			Name:  "currency",
			Usage: "manage currencies",
			Subcommands: []cli.Command{
				{
					Name:   "list",
					Usage:  "list currencies",
					Action: runCurrencyList,
				},
				{
					Name:      "show",
					Usage:     "show one currency",
					ArgsUsage: "CURRENCY-ID",
					Action:    runCurrencyShow,
				},
				{
					Name:  "create",
					Usage: "create a currency",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "code",
							Value: "",
							Usage: "*currency `CODE`",
						},
						cli.StringFlag{
							Name:  "name, n",
							Value: "",
							Usage: "*currency `NAME`",
						},
						cli.StringFlag{
							Name:  "symbol",
							Value: "",
							Usage: " display `SYMBOL`",
						},
						cli.StringFlag{
							Name:  "type",
							Value: "",
							Usage: " currency type `ID`",
						},
						cli.StringFlag{
							Name:  "usd-value",
							Value: "",
							Usage: " value in USD `DECIMAL`",
						},
					},
					Action: runCurrencyCreate,
				},
				{
					Name:      "delete",
					Usage:     "delete a currency",
					ArgsUsage: "CURRENCY-ID",
					Action:    runCurrencyDelete,
				},
				{
					Name:   "gold-rates",
					Usage:  "refresh gold based currency rates",
					Action: runGoldRates,
				},
			},
		},
		{
			Name:  "currency-type",
			Usage: "manage currency types",
			Subcommands: []cli.Command{
				{
					Name:   "list",
					Usage:  "list currency types",
					Action: runCurrencyTypeList,
				},
				{
					Name:      "show",
					Usage:     "show one currency type",
					ArgsUsage: "TYPE-ID",
					Action:    runCurrencyTypeShow,
				},
				{
					Name:  "create",
					Usage: "create a currency type",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "name, n",
							Value: "",
							Usage: "*type `NAME`",
						},
						cli.StringFlag{
							Name:  "description, d",
							Value: "",
							Usage: " optional `TEXT`",
						},
					},
					Action: runCurrencyTypeCreate,
				},
				{
					Name:      "delete",
					Usage:     "delete a currency type",
					ArgsUsage: "TYPE-ID",
					Action:    runCurrencyTypeDelete,
				},
			},
		},
		{
			Name:  "preset",
			Usage: "manage donation presets kept on this device",
			Subcommands: []cli.Command{
				{
					Name:  "list",
					Usage: "list presets in display order",
					Flags: []cli.Flag{
						cli.BoolFlag{
							Name:  "json, j",
							Usage: " print JSON instead of a table",
						},
					},
					Action: runPresetList,
				},
				{
					Name:   "add",
					Usage:  "add a preset",
					Flags:  presetFlags("*"),
					Action: runPresetAdd,
				},
				{
					Name:      "update",
					Usage:     "change a preset",
					ArgsUsage: "PRESET-ID",
					Flags: append(presetFlags(" "),
						cli.BoolFlag{
							Name:  "clear-amount",
							Usage: " remove the amount",
						},
						cli.BoolFlag{
							Name:  "default",
							Usage: " make this the default preset",
						},
					),
					Action: runPresetUpdate,
				},
				{
					Name:      "delete",
					Usage:     "delete a preset",
					ArgsUsage: "PRESET-ID",
					Action:    runPresetDelete,
				},
				{
					Name:      "default",
					Usage:     "make a preset the default",
					ArgsUsage: "PRESET-ID",
					Action:    runPresetDefault,
				},
				{
					Name:   "unset-default",
					Usage:  "clear the default preset",
					Action: runPresetUnsetDefault,
				},
				{
					Name:      "up",
					Usage:     "move a preset one place up",
					ArgsUsage: "PRESET-ID",
					Action:    runPresetUp,
				},
				{
					Name:      "down",
					Usage:     "move a preset one place down",
					ArgsUsage: "PRESET-ID",
					Action:    runPresetDown,
				},
			},
		},
		{
			Name:  "cache",
			Usage: "manage the local response cache",
			Subcommands: []cli.Command{
				{
					Name:   "clear",
					Usage:  "drop every cached response",
					Action: runCacheClear,
				},
			},
		},
		{
			Name:  "backup",
			Usage: "back up and restore local presets",
			Subcommands: []cli.Command{
				{
					Name:  "create",
					Usage: "write a backup of the presets",
					Flags: []cli.Flag{
						cli.IntFlag{
							Name:  "keep, k",
							Value: 5,
							Usage: " keep the newest `N` backups",
						},
					},
					Action: runBackupCreate,
				},
				{
					Name:   "restore",
					Usage:  "replace the presets with the newest backup",
					Action: runBackupRestore,
				},
			},
		},
	}
}

// presetFlags are shared by add and update; mark is "*" for required.
func presetFlags(mark string) []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "name, n",
			Value: "",
			Usage: mark + "preset `NAME`",
		},
		cli.StringFlag{
			Name:  "value",
			Value: "",
			Usage: mark + "value of each sadaqah `DECIMAL`",
		},
		cli.StringFlag{
			Name:  "currency",
			Value: "",
			Usage: mark + "currency `ID`",
		},
		cli.StringFlag{
			Name:  "amount, a",
			Value: "",
			Usage: " number of sadaqahs `N`",
		},
	}
}
