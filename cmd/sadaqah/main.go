package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"sadaqah_go/internal/app"
	"sadaqah_go/internal/fault"
	"sadaqah_go/internal/infra"
)

type metadata struct {
	boot    *app.Bootstrap
	ctx     context.Context
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx, os.Stdout, os.Stderr)

	if err := a.Run(os.Args); err != nil {
		fmt.Fprintf(a.ErrWriter, "error: %s\n", userMessage(err))
		stop()
		os.Exit(1)
	}
}

// userMessage shows the classified message for remote failures and the
// plain text for everything else (usage errors, local storage).
func userMessage(err error) string {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}

func newApp(ctx context.Context, w, e io.Writer) *cli.App {
	a := cli.NewApp()
	a.Name = "sadaqah"
	a.Usage = "track sadaqah donation boxes"
	a.Version = version

	a.Writer = w
	a.ErrWriter = e

	a.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " debug logging on stderr",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " read configuration from `FILE`",
		},
	}
	a.Commands = commands()

	a.Before = func(c *cli.Context) error {
		verbose := c.GlobalBool("verbose")

		// help needs no configuration
		command := c.Args().Get(0)
		if command == "" || command == "help" || command == "h" {
			return nil
		}

		boot := app.NewBootstrap()
		if err := boot.Initialize(ctx, c.GlobalString("config"), verbose); err != nil {
			return err
		}
		if verbose {
			infra.PrintBanner(c.App.ErrWriter, boot.Config)
		}

		c.App.Metadata["config"] = &metadata{
			boot:    boot,
			ctx:     ctx,
			verbose: verbose,
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	a.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		return m.boot.Close()
	}

	return a
}
