package main

import (
	"github.com/urfave/cli/v2"
	"gitlab.com/aoterocom/AOOptionsTicket/helpers"
	"gitlab.com/aoterocom/AOOptionsTicket/ticket"
	"os"
)

func main() {
	cfg, err := helpers.LoadConfig()
	if err != nil {
		helpers.Logger.Fatalln(err)
	}
	if err := helpers.ConfigureLogger(cfg); err != nil {
		helpers.Logger.Fatalln(err)
	}

	app := &cli.App{
		Name:     "options-ticket",
		Usage:    "price 0x option orders, size collateral and watch the book",
		Commands: ticket.NewTicket(cfg).Commands(),
	}

	if err := app.Run(os.Args); err != nil {
		helpers.Logger.Errorln(err)
		os.Exit(1)
	}
}
