// Command powsim runs the P2P proof-of-work network simulator from a
// TOML configuration file (spec.md §6): one required positional
// argument, the path to the configuration file.
package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/shivansh1010/P2P-Crypto-Simulator/config"
	"github.com/shivansh1010/P2P-Crypto-Simulator/log"
	"github.com/shivansh1010/P2P-Crypto-Simulator/report"
	"github.com/shivansh1010/P2P-Crypto-Simulator/sim"
)

const (
	exitOK         = 0
	exitConfigErr  = 1
	exitReportErr  = 2
)

var logger = log.New("pkg", "cmd/powsim")

var app = cli.NewApp()

func init() {
	app.Name = "powsim"
	app.Usage = "discrete-event simulator of a P2P proof-of-work network"
	app.Version = "0.1.0"
	app.ArgsUsage = "<config.toml>"
	app.Action = run
}

func run(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		cli.ShowAppHelp(ctx)
		return cli.NewExitError("exactly one positional argument (config file) is required", exitConfigErr)
	}
	configPath := ctx.Args().Get(0)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Crit("failed to load configuration", "path", configPath, "err", err)
		return cli.NewExitError(fmt.Sprintf("configuration error: %v", err), exitConfigErr)
	}
	if cfg.Simulation.Debug {
		log.SetLevel(log.LvlDebug)
	}

	s := sim.NewSimulator(cfg)
	s.Run()

	if err := report.WriteAll(s, cfg.Simulation.OutputDir); err != nil {
		logger.Error("failed to write reports", "err", err)
		return cli.NewExitError(fmt.Sprintf("report error: %v", err), exitReportErr)
	}

	return nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		os.Exit(exitConfigErr)
	}
}
