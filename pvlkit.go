package main

import (
	"fmt"
	"os"

	"github.com/adampresley/sigint"
	"github.com/fatih/color"
	goFlags "github.com/jessevdk/go-flags"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"pvlkit/cfg"
	"pvlkit/cli"
	"pvlkit/label"
	"pvlkit/util/logger"
	"pvlkit/util/source"
	"pvlkit/util/tw"
)

func main() {
	// Init logger
	log := logger.New(logrus.InfoLevel)

	sigint.ListenForSIGINT(func() {
		log.Warn("Interrupted, exiting")
		os.Exit(130)
	})

	// Parse command line arguments
	log.Debug("Parsing command line arguments")
	flags, err := cli.Parse()
	if flags.Version {
		fmt.Println("v1.0.0")
		os.Exit(0)
	}
	if cli.IsErrOfType(err, goFlags.ErrHelp) {
		// Help message will be prined by go-flags
		os.Exit(0)
	}
	if err != nil {
		fail(err)
	}

	// Read program config
	cfg, isNewCfg, err := cfg.Init(log, flags.ProgramCfgPath)
	if err != nil {
		fail(err)
	}
	if isNewCfg {
		log.Infof("New config is written to %v, please verify it and start this program again", flags.ProgramCfgPath)
		os.Exit(0)
	}
	log.SetLevel(lo.Ternary(flags.LogLevel == cli.NoLogLevel, cfg.General.LogLevel, flags.LogLevel))

	// Load shared resources and process every input
	inputs := lo.Ternary(len(flags.Input) == 0, []string{source.Stdio}, flags.Input)
	repo := label.NewRepo(log, tw.NewTo(os.Stdout), cfg)
	job, err := repo.Prepare(label.Settings{
		Output:   flags.Output,
		Template: flags.Template,
		Tables:   flags.Table,
		Get:      flags.Get,
		List:     flags.List,
		JSON:     flags.JSON,
		Append:   flags.Append,
		Strict:   flags.Strict,
	})
	if err != nil {
		fail(err)
	}
	if err := repo.Batch(job, inputs); err != nil {
		fail(err)
	}
}

// fail prints <err> in red and exits with non-zero code
func fail(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("%v", err))
	os.Exit(1)
}
