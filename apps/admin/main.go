package main

import (
	"log"
	"os"

	"github.com/trezcool/funil/apps/shared"
	"github.com/trezcool/funil/core"
	logsvc "github.com/trezcool/funil/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds), conf)
	logger.Enable(false)

	validate, _ := shared.NewValidator()
	cli := commandLine{
		out:      os.Stdout,
		validate: validate,
		logger:   logger,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}
