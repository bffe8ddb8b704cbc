package main

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/funil/apps/api/echo"
	"github.com/trezcool/funil/apps/di"
	"github.com/trezcool/funil/core"
	inmemdb "github.com/trezcool/funil/storage/database/inmem"
	"github.com/trezcool/funil/storage/seed"
)

func main() {
	conf := core.NewConfig()
	c, err := di.New(conf, nil)
	must(err)

	must(c.Invoke(func(logger core.Logger, server *echoapi.Server, db *inmemdb.DB, validate *validator.Validate) {
		// =========================================================================
		// Start API Service

		logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build), map[string]interface{}{
			"env":     conf.Env,
			"address": conf.Server.Address,
		})
		defer logger.Info("Application stopped")

		go func() {
			server.Start()
		}()

		if conf.Seed.Watch && conf.Seed.Path != "" {
			w, err := seed.NewWatcher(conf.Seed.Path, conf.Seed.Debounce, db, validate, logger)
			if err != nil {
				logger.Fatal(fmt.Sprintf("could not watch dataset: %v", err), err)
			}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go w.Run(ctx)
		}

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
