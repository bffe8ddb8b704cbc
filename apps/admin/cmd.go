package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/funil/core"
	inmemdb "github.com/trezcool/funil/storage/database/inmem"
	"github.com/trezcool/funil/storage/seed"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	out      io.Writer
	validate *validator.Validate
	logger   core.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  board -pipeline opportunities|proposals|leads [-seed PATH] - print a pipeline as YAML")
	fmt.Fprintln(cli.out, "  check [-seed PATH] - validate a seed dataset")
	fmt.Fprintln(cli.out, "The embedded dataset is used when -seed is omitted.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	boardCmd := flag.NewFlagSet("board", flag.ContinueOnError)
	boardCmd.SetOutput(cli.out)
	boardPipeline := boardCmd.String("pipeline", inmemdb.PipelineOpportunities, "The pipeline to print: opportunities, proposals or leads.")
	boardSeed := boardCmd.String("seed", "", "Path of a YAML seed dataset.")

	checkCmd := flag.NewFlagSet("check", flag.ContinueOnError)
	checkCmd.SetOutput(cli.out)
	checkSeed := checkCmd.String("seed", "", "Path of a YAML seed dataset.")

	switch args[1] {
	case "board":
		if err := boardCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.board(*boardPipeline, *boardSeed)
	case "check":
		if err := checkCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.check(*checkSeed)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) load(path string) (*inmemdb.DB, error) {
	ds, err := seed.Load(path)
	if err != nil {
		return nil, err
	}
	db := inmemdb.Open()
	if err = seed.Apply(db, ds, cli.validate, cli.logger); err != nil {
		return nil, err
	}
	return db, nil
}

func (cli *commandLine) board(pipeline, path string) error {
	db, err := cli.load(path)
	if err != nil {
		return err
	}

	snap := db.Snapshot()
	var board interface{}
	switch pipeline {
	case inmemdb.PipelineOpportunities:
		board = snap.Opportunities
	case inmemdb.PipelineProposals:
		board = snap.Proposals
	case inmemdb.PipelineLeads:
		board = snap.Leads
	default:
		return pkgerrors.Errorf("unknown pipeline %q", pipeline)
	}

	enc := yaml.NewEncoder(cli.out)
	enc.SetIndent(2)
	if err = enc.Encode(board); err != nil {
		return pkgerrors.Wrap(err, "encoding board")
	}
	return enc.Close()
}

func (cli *commandLine) check(path string) error {
	db, err := cli.load(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "dataset ok")
	for _, name := range []string{inmemdb.PipelineOpportunities, inmemdb.PipelineProposals, inmemdb.PipelineLeads} {
		var total int
		for _, n := range db.Counts()[name] {
			total += n
		}
		fmt.Fprintf(cli.out, "  %s: %d\n", name, total)
	}
	return nil
}
