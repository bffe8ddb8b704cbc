package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/funil/apps/shared"
	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/pipeline"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	var out bytes.Buffer
	validate, _ := shared.NewValidator()
	return &commandLine{out: &out, validate: validate, logger: core.NopLogger()}, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func writeSeed(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_commandLine_run(t *testing.T) {
	invalid := writeSeed(t, `
opportunities:
  - title: Proposal
    cards:
      - {id: o1, name: Flute}
proposals:
  - title: Accepted
    cards:
      - {id: p1, opportunityId: o1}
      - {id: p2, opportunityId: o1}
`)

	tests := []cliTest{
		{name: "no command", args: []string{}, wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "bad flag", args: []string{"board", "-lol"}, wantErr: errHelp},
		{name: "unknown pipeline", args: []string{"board", "-pipeline", "users"}, wantErrStr: `unknown pipeline "users"`},
		{name: "check default dataset", args: []string{"check"}, wantOut: "dataset ok"},
		{name: "check invalid dataset", args: []string{"check", "-seed", invalid}, wantErrStr: "two accepted proposals"},
		{name: "check missing dataset", args: []string{"check", "-seed", filepath.Join(t.TempDir(), "nope.yaml")}, wantErrStr: "opening dataset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(t)
			err := cli.run(append([]string{"admin"}, tt.args...))
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantErrStr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrStr)
			default:
				require.NoError(t, err)
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_board(t *testing.T) {
	cli, out := setup(t)
	require.NoError(t, cli.run([]string{"admin", "board", "-pipeline", "opportunities"}))

	var cols []pipeline.Column[opportunity.Card]
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &cols))
	require.Len(t, cols, len(opportunity.Stages))
	for i, col := range cols {
		assert.Equal(t, opportunity.Stages[i], col.Title)
	}
}
