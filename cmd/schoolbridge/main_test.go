package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSeedCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "schoolbridge",
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Value: 50,
					},
				},
			},
		},
	}

	t.Run("missing db flag fails", func(t *testing.T) {
		err := app.Run([]string{"schoolbridge", "seed", "--file", "/tmp/test.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("missing file flag fails", func(t *testing.T) {
		err := app.Run([]string{"schoolbridge", "seed", "--db", "/tmp/test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file")
	})

	t.Run("batch-size has default value of 50", func(t *testing.T) {
		cmd := app.Commands[0]
		var batchFlag *cli.IntFlag
		for _, f := range cmd.Flags {
			if intFlag, ok := f.(*cli.IntFlag); ok && intFlag.Name == "batch-size" {
				batchFlag = intFlag
				break
			}
		}
		require.NotNil(t, batchFlag)
		assert.Equal(t, 50, batchFlag.Value)
	})
}

func TestSetupLogger(t *testing.T) {
	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO", "Debug"} {
			assert.NoError(t, setupLogger(newContext(level)), level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
