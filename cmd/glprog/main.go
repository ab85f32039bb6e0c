// Command glprog links the programs described in a TOML file and reports
// their active resources. It can watch shader sources and relink on change,
// and save program binaries.
//
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/db47h/glprog"
	"github.com/faiface/mainthread"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "glprog.toml",
		Usage:   "program description file",
	}
	overrideFlag = &cli.StringFlag{
		Name:  "override",
		Usage: "directory whose shader files take precedence over the shader path",
	}
	glVersionFlag = &cli.StringFlag{
		Name:  "gl",
		Usage: "OpenGL context version, as in 4.6 (default: highest available)",
	}
	compatFlag = &cli.BoolFlag{
		Name:  "compat",
		Usage: "request a compatibility profile context",
	}
	noCacheFlag = &cli.BoolFlag{
		Name:  "no-cache",
		Usage: "do not use the program binary cache",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "validate programs after linking and use a debug context",
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log link details",
	}
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored output",
	}
	outFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Value:   ".",
		Usage:   "output directory",
	}
	checkFlag = &cli.BoolFlag{
		Name:  "check",
		Usage: "reload saved binaries and compare their resources",
	}
)

var (
	linkCommand = &cli.Command{
		Name:      "link",
		Usage:     "Link programs and report their active resources",
		ArgsUsage: "[program...]",
		Action:    linkAction,
	}
	watchCommand = &cli.Command{
		Name:      "watch",
		Usage:     "Relink programs when their shader sources change",
		ArgsUsage: "[program...]",
		Action:    watchAction,
	}
	binaryCommand = &cli.Command{
		Name:      "binary",
		Usage:     "Save program binaries",
		ArgsUsage: "[program...]",
		Flags:     []cli.Flag{outFlag, checkFlag},
		Action:    binaryAction,
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "glprog",
		Usage: "link and inspect OpenGL shader programs",
		Flags: []cli.Flag{
			configFlag,
			overrideFlag,
			glVersionFlag,
			compatFlag,
			noCacheFlag,
			debugFlag,
			verboseFlag,
			noColorFlag,
		},
		Commands: []*cli.Command{linkCommand, watchCommand, binaryCommand},
		Before:   setup,
	}
}

func setup(c *cli.Context) error {
	level := slog.LevelWarn
	if c.Bool(verboseFlag.Name) {
		level = slog.LevelDebug
	}
	glprog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	glprog.Debug = c.Bool(debugFlag.Name)
	if c.Bool(noColorFlag.Name) {
		color.NoColor = true
	}
	return nil
}

func main() {
	var err error
	mainthread.Run(func() {
		err = newApp().Run(os.Args)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
