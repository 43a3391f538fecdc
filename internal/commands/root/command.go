package root

import (
	"github.com/artuross/tinycompiler/internal/commands/compile"
	"github.com/artuross/tinycompiler/internal/meta/version"
	cli "github.com/urfave/cli/v2"
)

func NewCommand() *cli.App {
	return &cli.App{
		Name:    "tinycompiler",
		Usage:   "Transpiles (name arg ...) expressions into name(arg, ...); statements.",
		Version: version.Version,
		Commands: []*cli.Command{
			compile.NewCommand(),
		},
	}
}
