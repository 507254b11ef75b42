package render

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nirslab/nirspipe/cmd/nirspipe/subcommands/common"
	"github.com/nirslab/nirspipe/pkg/document"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

type Flag struct {
	Output string `flag:"output" alias:"o" help:"Write the result to this file instead of stdout.,metavar=PATH"`
}

const ARG_INPUT = "INPUT"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Render a native pipeline document as YAML.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_INPUT, Required: true,
				Help: "Path to the native pipeline document (JSON or YAML).",
			},
		},
		common.NewTask(Task()),
	)
}

func Task() common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		diagnostics *zap.Logger,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		input := cl.Args()[ARG_INPUT][0]

		in, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("opening %s: %w", input, err)
		}
		defer in.Close()

		d, err := document.LoadNative(in)
		if err != nil {
			return err
		}

		out := cl.Stdout()
		if o := cl.Flags().Output; o != "" {
			f, err := os.Create(o)
			if err != nil {
				return fmt.Errorf("creating %s: %w", o, err)
			}
			defer f.Close()
			out = f
		}
		return d.SaveYAML(out)
	}
}
