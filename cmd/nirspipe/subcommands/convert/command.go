package convert

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nirslab/nirspipe/cmd/nirspipe/subcommands/common"
	"github.com/nirslab/nirspipe/pkg/canonical"
	"github.com/nirslab/nirspipe/pkg/document"
	"github.com/nirslab/nirspipe/pkg/native"
	"github.com/nirslab/nirspipe/pkg/utils/filewatch"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

type Flag struct {
	To     string `flag:"to" alias:"t" help:"Target format: canonical or native.,metavar=FORMAT"`
	Output string `flag:"output" alias:"o" help:"Write the result to this file instead of stdout.,metavar=PATH"`
	YAML   bool   `flag:"yaml" help:"Render native output as YAML instead of JSON."`
	Watch  bool   `flag:"watch" alias:"w" help:"Keep running and re-convert whenever the input file changes."`
}

const ARG_INPUT = "INPUT"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Convert a pipeline document between the canonical and native formats.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_INPUT, Required: true,
				Help: "Path to the pipeline document to convert.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Convert a pipeline document to the other format.

The source format follows from the target: converting to native reads a
canonical document, converting to canonical reads a native one (JSON or
YAML).

To convert a canonical pipeline to native YAML,

    {{ .Command }} --to native --yaml pipeline.json

With --watch the command keeps running and re-converts whenever the input
file is modified.
`),
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
		flags := cl.Flags()
		input := cl.Args()[ARG_INPUT][0]

		if flags.To != "canonical" && flags.To != "native" {
			return fmt.Errorf("%w: --to must be canonical or native", flarc.ErrUsage)
		}

		for {
			if err := convertOnce(input, flags, diagnostics, cl.Stdout()); err != nil {
				if !flags.Watch {
					return err
				}
				logger.Printf("conversion failed: %s", err)
			}

			if !flags.Watch {
				return nil
			}

			wctx, cancel, err := filewatch.UntilModifyContext(ctx, input)
			if err != nil {
				return fmt.Errorf("watching %s: %w", input, err)
			}
			<-wctx.Done()
			cancel()
			if ctx.Err() != nil {
				return nil
			}
			logger.Printf("%s changed; converting again", input)
		}
	}
}

func convertOnce(input string, flags Flag, diagnostics *zap.Logger, stdout io.Writer) error {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", input, err)
	}
	defer in.Close()

	out := stdout
	if flags.Output != "" {
		f, err := os.Create(flags.Output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flags.Output, err)
		}
		defer f.Close()
		out = f
	}

	switch flags.To {
	case "native":
		src, err := document.LoadCanonical(in)
		if err != nil {
			return err
		}
		dst := src.ToNative(canonical.WithLogger(diagnostics))
		if flags.YAML {
			return dst.SaveYAML(out)
		}
		return dst.SaveJSON(out)
	default:
		src, err := document.LoadNative(in)
		if err != nil {
			return err
		}
		return src.ToCanonical(native.WithLogger(diagnostics)).Save(out)
	}
}
