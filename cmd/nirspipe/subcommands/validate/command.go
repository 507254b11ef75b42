package validate

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nirslab/nirspipe/cmd/nirspipe/subcommands/common"
	"github.com/nirslab/nirspipe/pkg/canonical"
	"github.com/nirslab/nirspipe/pkg/document"
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/nirslab/nirspipe/pkg/native"
	"github.com/nirslab/nirspipe/pkg/roundtrip"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

type Flag struct {
	Format string `flag:"format" alias:"f" help:"Document format: canonical or native.,metavar=FORMAT"`
	Deep   bool   `flag:"deep" help:"Also compare every value of the re-exported steps against the original."`
	Strict bool   `flag:"strict" help:"Treat deep differences as a failure, not just a report."`
}

const ARG_INPUT = "INPUT"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Check that a pipeline document survives the editor round trip.",
		Flag{Format: "canonical"},
		flarc.Args{
			{
				Name: ARG_INPUT, Required: true,
				Help: "Path to the pipeline document to validate.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Import the document into the editor model, export it again, and compare.

The default check is shallow: step count and branch/merge arity. With
--deep every parameter value is compared too and each difference is
reported with its path. Deep differences fail the command only under
--strict; some are expected canonicalizations (key packing, minimal
operator forms).
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

		in, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("opening %s: %w", input, err)
		}
		defer in.Close()

		var steps []any
		var tree []*model.Step
		var format roundtrip.Format
		switch flags.Format {
		case "canonical":
			d, err := document.LoadCanonical(in)
			if err != nil {
				return err
			}
			steps = d.Pipeline
			tree = d.Import(canonical.WithLogger(diagnostics))
			format = roundtrip.Canonical
		case "native":
			d, err := document.LoadNative(in)
			if err != nil {
				return err
			}
			steps = d.Steps
			tree = d.Import(native.WithLogger(diagnostics))
			format = roundtrip.Native
		default:
			return fmt.Errorf("%w: --format must be canonical or native", flarc.ErrUsage)
		}

		if err := roundtrip.CheckTree(tree); err != nil {
			return fmt.Errorf("step tree is malformed: %w", err)
		}

		report := roundtrip.Validate(steps, format)
		for _, d := range report.Differences {
			logger.Printf("difference: %s", d)
		}
		if !report.Valid {
			return fmt.Errorf("%s does not survive the round trip", input)
		}

		if flags.Deep {
			diffs := roundtrip.DeepDiff(steps, report.Exported)
			for _, d := range diffs {
				fmt.Fprintf(cl.Stdout(), "%s\n", d)
			}
			if flags.Strict && len(diffs) > 0 {
				return fmt.Errorf("%d deep difference(s) found", len(diffs))
			}
		}

		logger.Printf("%s: ok (%d steps)", input, len(steps))
		return nil
	}
}
