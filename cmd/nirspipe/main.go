package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/nirslab/nirspipe/cmd/nirspipe/subcommands/common"
	subconvert "github.com/nirslab/nirspipe/cmd/nirspipe/subcommands/convert"
	subrender "github.com/nirslab/nirspipe/cmd/nirspipe/subcommands/render"
	subvalidate "github.com/nirslab/nirspipe/cmd/nirspipe/subcommands/validate"
	subversion "github.com/nirslab/nirspipe/cmd/nirspipe/subcommands/version"
	"github.com/nirslab/nirspipe/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := log.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	convert := try.To(subconvert.New()).OrFatal(logger)
	render := try.To(subrender.New()).OrFatal(logger)
	validate := try.To(subvalidate.New()).OrFatal(logger)
	version := try.To(subversion.New()).OrFatal(logger)

	nirspipe := try.To(
		flarc.NewCommandGroup(
			"NIRS pipeline format converter",
			common.CommonFlags{},
			flarc.WithSubcommand("convert", convert),
			flarc.WithSubcommand("render", render),
			flarc.WithSubcommand("validate", validate),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, nirspipe, flarc.WithHelp(true)))
}
