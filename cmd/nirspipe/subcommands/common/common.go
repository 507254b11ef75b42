package common

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nirslab/nirspipe/pkg/diag"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

// CommonFlags are shared by every subcommand through the command group.
type CommonFlags struct {
	Verbose bool `flag:"verbose" alias:"v" help:"Show converter diagnostics for every step, not just warnings."`
}

// Task is a subcommand body: it receives a CLI logger for user-facing
// messages and a zap logger for converter diagnostics.
type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	diagnostics *zap.Logger,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask adapts a Task to flarc, extracting the group's CommonFlags from
// the positional params and wiring up the loggers.
func NewTask[T any](task Task[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		diagnostics := diag.NewLogger(commonFlag.Verbose)
		defer diagnostics.Sync()

		return task(ctx, logger, diagnostics, cl, newpos)
	}
}
