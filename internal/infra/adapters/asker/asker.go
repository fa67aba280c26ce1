// asker implements the ports.ForAsking interface. It is used to
// confirm publishing of feeds that differ from the copy in the bucket.
package asker

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/sa6mwa/podfeeds/internal/app/ports"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/logger"
	"golang.org/x/term"
)

type forAsking struct {
	dryrun     bool
	force      bool
	isTerminal func() bool
}

// New returns a ForAsking that answers no to every question when
// dryrun is set and yes when force is set. Otherwise the user is
// prompted, or the answer is no if stdout is not a terminal.
func New(dryrun, force bool) ports.ForAsking {
	return &forAsking{
		dryrun:     dryrun,
		force:      force,
		isTerminal: stdoutIsTerminal,
	}
}

func (p *forAsking) Ask(ctx context.Context, format string, a ...any) bool {
	l := logger.FromContext(ctx)
	question := fmt.Sprintf(format, a...)
	if p.dryrun {
		l.Info(question + " No (dry-run)")
		return false
	}
	if p.force {
		l.Info(question + " Yes (forced)")
		return true
	}
	return p.yes(ctx, question)
}

func (p *forAsking) yes(ctx context.Context, question string) bool {
	l := logger.FromContext(ctx)
	if !p.isTerminal() {
		l.Warn("Stdout is not a terminal, will answer no", "question", question)
		return false
	}
	choice := ""
	prompt := &survey.Select{
		Message: question,
		Options: []string{"No", "Yes", "Exit program"},
		Default: "Yes",
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		l.Warn("Prompt failed, will answer no", "error", err)
		return false
	}
	switch choice {
	case "Yes":
		return true
	case "Exit program":
		l.Warn("Exiting")
		os.Exit(0)
	}
	return false
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
