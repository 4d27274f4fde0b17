// Package cli implements the command-line front-end of the gatherings ledger.
//
// Every command receives the *App as its first Execute argument; the main
// package opens the store, builds the App and runs the commander.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/gatherings/internal/models"
	"github.com/mmynk/gatherings/internal/repository"
)

// App is the state shared by all commands.
type App struct {
	Repo *repository.Repository
	Out  io.Writer
	Err  io.Writer
	In   io.Reader

	// Plain disables terminal styling of markdown output.
	Plain bool
}

// NewApp returns an App writing to the standard streams.
func NewApp(repo *repository.Repository) *App {
	return &App{Repo: repo, Out: os.Stdout, Err: os.Stderr, In: os.Stdin}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&membersCmd{}, "members")
	c.Register(&addMemberCmd{}, "members")

	c.Register(&listCmd{}, "gatherings")
	c.Register(&createCmd{}, "gatherings")
	c.Register(&showCmd{}, "gatherings")
	c.Register(&joinCmd{}, "gatherings")
	c.Register(&leaveCmd{}, "gatherings")
	c.Register(&closeCmd{}, "gatherings")
	c.Register(&deleteCmd{}, "gatherings")

	c.Register(&expenseCmd{}, "ledger")
	c.Register(&payCmd{}, "ledger")
	c.Register(&settleCmd{}, "ledger")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")
	c.Register(&reportCmd{}, "data")
}

// appFrom extracts the App passed to commander.Execute.
func appFrom(args []interface{}) *App {
	if len(args) == 0 {
		panic("cli: commands must be executed with an *App argument")
	}
	return args[0].(*App)
}

func (a *App) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(a.Err, "Error:", err)
	return subcommands.ExitFailure
}

func (a *App) usage(f *flag.FlagSet, msg string) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "%s\n", msg)
	f.Usage()
	return subcommands.ExitUsageError
}

// resolveMember accepts a member ID or name.
func (a *App) resolveMember(ctx context.Context, ref string) (models.GlobalMember, error) {
	return a.Repo.ResolveMember(ctx, ref)
}

func parseAmount(s string) (models.Amount, error) {
	amount, err := models.NewAmount(s)
	if err != nil {
		return models.Amount{}, fmt.Errorf("%w: %v", repository.ErrInvalidAmount, err)
	}
	return amount, nil
}
