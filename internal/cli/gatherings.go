package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "List gatherings, newest first" }
func (*listCmd) Usage() string {
	return `list:
  List every gathering with its status and total expenses.
`
}
func (c *listCmd) SetFlags(f *flag.FlagSet) {}
func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if err := app.printTemplate("gatherings.md", gatheringRows(app.Repo.ListGatherings(ctx))); err != nil {
		return app.fail(err)
	}
	return subcommands.ExitSuccess
}

type createCmd struct {
	description string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "Create a gathering" }
func (*createCmd) Usage() string {
	return `create [-d <description>] <gathering>:
  Create an open gathering. The name is its unique identifier.
`
}
func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.description, "d", "", "free-form description")
}
func (c *createCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 1 {
		return app.usage(f, "exactly one gathering name is required")
	}
	g, err := app.Repo.CreateGathering(ctx, f.Arg(0), c.description)
	if err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "Created gathering %s\n", g.ID)
	return subcommands.ExitSuccess
}

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "Show a gathering with balances and suggested transfers" }
func (*showCmd) Usage() string {
	return `show <gathering>:
  Print totals, per-member balances and who should pay whom.
`
}
func (c *showCmd) SetFlags(f *flag.FlagSet) {}
func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 1 {
		return app.usage(f, "exactly one gathering is required")
	}
	if err := app.showGathering(ctx, f.Arg(0)); err != nil {
		return app.fail(err)
	}
	return subcommands.ExitSuccess
}

func (a *App) showGathering(ctx context.Context, id string) error {
	g, balances, err := a.Repo.GatheringWithBalances(ctx, id)
	if err != nil {
		return err
	}
	return a.printTemplate("gathering.md", newGatheringView(g, balances))
}

type joinCmd struct{}

func (*joinCmd) Name() string     { return "join" }
func (*joinCmd) Synopsis() string { return "Add members to a gathering" }
func (*joinCmd) Usage() string {
	return `join <gathering> <member>...:
  Add one or more global members, by ID or name, to an open gathering.
`
}
func (c *joinCmd) SetFlags(f *flag.FlagSet) {}
func (c *joinCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() < 2 {
		return app.usage(f, "a gathering and at least one member are required")
	}
	gatheringID := f.Arg(0)
	var errs []error
	for _, ref := range f.Args()[1:] {
		member, err := app.resolveMember(ctx, ref)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ref, err))
			continue
		}
		if err := app.Repo.AddMemberToGathering(ctx, gatheringID, member.ID); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", member.Name, err))
			continue
		}
		fmt.Fprintf(app.Out, "%s joined %s\n", member.Name, gatheringID)
	}
	if err := errors.Join(errs...); err != nil {
		return app.fail(err)
	}
	return subcommands.ExitSuccess
}

type leaveCmd struct{}

func (*leaveCmd) Name() string     { return "leave" }
func (*leaveCmd) Synopsis() string { return "Remove a member from a gathering" }
func (*leaveCmd) Usage() string {
	return `leave <gathering> <member>:
  Remove a member and all of their expenses and payments from the gathering.
`
}
func (c *leaveCmd) SetFlags(f *flag.FlagSet) {}
func (c *leaveCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 2 {
		return app.usage(f, "a gathering and a member are required")
	}
	member, err := app.resolveMember(ctx, f.Arg(1))
	if err != nil {
		return app.fail(err)
	}
	if err := app.Repo.RemoveMemberFromGathering(ctx, f.Arg(0), member.ID); err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "%s left %s\n", member.Name, f.Arg(0))
	return subcommands.ExitSuccess
}

type closeCmd struct{}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "Close a gathering, settling every balance" }
func (*closeCmd) Usage() string {
	return `close <gathering>:
  Record a settlement payment for every unsettled member and close the gathering.
`
}
func (c *closeCmd) SetFlags(f *flag.FlagSet) {}
func (c *closeCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 1 {
		return app.usage(f, "exactly one gathering is required")
	}
	if _, err := app.Repo.CloseGathering(ctx, f.Arg(0)); err != nil {
		return app.fail(err)
	}
	if err := app.showGathering(ctx, f.Arg(0)); err != nil {
		return app.fail(err)
	}
	return subcommands.ExitSuccess
}

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "Delete a gathering" }
func (*deleteCmd) Usage() string {
	return `delete <gathering>:
  Delete a gathering and everything recorded in it. Deleting a missing gathering is not an error.
`
}
func (c *deleteCmd) SetFlags(f *flag.FlagSet) {}
func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 1 {
		return app.usage(f, "exactly one gathering is required")
	}
	if err := app.Repo.DeleteGathering(ctx, f.Arg(0)); err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "Deleted %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}
