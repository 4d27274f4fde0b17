package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type membersCmd struct{}

func (*membersCmd) Name() string     { return "members" }
func (*membersCmd) Synopsis() string { return "List global members and their net balances" }
func (*membersCmd) Usage() string {
	return `members:
  List every global member with total expenses, payments and net balance.
`
}
func (c *membersCmd) SetFlags(f *flag.FlagSet) {}
func (c *membersCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if err := app.printTemplate("members.md", app.Repo.GlobalMemberBalances(ctx)); err != nil {
		return app.fail(err)
	}
	return subcommands.ExitSuccess
}

type addMemberCmd struct{}

func (*addMemberCmd) Name() string     { return "add-member" }
func (*addMemberCmd) Synopsis() string { return "Add a member to the global directory" }
func (*addMemberCmd) Usage() string {
	return `add-member <name>:
  Create a global member. Names are unique.
`
}
func (c *addMemberCmd) SetFlags(f *flag.FlagSet) {}
func (c *addMemberCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	name := strings.Join(f.Args(), " ")
	if strings.TrimSpace(name) == "" {
		return app.usage(f, "a member name is required")
	}
	member, err := app.Repo.CreateGlobalMember(ctx, name)
	if err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "Added %s (%s)\n", member.Name, member.ID)
	return subcommands.ExitSuccess
}
