package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/mmynk/gatherings/internal/repository"
)

type expenseCmd struct{}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "Record an expense paid by a member" }
func (*expenseCmd) Usage() string {
	return `expense <gathering> <member> <amount>:
  Record money a member spent for the group. The amount must be positive.
`
}
func (c *expenseCmd) SetFlags(f *flag.FlagSet) {}
func (c *expenseCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 3 {
		return app.usage(f, "a gathering, a member and an amount are required")
	}
	amount, err := parseAmount(f.Arg(2))
	if err != nil {
		return app.fail(err)
	}
	member, err := app.resolveMember(ctx, f.Arg(1))
	if err != nil {
		return app.fail(err)
	}
	exp, err := app.Repo.AddExpense(ctx, f.Arg(0), member.ID, amount)
	if err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "%s spent %s (%s)\n", member.Name, exp.Amount.Fixed2(), exp.ID)
	return subcommands.ExitSuccess
}

type payCmd struct{}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "Record a payment by a member" }
func (*payCmd) Usage() string {
	return `pay <gathering> <member> <amount>:
  Record a payment. Positive amounts are paid into the pot, negative ones are received.
`
}
func (c *payCmd) SetFlags(f *flag.FlagSet) {}
func (c *payCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 3 {
		return app.usage(f, "a gathering, a member and an amount are required")
	}
	amount, err := parseAmount(f.Arg(2))
	if err != nil {
		return app.fail(err)
	}
	if amount.IsZero() {
		return app.fail(fmt.Errorf("%w: a payment cannot be zero", repository.ErrInvalidAmount))
	}
	member, err := app.resolveMember(ctx, f.Arg(1))
	if err != nil {
		return app.fail(err)
	}
	pay, err := app.Repo.RecordPayment(ctx, f.Arg(0), member.ID, amount)
	if err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "%s paid %s (%s)\n", member.Name, pay.Amount.Fixed2(), pay.ID)
	return subcommands.ExitSuccess
}

type settleCmd struct{}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "Zero one member's balance with a payment" }
func (*settleCmd) Usage() string {
	return `settle <gathering> <member>:
  Record the payment that brings the member's balance to zero.
`
}
func (c *settleCmd) SetFlags(f *flag.FlagSet) {}
func (c *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 2 {
		return app.usage(f, "a gathering and a member are required")
	}
	member, err := app.resolveMember(ctx, f.Arg(1))
	if err != nil {
		return app.fail(err)
	}
	pay, err := app.Repo.SettleMember(ctx, f.Arg(0), member.ID)
	if err != nil {
		return app.fail(err)
	}
	if pay == nil {
		fmt.Fprintf(app.Out, "%s is already settled\n", member.Name)
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(app.Out, "%s settled with %s (%s)\n", member.Name, pay.Amount.Fixed2(), pay.ID)
	return subcommands.ExitSuccess
}
