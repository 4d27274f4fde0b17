package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"github.com/mmynk/gatherings/internal/report"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "Print the whole store as a portable token" }
func (*exportCmd) Usage() string {
	return `export [-o <file>]:
  Encode every gathering and member into a single text token.
`
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "write the token to this file instead of stdout")
}
func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	token, err := app.Repo.ExportData(ctx)
	if err != nil {
		return app.fail(err)
	}
	if c.output == "" {
		fmt.Fprintln(app.Out, token)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, []byte(token+"\n"), 0o600); err != nil {
		return app.fail(fmt.Errorf("failed to write %s: %w", c.output, err))
	}
	fmt.Fprintf(app.Out, "Exported to %s\n", c.output)
	return subcommands.ExitSuccess
}

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "Replace the whole store with an exported token" }
func (*importCmd) Usage() string {
	return `import [-i <file>] [<token>]:
  Replace all data with the content of a token. The token is read from the
  argument, from -i, or from stdin. Existing data is overwritten, not merged.
`
}
func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "read the token from this file")
}
func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)

	var token string
	switch {
	case f.NArg() > 1:
		return app.usage(f, "at most one token is accepted")
	case f.NArg() == 1:
		token = f.Arg(0)
	case c.input != "":
		b, err := os.ReadFile(c.input)
		if err != nil {
			return app.fail(fmt.Errorf("failed to read %s: %w", c.input, err))
		}
		token = string(b)
	default:
		b, err := io.ReadAll(app.In)
		if err != nil {
			return app.fail(fmt.Errorf("failed to read stdin: %w", err))
		}
		token = string(b)
	}
	if strings.TrimSpace(token) == "" {
		return app.usage(f, "an exported token is required")
	}

	data, err := app.Repo.ImportData(ctx, token)
	if err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "Imported %d gatherings and %d members\n", len(data.Gatherings), len(data.GlobalMembers))
	return subcommands.ExitSuccess
}

type reportCmd struct {
	start  string
	end    string
	csvDir string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "Report balances of gatherings in a date range" }
func (*reportCmd) Usage() string {
	return `report [-s YYYY-MM-DD] [-e YYYY-MM-DD] [-csv <dir>]:
  Print a per-member report of every gathering created in the range.
  With -csv the report is written as a CSV file into the directory instead.
`
}
func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "first creation date to include")
	f.StringVar(&c.end, "e", "", "last creation date to include")
	f.StringVar(&c.csvDir, "csv", "", "write the CSV report into this directory")
}
func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	rng, err := report.ParseRange(c.start, c.end)
	if err != nil {
		return app.fail(err)
	}
	rep, err := report.Build(app.Repo.Snapshot(ctx), rng)
	if err != nil {
		return app.fail(err)
	}

	if c.csvDir != "" {
		path := filepath.Join(c.csvDir, rng.Filename())
		if err := writeCSV(path, rep); err != nil {
			return app.fail(err)
		}
		fmt.Fprintf(app.Out, "Wrote %s\n", path)
		return subcommands.ExitSuccess
	}

	md, err := rep.Markdown()
	if err != nil {
		return app.fail(err)
	}
	app.printMarkdown(md)
	return subcommands.ExitSuccess
}

func writeCSV(path string, rep *report.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := rep.WriteCSV(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
