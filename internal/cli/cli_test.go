package cli

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/subcommands"

	"github.com/mmynk/gatherings/internal/repository"
	"github.com/mmynk/gatherings/internal/storage/memory"
)

var epoch = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

type testApp struct {
	*App
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	tick, seq := 0, 0
	repo := repository.New(memory.New(),
		repository.WithClock(func() time.Time {
			tick++
			return epoch.Add(time.Duration(tick) * time.Minute)
		}),
		repository.WithIDGenerator(func() string {
			seq++
			return strconv.Itoa(seq)
		}),
	)
	app := &App{
		Repo:  repo,
		Out:   out,
		Err:   errOut,
		In:    strings.NewReader(""),
		Plain: true,
	}
	return &testApp{App: app, out: out, errOut: errOut}
}

// run executes cmd with args and returns its exit status and stdout. Output
// buffers are reset first.
func (a *testApp) run(t *testing.T, cmd subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	a.out.Reset()
	a.errOut.Reset()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	f.SetOutput(io.Discard)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cmd.Execute(context.Background(), f, a.App), a.out.String()
}

func (a *testApp) mustRun(t *testing.T, cmd subcommands.Command, args ...string) string {
	t.Helper()
	status, out := a.run(t, cmd, args...)
	if status != subcommands.ExitSuccess {
		t.Fatalf("%s %v: status %d, stderr %q", cmd.Name(), args, status, a.errOut.String())
	}
	return out
}

// dinner sets up gathering "dinner" with Alice, Bob and Carol where Alice spent 90.
func dinner(t *testing.T) *testApp {
	t.Helper()
	app := newTestApp(t)
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		app.mustRun(t, &addMemberCmd{}, name)
	}
	app.mustRun(t, &createCmd{}, "-d", "Friday dinner", "dinner")
	app.mustRun(t, &joinCmd{}, "dinner", "Alice", "Bob", "Carol")
	app.mustRun(t, &expenseCmd{}, "dinner", "Alice", "90")
	return app
}

func TestShowGathering(t *testing.T) {
	app := dinner(t)

	out := app.mustRun(t, &showCmd{}, "dinner")
	for _, want := range []string{
		"# dinner",
		"Friday dinner",
		"| 90.00 | 0.00 | 30.00 |",
		"| Alice | 90.00 | 0.00 | 60.00 | is owed |",
		"| Bob | 0.00 | 0.00 | -30.00 | owes |",
		"- Bob pays Alice 30.00",
		"- Carol pays Alice 30.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "(closed)") {
		t.Errorf("open gathering rendered as closed:\n%s", out)
	}
}

func TestCloseGathering(t *testing.T) {
	app := dinner(t)

	out := app.mustRun(t, &closeCmd{}, "dinner")
	if !strings.Contains(out, "# dinner (closed)") {
		t.Errorf("close output missing closed heading:\n%s", out)
	}
	if !strings.Contains(out, "| Alice | 90.00 | -60.00 | 0.00 | settled |") {
		t.Errorf("Alice should be settled after close:\n%s", out)
	}
	if strings.Contains(out, "Suggested transfers") {
		t.Errorf("closed gathering should have no transfers:\n%s", out)
	}

	status, _ := app.run(t, &expenseCmd{}, "dinner", "Bob", "10")
	if status != subcommands.ExitFailure {
		t.Errorf("expense on closed gathering: status %d, want failure", status)
	}
	if !strings.Contains(app.errOut.String(), "closed") {
		t.Errorf("stderr = %q, want closed error", app.errOut.String())
	}
}

func TestMembers(t *testing.T) {
	app := dinner(t)

	out := app.mustRun(t, &membersCmd{})
	for _, want := range []string{
		"| Alice | global-1 | 90.00 | 0.00 | 60.00 |",
		"| Carol | global-3 | 0.00 | 0.00 | -30.00 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("members output missing %q:\n%s", want, out)
		}
	}

	status, _ := app.run(t, &addMemberCmd{}, "alice")
	if status != subcommands.ExitFailure {
		t.Errorf("duplicate member name: status %d, want failure", status)
	}
}

func TestList(t *testing.T) {
	app := newTestApp(t)
	if out := app.mustRun(t, &listCmd{}); !strings.Contains(out, "_No gatherings yet._") {
		t.Errorf("empty list output:\n%s", out)
	}

	app.mustRun(t, &createCmd{}, "lunch")
	app.mustRun(t, &createCmd{}, "-d", "a | pipe", "trip")
	out := app.mustRun(t, &listCmd{})
	if !strings.Contains(out, `| trip | a \| pipe | open |`) {
		t.Errorf("list output missing escaped trip row:\n%s", out)
	}
	if strings.Index(out, "| trip") > strings.Index(out, "| lunch") {
		t.Errorf("newest gathering should come first:\n%s", out)
	}
}

func TestUsageErrors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		cmd  subcommands.Command
		args []string
	}{
		{"add-member without name", &addMemberCmd{}, nil},
		{"create without name", &createCmd{}, nil},
		{"show two gatherings", &showCmd{}, []string{"a", "b"}},
		{"join without members", &joinCmd{}, []string{"dinner"}},
		{"expense without amount", &expenseCmd{}, []string{"dinner", "Alice"}},
		{"settle without member", &settleCmd{}, []string{"dinner"}},
		{"import without token", &importCmd{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status, _ := app.run(t, tt.cmd, tt.args...); status != subcommands.ExitUsageError {
				t.Errorf("status = %d, want usage error", status)
			}
		})
	}
}

func TestLedgerCommands(t *testing.T) {
	app := dinner(t)

	if status, _ := app.run(t, &expenseCmd{}, "dinner", "Bob", "-5"); status != subcommands.ExitFailure {
		t.Errorf("negative expense: status %d, want failure", status)
	}
	if status, _ := app.run(t, &expenseCmd{}, "dinner", "Bob", "ten"); status != subcommands.ExitFailure {
		t.Errorf("unparsable expense: status %d, want failure", status)
	}
	if status, _ := app.run(t, &payCmd{}, "dinner", "Bob", "0"); status != subcommands.ExitFailure {
		t.Errorf("zero payment: status %d, want failure", status)
	}
	if status, _ := app.run(t, &expenseCmd{}, "dinner", "Dave", "5"); status != subcommands.ExitFailure {
		t.Errorf("unknown member: status %d, want failure", status)
	}

	if out := app.mustRun(t, &payCmd{}, "dinner", "Bob", "30"); !strings.Contains(out, "Bob paid 30.00") {
		t.Errorf("pay output = %q", out)
	}
	if out := app.mustRun(t, &payCmd{}, "dinner", "Alice", "-30"); !strings.Contains(out, "Alice paid -30.00") {
		t.Errorf("negative pay output = %q", out)
	}
	if out := app.mustRun(t, &settleCmd{}, "dinner", "Bob"); !strings.Contains(out, "already settled") {
		t.Errorf("settle output = %q", out)
	}
	if out := app.mustRun(t, &settleCmd{}, "dinner", "global-3"); !strings.Contains(out, "Carol settled with 30.00") {
		t.Errorf("settle by id output = %q", out)
	}

	out := app.mustRun(t, &showCmd{}, "dinner")
	if strings.Contains(out, "Suggested transfers") {
		t.Errorf("everyone should be settled:\n%s", out)
	}
}

func TestJoinAndLeave(t *testing.T) {
	app := dinner(t)
	app.mustRun(t, &addMemberCmd{}, "Dave")

	status, out := app.run(t, &joinCmd{}, "dinner", "Dave", "Alice", "Eve")
	if status != subcommands.ExitFailure {
		t.Errorf("join with duplicates: status %d, want failure", status)
	}
	if !strings.Contains(out, "Dave joined dinner") {
		t.Errorf("Dave should still join: %q", out)
	}
	for _, want := range []string{"Alice:", "Eve:"} {
		if !strings.Contains(app.errOut.String(), want) {
			t.Errorf("stderr missing %q: %q", want, app.errOut.String())
		}
	}

	app.mustRun(t, &leaveCmd{}, "dinner", "Dave")
	out = app.mustRun(t, &showCmd{}, "dinner")
	if strings.Contains(out, "Dave") {
		t.Errorf("Dave should have left:\n%s", out)
	}
}

func TestDelete(t *testing.T) {
	app := dinner(t)
	app.mustRun(t, &deleteCmd{}, "dinner")
	app.mustRun(t, &deleteCmd{}, "dinner")
	if status, _ := app.run(t, &showCmd{}, "dinner"); status != subcommands.ExitFailure {
		t.Errorf("show deleted gathering: status %d, want failure", status)
	}
}

func TestExportImport(t *testing.T) {
	src := dinner(t)
	token := strings.TrimSpace(src.mustRun(t, &exportCmd{}))

	dst := newTestApp(t)
	out := dst.mustRun(t, &importCmd{}, token)
	if !strings.Contains(out, "Imported 1 gatherings and 3 members") {
		t.Errorf("import output = %q", out)
	}
	if got, want := dst.mustRun(t, &showCmd{}, "dinner"), src.mustRun(t, &showCmd{}, "dinner"); got != want {
		t.Errorf("imported gathering differs:\n%s\nwant:\n%s", got, want)
	}

	// Through a file and through stdin.
	path := filepath.Join(t.TempDir(), "backup.txt")
	src.mustRun(t, &exportCmd{}, "-o", path)
	viaFile := newTestApp(t)
	viaFile.mustRun(t, &importCmd{}, "-i", path)
	viaStdin := newTestApp(t)
	viaStdin.In = strings.NewReader(token + "\n")
	viaStdin.mustRun(t, &importCmd{})
	for _, app := range []*testApp{viaFile, viaStdin} {
		if _, err := app.Repo.GetGathering(context.Background(), "dinner"); err != nil {
			t.Errorf("gathering not imported: %v", err)
		}
	}

	if status, _ := dst.run(t, &importCmd{}, "not a token"); status != subcommands.ExitFailure {
		t.Errorf("invalid token: status %d, want failure", status)
	}
	if _, err := dst.Repo.GetGathering(context.Background(), "dinner"); err != nil {
		t.Errorf("invalid import should leave data untouched: %v", err)
	}
}

func TestReport(t *testing.T) {
	app := dinner(t)

	out := app.mustRun(t, &reportCmd{})
	for _, want := range []string{"dinner", "Alice", "60.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}

	dir := t.TempDir()
	out = app.mustRun(t, &reportCmd{}, "-csv", dir)
	path := filepath.Join(dir, "gathering-report-all-to-all.csv")
	if !strings.Contains(out, path) {
		t.Errorf("report output = %q, want path %s", out, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "Gathering ID,Date Opened,") {
		t.Errorf("unexpected CSV header: %q", b)
	}

	if status, _ := app.run(t, &reportCmd{}, "-s", "2030-01-02", "-e", "2030-01-01"); status != subcommands.ExitFailure {
		t.Errorf("inverted range: status %d, want failure", status)
	}
	if status, _ := app.run(t, &reportCmd{}, "-s", "1990-01-01", "-e", "1990-12-31"); status != subcommands.ExitFailure {
		t.Errorf("empty range: status %d, want failure", status)
	}
}
