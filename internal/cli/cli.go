// Package cli implements marketctl, a command-line stand-in for the app
// screens. Every subcommand maps onto one gateway or session operation and
// prints the backend's JSON body on stdout.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/service"
	"github.com/voltmarket/market-client/internal/infrastructure/gateway"
	"github.com/voltmarket/market-client/internal/pkg/validation"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var errUsage = errors.New("usage")

// Deps are the collaborators a CLI run needs.
type Deps struct {
	Client *gateway.Client
	Auth   *service.AuthService
	Boot   *service.Bootstrap
	Stdout io.Writer
	Stderr io.Writer
	Log    zerolog.Logger
}

// App dispatches subcommands.
type App struct {
	client   *gateway.Client
	auth     *service.AuthService
	boot     *service.Bootstrap
	validate *validation.Validator
	out      io.Writer
	errOut   io.Writer
	log      zerolog.Logger
	commands map[string]command
}

type command struct {
	summary string
	run     func(ctx context.Context, args []string) error
}

func New(d Deps) *App {
	a := &App{
		client:   d.Client,
		auth:     d.Auth,
		boot:     d.Boot,
		validate: validation.New(),
		out:      d.Stdout,
		errOut:   d.Stderr,
		log:      d.Log,
	}
	a.commands = a.register()
	return a
}

// Run executes args[0] with the remaining arguments and returns the
// process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage()
		if len(args) == 0 {
			return ExitUsage
		}
		return ExitOK
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "unknown command %q\n\n", args[0])
		a.usage()
		return ExitUsage
	}

	a.log.Debug().Str("command", args[0]).Msg("running command")
	err := cmd.run(ctx, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage):
		return ExitUsage
	}
	a.report(err)
	return ExitError
}

func (a *App) usage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.errOut, "usage: marketctl <command> [flags]")
	fmt.Fprintln(a.errOut)
	fmt.Fprintln(a.errOut, "commands:")
	for _, name := range names {
		fmt.Fprintf(a.errOut, "  %-16s %s\n", name, a.commands[name].summary)
	}
}

// report prints err for a human. Validation failures drop their sentinel
// prefix and a 401 gets a hint since the stored session is not cleared.
func (a *App) report(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		fmt.Fprintf(a.errOut, "error: %s\n", validation.Message(err))
	case domain.IsUnauthorized(err):
		fmt.Fprintf(a.errOut, "error: %s\n", err)
		fmt.Fprintln(a.errOut, "hint: the session is missing or expired; run `marketctl login` again")
	default:
		fmt.Fprintf(a.errOut, "error: %s\n", err)
	}
}

// flags returns a FlagSet that reports parse errors on stderr.
func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parse reports any flag error as a usage error; the FlagSet has already
// printed the details.
func (a *App) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(a.errOut, "%s: unexpected argument %q\n", fs.Name(), fs.Arg(0))
		return errUsage
	}
	return nil
}

// require fails with a usage error when any of the named values is empty.
func (a *App) require(fs *flag.FlagSet, values map[string]string) error {
	var missing []string
	for name, v := range values {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	fmt.Fprintf(a.errOut, "%s: missing %s\n", fs.Name(), strings.Join(missing, ", "))
	fs.Usage()
	return errUsage
}

// printBody writes the indented response body to stdout.
func (a *App) printBody(resp *gateway.Response, err error) error {
	if err != nil {
		return err
	}
	return a.printRaw(resp.Raw())
}

func (a *App) printJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return a.printRaw(b)
}

func (a *App) printRaw(raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	buf.WriteByte('\n')
	_, err := a.out.Write(buf.Bytes())
	return err
}

// filterFlags binds the list filters onto fs.
func filterFlags(fs *flag.FlagSet, f *domain.Filters) {
	fs.StringVar(&f.Status, "status", "", "filter by status")
	fs.StringVar(&f.Category, "category", "", "filter by category (BATTERY, ELECTRIC_SCOOTER)")
	fs.StringVar(&f.Search, "search", "", "free-text search")
	fs.StringVar(&f.Brand, "brand", "", "filter by brand")
	fs.Float64Var(&f.MinPrice, "min-price", 0, "minimum price")
	fs.Float64Var(&f.MaxPrice, "max-price", 0, "maximum price")
	fs.IntVar(&f.Page, "page", 0, "page number")
	fs.IntVar(&f.Limit, "limit", 0, "page size")
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
