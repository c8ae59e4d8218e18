package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/api"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todolist"
	"github.com/idilsaglam/tada/internal/ui"
)

// Service is the part of the API client the subcommands use.
type Service interface {
	todolist.Service
	Get(ctx context.Context, id model.ID) (model.Todo, error)
	ListByStatus(ctx context.Context, status model.Status) ([]model.Todo, error)
}

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by status

	Out, Err io.Writer
	Logger   *zap.Logger

	// Interactive runs the terminal UI for the ui subcommand.
	Interactive func() error
}

type runner struct {
	ctx context.Context
	svc Service
	opt Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, svc Service, args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	r := runner{ctx: ctx, svc: svc, opt: opt}

	if len(args) == 0 {
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]
	opt.Logger.Debug("running command", zap.String("cmd", cmd), zap.Strings("args", a))

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "ui":
		if opt.Interactive == nil {
			ui.Fail(opt.Err, "ui: interactive mode unavailable")
			return 1
		}
		if err := opt.Interactive(); err != nil {
			ui.Fail(opt.Err, "ui: "+err.Error())
			return 1
		}
		return 0

	case "ls":
		if len(a) > 1 {
			return r.usage("todo ls [all|pending|in_progress|completed]")
		}
		f := model.FilterAll
		if len(a) == 1 {
			var err error
			if f, err = model.ParseFilter(a[0]); err != nil {
				ui.Fail(opt.Err, "ls: "+err.Error())
				return 2
			}
		}
		// all lists everything in one request; a status goes to by_status.
		status := model.Status("")
		if f != model.FilterAll {
			status = model.Status(f)
		}
		return r.list(status)

	case "show":
		if len(a) != 1 {
			return r.usage("todo show <id>")
		}
		return r.show(model.ID(a[0]))

	case "add":
		return r.add(a)

	case "edit":
		return r.edit(a)

	case "done":
		if len(a) != 1 {
			return r.usage("todo done <id>")
		}
		return r.complete(model.ID(a[0]))

	case "rm":
		if len(a) != 1 {
			return r.usage("todo rm <id>")
		}
		return r.remove(model.ID(a[0]))
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - a client for the todo API

Usage:
  todo [-group] [-theme classic|neon|mono] [-api-url URL] <subcommand> [args]

Subcommands:
  ui                          Open the interactive list
  ls [all|status]             List todos, optionally only one status
  show <id>                   Show one todo
  add [-d desc] [-p n] <title...>
                              Add a todo (priority 0-10, default 0)
  edit <id> [-t title] [-d desc] [-p n] [-s status]
                              Change only the given fields
  done <id>                   Mark a todo completed
  rm <id>                     Delete a todo

Environment:
  TODO_API_URL                API base URL (default http://localhost:8000/api)
  TODO_THEME                  classic, neon or mono
  LOG_LEVEL, LOG_ENCODING, LOG_FILE

Examples:
  todo add -p 3 Buy milk
  todo ls in_progress
  todo edit 2 -s completed
  todo rm 3
`)
}

func (r runner) usage(u string) int {
	ui.Fail(r.opt.Err, "usage: "+u)
	return 2
}

// failed reports an API failure: the operation message, then the cause.
func (r runner) failed(msg string, err error) int {
	r.opt.Logger.Error(msg, zap.Error(err))
	ui.Fail(r.opt.Err, msg)
	fmt.Fprintln(r.opt.Err, ui.Dim("  "+err.Error()))
	if api.IsNotFound(err) {
		fmt.Fprintln(r.opt.Err, ui.Dim("  Hint: run `todo ls` to see valid ids"))
	}
	return 1
}

// -------------- subcommand impls ----------------

func (r runner) list(status model.Status) int {
	var (
		todos []model.Todo
		err   error
	)
	if status == "" {
		todos, err = r.svc.List(r.ctx)
	} else {
		todos, err = r.svc.ListByStatus(r.ctx, status)
	}
	if err != nil {
		return r.failed(todolist.OpFetch.FailureMessage(), err)
	}

	th := ui.Current()
	d, p := stats(todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(th.Title, "Todos"),
		ui.C(th.Success, "✔"), d,
		ui.C(th.Pending, "•"), p,
		ui.C(th.Accent, "Total"), len(todos),
	)
	if status != "" {
		header += "  " + ui.C(th.Muted, "("+status.Label()+")")
	}

	lines := []string{
		header,
		ui.C(th.Muted, ui.ProgressBar(d, d+p, 28)),
		"",
	}
	if r.opt.Group && status == "" {
		lines = append(lines, groupLines(todos)...)
	} else {
		lines = append(lines, flatLines(todos)...)
	}
	lines = append(lines, "", ui.C(th.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(r.opt.Out, lines)
	return 0
}

func (r runner) show(id model.ID) int {
	t, err := r.svc.Get(r.ctx, id)
	if err != nil {
		return r.failed("Failed to fetch todo", err)
	}
	th := ui.Current()
	lines := []string{
		ui.C(th.Title, "#"+t.ID.String()+" "+t.Title),
		"",
		ui.C(th.Muted, "Status:      ") + ui.C(statusColor(t.Status), string(t.Status)),
		ui.C(th.Muted, "Priority:    ") + strconv.Itoa(t.Priority),
		ui.C(th.Muted, "Created:     ") + t.CreatedAt.Local().Format("2006-01-02 15:04"),
	}
	if t.UpdatedAt != nil {
		lines = append(lines, ui.C(th.Muted, "Updated:     ")+t.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	if t.Description != "" {
		lines = append(lines, "")
		for _, l := range strings.Split(t.Description, "\n") {
			lines = append(lines, ui.Truncate(l, 72))
		}
	}
	ui.Panel(r.opt.Out, lines)
	return 0
}

func (r runner) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.opt.Err)
	return fs
}

func (r runner) add(args []string) int {
	fs := r.newFlagSet("add")
	desc := fs.String("d", "", "description")
	prio := fs.Int("p", 0, "priority (0-10)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		return r.usage("todo add [-d desc] [-p n] <title...>")
	}

	in := model.CreateInput{
		Title:       strings.Join(fs.Args(), " "),
		Description: *desc,
		Priority:    *prio,
		Status:      model.StatusPending,
	}
	if err := in.Validate(); err != nil {
		ui.Fail(r.opt.Err, "add: "+err.Error())
		return 2
	}

	t, err := r.svc.Create(r.ctx, in)
	if err != nil {
		return r.failed(todolist.OpCreate.FailureMessage(), err)
	}
	ui.OK(r.opt.Out, "added #"+t.ID.String())
	return 0
}

func (r runner) edit(args []string) int {
	const use = "todo edit <id> [-t title] [-d desc] [-p n] [-s status]"
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return r.usage(use)
	}
	id := model.ID(args[0])

	fs := r.newFlagSet("edit")
	title := fs.String("t", "", "new title")
	desc := fs.String("d", "", "new description")
	prio := fs.Int("p", 0, "new priority (0-10)")
	status := fs.String("s", "", "new status")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		return r.usage(use)
	}

	// Only flags given on the command line are sent.
	var in model.UpdateInput
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			in.Title = title
		case "d":
			in.Description = desc
		case "p":
			in.Priority = prio
		case "s":
			s, err := model.ParseStatus(*status)
			if err != nil {
				parseErr = err
				return
			}
			in.Status = &s
		}
	})
	if parseErr != nil {
		ui.Fail(r.opt.Err, "edit: "+parseErr.Error())
		return 2
	}
	if in.IsEmpty() {
		ui.Fail(r.opt.Err, "edit: nothing to change")
		return 2
	}
	if err := in.Validate(); err != nil {
		ui.Fail(r.opt.Err, "edit: "+err.Error())
		return 2
	}

	if _, err := r.svc.Update(r.ctx, id, in); err != nil {
		return r.failed(todolist.OpUpdate.FailureMessage(), err)
	}
	ui.OK(r.opt.Out, "updated #"+id.String())
	return 0
}

func (r runner) complete(id model.ID) int {
	if _, err := r.svc.Complete(r.ctx, id); err != nil {
		return r.failed(todolist.OpComplete.FailureMessage(), err)
	}
	ui.OK(r.opt.Out, "completed #"+id.String())
	return 0
}

func (r runner) remove(id model.ID) int {
	if err := r.svc.Remove(r.ctx, id); err != nil {
		return r.failed(todolist.OpDelete.FailureMessage(), err)
	}
	ui.OK(r.opt.Out, "removed #"+id.String())
	return 0
}
