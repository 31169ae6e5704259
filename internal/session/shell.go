package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chrisdamba/chefmenu/internal/models"
)

const shellHelp = `Commands:
  list              show the full menu with average prices
  add               add a new item
  remove <id>       remove an item
  filter <course>   show one course (STARTER, MAIN, DESSERT)
  averages          show the average price per course
  export            write the menu to the configured output
  help              show this help
  quit              end the session
`

type ShellOptions struct {
	Currency        string
	DefaultCourse   models.Course
	ConfirmRemovals bool
}

// Shell runs an interactive session over a line based reader and writer.
type Shell struct {
	session *Session
	render  Renderer
	opts    ShellOptions
	in      *bufio.Reader
	out     io.Writer
	ctx     context.Context

	// lines is fed by a single reader goroutine started on first use, so a
	// pending read never keeps the shell from noticing ctx is done.
	lines   chan readResult
	readErr error
}

type readResult struct {
	line string
	err  error
}

func NewShell(session *Session, in io.Reader, out io.Writer, opts ShellOptions) *Shell {
	if !opts.DefaultCourse.Valid() {
		opts.DefaultCourse = models.CourseStarter
	}
	return &Shell{
		session: session,
		render:  Renderer{Currency: opts.Currency},
		opts:    opts,
		in:      bufio.NewReader(in),
		out:     out,
		ctx:     context.Background(),
	}
}

// WithContext makes prompts give up once ctx is done. Run sets it too.
func (sh *Shell) WithContext(ctx context.Context) *Shell {
	sh.ctx = ctx
	return sh
}

// Run reads commands until quit, end of input or ctx is done. Both end
// the session without an error.
func (sh *Shell) Run(ctx context.Context) error {
	sh.ctx = ctx
	fmt.Fprintf(sh.out, "Welcome to %s. Type help for commands.\n", menuTitle)
	for {
		if ctx.Err() != nil {
			sh.interrupted()
			return nil
		}

		line, err := sh.prompt("> ")
		if err != nil {
			if ctx.Err() != nil {
				sh.interrupted()
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		switch strings.ToLower(cmd) {
		case "":
		case "help", "?":
			fmt.Fprint(sh.out, shellHelp)
		case "list", "ls":
			sh.render.Listing(sh.out, sh.session.Listing())
		case "averages", "avg":
			sh.render.Averages(sh.out, sh.session.Store().Averages())
		case "filter":
			sh.filter(arg)
		case "add":
			if err := sh.add(); err != nil {
				if ctx.Err() != nil {
					sh.interrupted()
					return nil
				}
				return err
			}
		case "remove", "rm":
			sh.remove(arg)
		case "export":
			sh.export()
		case "quit", "exit":
			fmt.Fprintln(sh.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintf(sh.out, "Unknown command %q. Type help for commands.\n", cmd)
		}
	}
}

// Confirm implements Confirmer by asking on the shell's own input.
func (sh *Shell) Confirm(prompt string) bool {
	answer, err := sh.prompt(prompt + " [y/N]: ")
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (sh *Shell) filter(arg string) {
	if arg == "" {
		fmt.Fprintln(sh.out, "Usage: filter <STARTER|MAIN|DESSERT>")
		return
	}
	course, err := models.ParseCourse(arg)
	if err != nil {
		fmt.Fprintf(sh.out, "Unknown course %q. Choose STARTER, MAIN or DESSERT.\n", arg)
		return
	}
	sh.render.Filter(sh.out, sh.session.Filter(course))
}

type formField struct {
	label string
	dst   *string
}

func (sh *Shell) add() error {
	var d models.Draft
	fields := []formField{
		{"Item name: ", &d.ItemName},
		{"Description: ", &d.Description},
		{fmt.Sprintf("Category [%s]: ", sh.opts.DefaultCourse), &d.Category},
		{"Price: ", &d.Price},
		{"Image URL: ", &d.Image},
		{"Ingredients (comma separated): ", &d.Ingredients},
	}

	for _, f := range fields {
		value, err := sh.prompt(f.label)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		*f.dst = strings.TrimSpace(value)
	}
	if d.Category == "" {
		d.Category = string(sh.opts.DefaultCourse)
	}

	item, err := sh.session.Submit(d)
	if err != nil {
		sh.render.Problem(sh.out, err)
		return nil
	}
	fmt.Fprintln(sh.out, "Saved:")
	sh.render.Item(sh.out, item)
	return nil
}

func (sh *Shell) remove(id string) {
	if id == "" {
		fmt.Fprintln(sh.out, "Usage: remove <id>")
		return
	}
	if _, ok := sh.session.Store().Get(id); !ok {
		fmt.Fprintf(sh.out, "No item with id %s.\n", id)
		return
	}

	var confirm Confirmer = AutoConfirm
	if sh.opts.ConfirmRemovals {
		confirm = sh
	}
	if sh.session.Remove(id, confirm) {
		fmt.Fprintf(sh.out, "Removed %s.\n", id)
	} else {
		fmt.Fprintln(sh.out, "Kept.")
	}
}

func (sh *Shell) export() {
	n, err := sh.session.Export(nil)
	if err != nil {
		fmt.Fprintf(sh.out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Exported %d records.\n", n)
}

func (sh *Shell) interrupted() {
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, "Goodbye.")
}

func (sh *Shell) prompt(label string) (string, error) {
	fmt.Fprint(sh.out, label)
	line, err := sh.readLine()
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return line, err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (sh *Shell) readLine() (string, error) {
	if sh.readErr != nil {
		return "", sh.readErr
	}
	if sh.lines == nil {
		sh.lines = make(chan readResult, 1)
		go sh.readLines()
	}
	select {
	case <-sh.ctx.Done():
		return "", sh.ctx.Err()
	case r := <-sh.lines:
		// the reader goroutine stops after its first error
		sh.readErr = r.err
		return r.line, r.err
	}
}

func (sh *Shell) readLines() {
	for {
		line, err := sh.in.ReadString('\n')
		sh.lines <- readResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}
