/*
Package polycalc is a line-oriented stack calculator over sparse multivariate
polynomials.

Every input line is either a polynomial, pushed on the stack, or a command
operating on the top of the stack:

	ZERO IS_COEFF IS_ZERO CLONE ADD MUL NEG SUB IS_EQ DEG DEG_BY <idx> AT <x> PRINT POP

Lines starting with '#' and empty lines are skipped. A failing line leaves the
stack unchanged and prints "ERROR <line> <kind>" on the error stream.
*/
package polycalc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathanmweiss/go-polycalc/poly"
)

type Config struct {
	// MaxDepth bounds the nesting of polynomials read from input lines. Zero
	// means poly.DefaultMaxDepth.
	MaxDepth int
	// Snapshot is the file the stack is restored from and persisted to.
	// Empty disables snapshots.
	Snapshot string
}

type Calculator struct {
	cfg    Config
	parser poly.Parser

	stack  Stack
	lineNo int

	stdout io.Writer
	stderr io.Writer
	// first error writing to stdout or stderr.
	werr error
}

func New(cfg Config, stdout, stderr io.Writer) *Calculator {
	return &Calculator{
		cfg:    cfg,
		parser: poly.Parser{MaxDepth: cfg.MaxDepth},
		stdout: stdout,
		stderr: stderr,
	}
}

// Stack returns the calculator's stack.
func (c *Calculator) Stack() *Stack {
	return &c.stack
}

// Run executes every line of r. Failing lines are reported on the error
// stream and do not stop the run; only reading or writing problems do.
func (c *Calculator) Run(r io.Reader) error {
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			c.Exec(strings.TrimSuffix(line, "\n"))
		}

		if c.werr != nil {
			return c.werr
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// Exec executes a single line, without its trailing newline, and returns the
// *LineError it reported, if any.
func (c *Calculator) Exec(line string) error {
	c.lineNo++

	f := c.exec(line)
	if f == nil {
		return nil
	}

	lerr := &LineError{Line: c.lineNo, Kind: f.kind, Err: f.err}
	if _, err := fmt.Fprintln(c.stderr, lerr); err != nil && c.werr == nil {
		c.werr = err
	}

	return lerr
}

func (c *Calculator) exec(line string) *failure {
	if line == "" || line[0] == '#' {
		return nil
	}

	isCommand := isLetter(line[0])

	if strings.IndexByte(line, 0) >= 0 {
		if isCommand {
			return fail(WrongCommand, ErrNulByte)
		}

		return fail(WrongPoly, ErrNulByte)
	}

	if !isCommand {
		p, err := c.parser.Parse(line)
		if err != nil {
			return fail(WrongPoly, err)
		}

		c.stack.Push(p)

		return nil
	}

	cmd, rest, ok := commands.resolve(line)
	if !ok {
		return fail(WrongCommand, fmt.Errorf("%w: %q", ErrUnknownCommand, line))
	}

	run := cmd.Run
	if cmd.Bind != nil {
		switch {
		case rest == "":
			return fail(cmd.BadArg, fmt.Errorf("%w: %s without argument", ErrBadArgument, cmd.Name))
		case rest[0] != ' ':
			return fail(WrongCommand, fmt.Errorf("%w: %q", ErrUnknownCommand, line))
		}

		if run, ok = cmd.Bind(rest[1:]); !ok {
			return fail(cmd.BadArg, fmt.Errorf("%w: %s %q", ErrBadArgument, cmd.Name, rest[1:]))
		}
	}

	if c.stack.Len() < cmd.Needs {
		return fail(StackUnderflow, fmt.Errorf("%w: %s needs %d", ErrUnderflow, cmd.Name, cmd.Needs))
	}

	return run(c)
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// Complete returns the command names starting with prefix.
func (c *Calculator) Complete(prefix string) []string {
	return commands.matches(prefix)
}

func (c *Calculator) top() poly.Poly {
	p, _ := c.stack.Peek(0)
	return p
}

func (c *Calculator) println(v any) {
	if _, err := fmt.Fprintln(c.stdout, v); err != nil && c.werr == nil {
		c.werr = err
	}
}

func (c *Calculator) printBool(b bool) {
	if b {
		c.println(1)
	} else {
		c.println(0)
	}
}

// LoadFile replaces the stack with the snapshot stored in path.
func (c *Calculator) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := c.stack.ReadFrom(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// SaveFile writes a snapshot of the stack to path. The file is replaced
// atomically.
func (c *Calculator) SaveFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := c.stack.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Restore loads the configured snapshot. A missing file leaves the stack
// empty.
func (c *Calculator) Restore() error {
	if c.cfg.Snapshot == "" {
		return nil
	}

	if err := c.LoadFile(c.cfg.Snapshot); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// Persist saves the stack to the configured snapshot.
func (c *Calculator) Persist() error {
	if c.cfg.Snapshot == "" {
		return nil
	}

	return c.SaveFile(c.cfg.Snapshot)
}
