package polycalc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathanmweiss/go-polycalc/poly"
)

type action func(c *Calculator) *failure

type command struct {
	Name string
	// Needs is the stack depth the command requires.
	Needs int
	Run   action

	// Bind is set for commands taking an argument: it validates the
	// argument and returns the action to run. BadArg is reported when the
	// argument is missing or malformed.
	Bind   func(arg string) (action, bool)
	BadArg Kind
}

type registry struct {
	byName map[string]command
	// commands taking an argument, matched by prefix.
	withArg []command
}

func newRegistry() *registry {
	return &registry{byName: make(map[string]command)}
}

func (r *registry) register(cmd command) error {
	if cmd.Name == "" {
		return fmt.Errorf("calculator registry: empty command name")
	}

	if (cmd.Run == nil) == (cmd.Bind == nil) {
		return fmt.Errorf("calculator registry: %q needs exactly one of Run and Bind", cmd.Name)
	}

	if _, ok := r.byName[cmd.Name]; ok {
		return fmt.Errorf("calculator registry: duplicate command %q", cmd.Name)
	}

	r.byName[cmd.Name] = cmd
	if cmd.Bind != nil {
		r.withArg = append(r.withArg, cmd)
	}

	return nil
}

// resolve finds the command named by line. For commands taking an argument
// it also returns whatever follows the name.
func (r *registry) resolve(line string) (command, string, bool) {
	if cmd, ok := r.byName[line]; ok {
		return cmd, "", true
	}

	for _, cmd := range r.withArg {
		if strings.HasPrefix(line, cmd.Name) {
			return cmd, line[len(cmd.Name):], true
		}
	}

	return command{}, "", false
}

func (r *registry) names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

func (r *registry) matches(prefix string) []string {
	if prefix == "" {
		return nil
	}

	var out []string
	for _, name := range r.names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}

	return out
}

var commands = mustRegistry(
	command{Name: "ZERO", Run: func(c *Calculator) *failure {
		c.stack.Push(poly.Zero())
		return nil
	}},
	command{Name: "IS_COEFF", Needs: 1, Run: func(c *Calculator) *failure {
		c.printBool(c.top().IsCoeff())
		return nil
	}},
	command{Name: "IS_ZERO", Needs: 1, Run: func(c *Calculator) *failure {
		c.printBool(c.top().IsZero())
		return nil
	}},
	command{Name: "CLONE", Needs: 1, Run: func(c *Calculator) *failure {
		c.stack.Push(c.top().Clone())
		return nil
	}},
	command{Name: "ADD", Needs: 2, Run: binaryOp(poly.Poly.Add)},
	command{Name: "MUL", Needs: 2, Run: binaryOp(poly.Poly.Mul)},
	command{Name: "SUB", Needs: 2, Run: binaryOp(poly.Poly.Sub)},
	command{Name: "NEG", Needs: 1, Run: unary(poly.Poly.Neg)},
	command{Name: "IS_EQ", Needs: 2, Run: func(c *Calculator) *failure {
		below, _ := c.stack.Peek(1)
		c.printBool(c.top().Equals(below))
		return nil
	}},
	command{Name: "DEG", Needs: 1, Run: func(c *Calculator) *failure {
		c.println(c.top().Degree())
		return nil
	}},
	command{Name: "DEG_BY", Needs: 1, BadArg: DegByWrongVariable, Bind: func(arg string) (action, bool) {
		idx, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, false
		}

		return func(c *Calculator) *failure {
			c.println(c.top().DegreeBy(idx))
			return nil
		}, true
	}},
	command{Name: "AT", Needs: 1, BadArg: AtWrongValue, Bind: func(arg string) (action, bool) {
		if strings.HasPrefix(arg, "+") {
			return nil, false
		}

		x, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, false
		}

		return unary(func(p poly.Poly) (poly.Poly, error) {
			return p.At(x)
		}), true
	}},
	command{Name: "PRINT", Needs: 1, Run: func(c *Calculator) *failure {
		c.println(c.top())
		return nil
	}},
	command{Name: "POP", Needs: 1, Run: func(c *Calculator) *failure {
		c.stack.Pop()
		return nil
	}},
)

func mustRegistry(cmds ...command) *registry {
	r := newRegistry()
	for _, cmd := range cmds {
		if err := r.register(cmd); err != nil {
			panic(err)
		}
	}

	return r
}

// unary replaces the top of the stack with op(top).
func unary(op func(poly.Poly) (poly.Poly, error)) action {
	return func(c *Calculator) *failure {
		r, err := op(c.top())
		if err != nil {
			return arithFailure(err)
		}

		c.stack.Pop()
		c.stack.Push(r)

		return nil
	}
}

// binaryOp replaces the top two polynomials with op(top, below).
func binaryOp(op func(p, q poly.Poly) (poly.Poly, error)) action {
	return func(c *Calculator) *failure {
		below, _ := c.stack.Peek(1)

		r, err := op(c.top(), below)
		if err != nil {
			return arithFailure(err)
		}

		c.stack.Pop()
		c.stack.Pop()
		c.stack.Push(r)

		return nil
	}
}

// arithFailure classifies an arithmetic error. Overflow is the only way
// arithmetic on normalized polynomials fails.
func arithFailure(err error) *failure {
	return fail(Overflow, err)
}
