package polycalc

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathanmweiss/go-polycalc/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, cfg Config, input string) (*Calculator, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	c := New(cfg, &stdout, &stderr)
	require.NoError(t, c.Run(strings.NewReader(input)))

	return c, stdout.String(), stderr.String()
}

func TestTranscripts(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		stdout []string
		stderr []string
	}{
		{
			name: "queries and arithmetic",
			input: []string{
				"(1,2)+(3,0)",
				"PRINT",
				"DEG",
				"DEG_BY 0",
				"DEG_BY 1",
				"CLONE",
				"IS_EQ",
				"2",
				"MUL",
				"PRINT",
				"AT 5",
				"PRINT",
				"IS_COEFF",
				"IS_ZERO",
			},
			stdout: []string{"(3,0)+(1,2)", "2", "2", "0", "1", "(6,0)+(2,2)", "56", "1", "0"},
		},
		{
			name:   "sub takes the top minus the one below",
			input:  []string{"1", "3", "SUB", "PRINT", "NEG", "PRINT"},
			stdout: []string{"2", "-2"},
		},
		{
			name:   "cancellation collapses to zero",
			input:  []string{"(1,0)", "-1", "ADD", "IS_ZERO", "IS_COEFF", "DEG", "ZERO", "IS_EQ"},
			stdout: []string{"1", "1", "-1", "1"},
		},
		{
			name: "nested variables",
			input: []string{
				"((1,1),0)+(1,1)",
				"((1,1),0)+(-1,1)",
				"MUL",
				"PRINT",
				"DEG_BY 1",
				"DEG_BY 18446744073709551615",
				"AT -2",
				"PRINT",
				"POP",
				"IS_ZERO",
			},
			stdout: []string{"((1,2),0)+(-1,2)", "2", "0", "(-4,0)+(1,2)"},
			stderr: []string{"ERROR 10 STACK UNDERFLOW"},
		},
		{
			name: "errors",
			input: []string{
				"ADD",
				"# comment",
				"",
				"FOO",
				"(1,0",
				"5",
				"DEG_BY",
				"DEG_BYX 1",
				"DEG_BY -1",
				"AT",
				"AT +1",
				"AT x",
				"ATX",
				"zero",
				"ZERO 1",
				"PRINT",
				"SUB",
				"AT 1",
				"PRINT",
				"PRINT ",
				" 1",
				"(1,2147483648)",
				"DEG_BY  1",
			},
			stdout: []string{"5", "5"},
			stderr: []string{
				"ERROR 1 STACK UNDERFLOW",
				"ERROR 4 WRONG COMMAND",
				"ERROR 5 WRONG POLY",
				"ERROR 7 DEG BY WRONG VARIABLE",
				"ERROR 8 WRONG COMMAND",
				"ERROR 9 DEG BY WRONG VARIABLE",
				"ERROR 10 AT WRONG VALUE",
				"ERROR 11 AT WRONG VALUE",
				"ERROR 12 AT WRONG VALUE",
				"ERROR 13 WRONG COMMAND",
				"ERROR 14 WRONG COMMAND",
				"ERROR 15 WRONG COMMAND",
				"ERROR 17 STACK UNDERFLOW",
				"ERROR 20 WRONG COMMAND",
				"ERROR 21 WRONG POLY",
				"ERROR 22 WRONG POLY",
				"ERROR 23 DEG BY WRONG VARIABLE",
			},
		},
		{
			name:   "argument is checked before the stack",
			input:  []string{"DEG_BY x", "DEG_BY 1", "AT", "AT 3"},
			stderr: []string{"ERROR 1 DEG BY WRONG VARIABLE", "ERROR 2 STACK UNDERFLOW", "ERROR 3 AT WRONG VALUE", "ERROR 4 STACK UNDERFLOW"},
		},
		{
			name:   "nul bytes",
			input:  []string{"AB\x00", "1\x00", "#\x00", "(\x00"},
			stderr: []string{"ERROR 1 WRONG COMMAND", "ERROR 2 WRONG POLY", "ERROR 4 WRONG POLY"},
		},
		{
			name: "overflow leaves the stack unchanged",
			input: []string{
				"9223372036854775807",
				"1",
				"ADD",
				"PRINT",
				"POP",
				"CLONE",
				"MUL",
				"PRINT",
				"(2,62)",
				"AT 2",
				"PRINT",
				"-9223372036854775808",
				"NEG",
			},
			stdout: []string{"1", "9223372036854775807", "(2,62)"},
			stderr: []string{"ERROR 3 OVERFLOW", "ERROR 7 OVERFLOW", "ERROR 10 OVERFLOW", "ERROR 13 OVERFLOW"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stdout, stderr := run(t, Config{}, strings.Join(tt.input, "\n")+"\n")

			if diff := cmp.Diff(lines(tt.stdout), stdout); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(lines(tt.stderr), stderr); diff != "" {
				t.Errorf("stderr mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func lines(ls []string) string {
	if len(ls) == 0 {
		return ""
	}

	return strings.Join(ls, "\n") + "\n"
}

func TestRunWithoutFinalNewline(t *testing.T) {
	a := assert.New(t)

	c, stdout, stderr := run(t, Config{}, "ZERO\n\n(1,1)\nPRINT")
	a.Equal("(1,1)\n", stdout)
	a.Empty(stderr)
	a.Equal(2, c.Stack().Len())
}

func TestMaxDepth(t *testing.T) {
	a := assert.New(t)

	_, stdout, stderr := run(t, Config{MaxDepth: 1}, "(1,1)\n((1,1),1)\nPRINT\n")
	a.Equal("(1,1)\n", stdout)
	a.Equal("ERROR 2 WRONG POLY\n", stderr)
}

func TestExecErrors(t *testing.T) {
	a := assert.New(t)

	var stdout, stderr bytes.Buffer
	c := New(Config{}, &stdout, &stderr)

	a.NoError(c.Exec("1"))

	err := c.Exec("MUL")

	var lerr *LineError
	a.True(errors.As(err, &lerr))
	a.Equal(2, lerr.Line)
	a.Equal(StackUnderflow, lerr.Kind)
	a.ErrorIs(err, ErrUnderflow)

	a.ErrorIs(c.Exec("(1,"), poly.ErrSyntax)
	a.ErrorIs(c.Exec("BOGUS"), ErrUnknownCommand)
	a.ErrorIs(c.Exec("AT 99999999999999999999"), ErrBadArgument)

	a.NoError(c.Exec("9223372036854775807"))
	a.ErrorIs(c.Exec("ADD"), poly.ErrOverflow)

	a.Equal(2, c.Stack().Len())
	a.Equal("ERROR 2 STACK UNDERFLOW\nERROR 3 WRONG POLY\nERROR 4 WRONG COMMAND\nERROR 5 AT WRONG VALUE\nERROR 7 OVERFLOW\n", stderr.String())
}

func TestKindString(t *testing.T) {
	a := assert.New(t)

	a.Equal("DEG BY WRONG VARIABLE", DegByWrongVariable.String())
	a.Equal("OVERFLOW", Overflow.String())
	a.Equal("Kind(42)", Kind(42).String())
}

func TestComplete(t *testing.T) {
	a := assert.New(t)

	c := New(Config{}, &bytes.Buffer{}, &bytes.Buffer{})
	a.Equal([]string{"DEG", "DEG_BY"}, c.Complete("DE"))
	a.Equal([]string{"IS_COEFF", "IS_EQ", "IS_ZERO"}, c.Complete("IS"))
	a.Empty(c.Complete("X"))
	a.Empty(c.Complete(""))
}

func TestPersistRestore(t *testing.T) {
	a := assert.New(t)

	path := filepath.Join(t.TempDir(), "stack.pcs")
	cfg := Config{Snapshot: path}

	c, _, _ := run(t, cfg, "(1,2)+(3,0)\n((1,1),4)\n-7\n")
	a.NoError(c.Restore())
	a.Equal(3, c.Stack().Len())
	a.NoError(c.Persist())

	var stdout bytes.Buffer
	d := New(cfg, &stdout, &bytes.Buffer{})
	a.NoError(d.Restore())
	a.NoError(d.Run(strings.NewReader("PRINT\nPOP\nPRINT\nPOP\nPRINT\n")))
	a.Equal("-7\n((1,1),4)\n(3,0)+(1,2)\n", stdout.String())

	a.NoError(New(Config{}, &stdout, &stdout).Persist())
	a.Error(d.LoadFile(filepath.Join(t.TempDir(), "missing")))
}
