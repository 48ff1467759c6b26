package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/peterh/liner"

	polycalc "github.com/jonathanmweiss/go-polycalc"
)

const (
	historyFile = ".polycalc_history"
	prompt      = "> "
)

const replHelp = `REPL commands:
  :stack         Print the whole stack, top last
  :save <file>   Save a snapshot of the stack
  :load <file>   Replace the stack with a snapshot
  :quit          Exit the REPL
Any other line is a calculator line (a polynomial or a command).
`

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	cfg := configFlags(fs)
	_ = fs.Parse(args)

	calc := polycalc.New(*cfg, os.Stdout, os.Stderr)
	if err := calc.Restore(); err != nil {
		log.Print(err)
		return 1
	}

	fmt.Printf("polycalc %s\nCtrl+D exits. Type :help for REPL commands.\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(calc.Complete)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}

		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}

		if err != nil {
			log.Print(err)
			return 1
		}

		if line != "" {
			ln.AppendHistory(line)
		}

		if strings.HasPrefix(line, ":") {
			if quit := meta(calc, line); quit {
				break
			}

			continue
		}

		// Errors are already reported on stderr.
		_ = calc.Exec(line)
	}

	if err := calc.Persist(); err != nil {
		log.Print(err)
		return 1
	}

	return 0
}

// meta runs a REPL command and reports whether the REPL should exit.
func meta(calc *polycalc.Calculator, line string) bool {
	words, err := shlex.Split(line)
	if err != nil || len(words) == 0 {
		fmt.Fprintf(os.Stderr, "bad command: %v\n", err)
		return false
	}

	switch cmd, args := words[0], words[1:]; {
	case cmd == ":quit" && len(args) == 0:
		return true
	case cmd == ":help":
		fmt.Print(replHelp)
	case cmd == ":stack" && len(args) == 0:
		for _, p := range calc.Stack().Values() {
			fmt.Println(p)
		}
	case cmd == ":save" && len(args) == 1:
		if err := calc.SaveFile(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	case cmd == ":load" && len(args) == 1:
		if err := calc.LoadFile(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown REPL command %q. Type :help.\n", line)
	}

	return false
}
