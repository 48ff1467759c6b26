package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	polycalc "github.com/jonathanmweiss/go-polycalc"
	"github.com/jonathanmweiss/go-polycalc/poly"
)

// configFlags registers the calculator configuration on fs.
func configFlags(fs *flag.FlagSet) *polycalc.Config {
	cfg := &polycalc.Config{}
	fs.StringVar(&cfg.Snapshot, "state", "", "load the stack from `file` if it exists and save it on exit")
	fs.IntVar(&cfg.MaxDepth, "max-depth", poly.DefaultMaxDepth, "maximum nesting of input polynomials")

	return cfg
}

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfg := configFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s run [flags] [file]\n", appName)
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	var in io.Reader = os.Stdin
	if fs.NArg() == 1 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			log.Print(err)
			return 1
		}
		defer f.Close()

		in = f
	}

	calc := polycalc.New(*cfg, os.Stdout, os.Stderr)
	if err := calc.Restore(); err != nil {
		log.Print(err)
		return 1
	}

	if err := calc.Run(in); err != nil {
		log.Print(err)
		return 1
	}

	if err := calc.Persist(); err != nil {
		log.Print(err)
		return 1
	}

	return 0
}
