package main

import (
	"fmt"
	"log"
	"os"
)

const (
	appName = "polycalc"
	version = "0.1.0"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(appName + ": ")

	if len(os.Args) < 2 {
		os.Exit(cmdRun(nil))
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "gen":
		os.Exit(cmdGen(os.Args[2:]))
	case "bench":
		os.Exit(cmdBench(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "version":
		fmt.Println(version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`polycalc %s

Usage:
  %s [run] [-state file] [-max-depth n] [file]    Run calculator lines from file or stdin.
  %s repl [-state file]                           Start an interactive calculator.
  %s gen [-seed s] [-n N] [-depth d]              Print random polynomials, one per line.
  %s bench [-seed s] [-n N] [-op mul|add|at]      Time an operation on random polynomials.
  %s check [-seed s] [-n N]                       Cross-check arithmetic with modular fingerprints.
  %s version                                      Print the version.

`, version, appName, appName, appName, appName, appName, appName)
}
