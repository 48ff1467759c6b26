package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/tuneinsight/lattigo/v6/utils/sampling"

	"github.com/jonathanmweiss/go-polycalc/field"
	"github.com/jonathanmweiss/go-polycalc/poly"
)

// randomOpts are the flags shared by the commands that draw random polynomials.
type randomOpts struct {
	seed     string
	n        int
	depth    int
	terms    int
	maxExp   int
	maxCoeff int64
}

func (o *randomOpts) register(fs *flag.FlagSet) {
	fs.StringVar(&o.seed, "seed", appName, "PRNG key; equal seeds give equal polynomials")
	fs.IntVar(&o.n, "n", 10, "number of samples")
	fs.IntVar(&o.depth, "depth", 3, "number of variables")
	fs.IntVar(&o.terms, "terms", 4, "maximum number of terms per sum")
	fs.IntVar(&o.maxExp, "max-exp", 20, "maximum exponent")
	fs.Int64Var(&o.maxCoeff, "max-coeff", 1000, "maximum absolute coefficient")
}

var errMaxExp = errors.New("max-exp out of range")

func (o *randomOpts) generator() (*poly.Generator, error) {
	if o.maxExp < 0 || o.maxExp > math.MaxInt32 {
		return nil, errMaxExp
	}

	prng, err := sampling.NewKeyedPRNG([]byte(o.seed))
	if err != nil {
		return nil, err
	}

	return poly.NewGenerator(prng, poly.RandomParams{
		Depth:    o.depth,
		MaxTerms: o.terms,
		MaxExp:   int32(o.maxExp),
		MaxCoeff: o.maxCoeff,
	})
}

func cmdGen(args []string) int {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	opts := &randomOpts{}
	opts.register(fs)
	_ = fs.Parse(args)

	if err := gen(os.Stdout, opts); err != nil {
		log.Print(err)
		return 1
	}

	return 0
}

// gen writes opts.n random polynomials to w, one per line, in calculator syntax.
func gen(w io.Writer, opts *randomOpts) error {
	g, err := opts.generator()
	if err != nil {
		return err
	}

	for i := 0; i < opts.n; i++ {
		p, err := g.Next()
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}

	return nil
}

func cmdBench(args []string) int {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	opts := &randomOpts{}
	opts.register(fs)
	op := fs.String("op", "mul", "operation to time: mul, add or at")
	_ = fs.Parse(args)

	if err := bench(os.Stdout, opts, *op); err != nil {
		log.Print(err)
		return 1
	}

	return 0
}

type binaryOp func(p, q poly.Poly) (poly.Poly, error)

func benchOp(name string) (binaryOp, bool) {
	switch name {
	case "mul":
		return poly.Poly.Mul, true
	case "add":
		return poly.Poly.Add, true
	case "at":
		return func(p, q poly.Poly) (poly.Poly, error) {
			return p.At(q.Coeff())
		}, true
	}

	return nil, false
}

// bench times op on opts.n random pairs and prints summary statistics in
// microseconds. Pairs that overflow are counted but not timed.
func bench(w io.Writer, opts *randomOpts, name string) error {
	op, ok := benchOp(name)
	if !ok {
		return fmt.Errorf("unknown op %q", name)
	}

	g, err := opts.generator()
	if err != nil {
		return err
	}

	var (
		samples  = make([]float64, 0, opts.n)
		overflow int
	)

	for i := 0; i < opts.n; i++ {
		p, err := g.Next()
		if err != nil {
			return err
		}

		q, err := g.Next()
		if err != nil {
			return err
		}

		start := time.Now()
		_, err = op(p, q)
		elapsed := time.Since(start)

		if errors.Is(err, poly.ErrOverflow) || errors.Is(err, poly.ErrExponentOverflow) {
			overflow++
			continue
		}

		if err != nil {
			return err
		}

		samples = append(samples, float64(elapsed.Nanoseconds())/1e3)
	}

	fmt.Fprintf(w, "op=%s samples=%d overflow=%d\n", name, len(samples), overflow)
	if len(samples) == 0 {
		return nil
	}

	mean, err := stats.Mean(samples)
	if err != nil {
		return err
	}

	median, err := stats.Median(samples)
	if err != nil {
		return err
	}

	p95, err := stats.Percentile(samples, 95)
	if err != nil {
		return err
	}

	worst, err := stats.Max(samples)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "mean=%.2fus median=%.2fus p95=%.2fus max=%.2fus\n", mean, median, p95, worst)

	return err
}

func cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	opts := &randomOpts{}
	opts.register(fs)
	_ = fs.Parse(args)

	mismatches, err := check(os.Stdout, opts)
	if err != nil {
		log.Print(err)
		return 1
	}

	if mismatches > 0 {
		return 1
	}

	return 0
}

// check compares ADD, SUB, MUL and AT against the same operations on the
// fingerprints of their operands. It returns the number of mismatches, each of
// which is reported on w.
func check(w io.Writer, opts *randomOpts) (int, error) {
	f, err := field.NewPrimeField(field.DefaultPrime)
	if err != nil {
		return 0, err
	}

	points := field.NewPointSet(f)

	g, err := opts.generator()
	if err != nil {
		return 0, err
	}

	var checked, skipped, mismatches int

	report := func(op string, p, q poly.Poly) {
		mismatches++
		fmt.Fprintf(w, "MISMATCH %s\n  p = %v\n  q = %v\n", op, p, q)
	}

	for i := 0; i < opts.n; i++ {
		p, err := g.Next()
		if err != nil {
			return 0, err
		}

		q, err := g.Next()
		if err != nil {
			return 0, err
		}

		fp := field.Fingerprint(f, p, points)
		fq := field.Fingerprint(f, q, points)

		ops := []struct {
			name string
			do   binaryOp
			want func() uint64
		}{
			{"ADD", poly.Poly.Add, func() uint64 { return f.Add(fp, fq) }},
			{"SUB", poly.Poly.Sub, func() uint64 { return f.Sub(fp, fq) }},
			{"MUL", poly.Poly.Mul, func() uint64 { return f.Mul(fp, fq) }},
		}

		for _, op := range ops {
			r, err := op.do(p, q)
			if err != nil {
				skipped++
				continue
			}

			checked++
			if field.Fingerprint(f, r, points) != op.want() {
				report(op.name, p, q)
			}
		}

		// Small evaluation points keep most AT results in range.
		x := int64(fq%17) - 8

		r, err := p.At(x)
		if err != nil {
			skipped++
			continue
		}

		checked++
		want := field.Fingerprint(f, p, field.Prepend(f.ReduceSigned(x), points))
		if field.Fingerprint(f, r, points) != want {
			report(fmt.Sprintf("AT %d", x), p, q)
		}
	}

	_, err = fmt.Fprintf(w, "checked=%d skipped=%d mismatches=%d\n", checked, skipped, mismatches)

	return mismatches, err
}
