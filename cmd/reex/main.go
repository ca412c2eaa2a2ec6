// Command reex prints random strings matched by a pattern, or, with -grep,
// the input lines that a pattern matches in full.
//
// Usage:
//
//	reex [-n N] [-p P] [-max L] [-seed S] PATTERN
//	reex -grep PATTERN [FILE...]
//
// The defaults of -n, -p and -max can be set with the REEX_NUM,
// REEX_STOP_PROBABILITY and REEX_MAX_LENGTH environment variables.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cast"

	"github.com/tchajed/reex"
)

// Exit statuses, as grep(1).
const (
	exitOK      = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	os.Exit(run([3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args[1:]))
}

type flags struct {
	num     int
	stopP   float64
	maxLen  int
	seed    uint64
	grep    bool
	quote   bool
	noQuote bool
}

type envDefault struct {
	name string
	set  func(v string) error
}

// loadEnvDefaults overrides the built-in defaults of f from the environment.
func loadEnvDefaults(f *flags, getenv func(string) string) error {
	defaults := []envDefault{
		{"REEX_NUM", func(v string) (err error) {
			f.num, err = cast.ToIntE(v)
			return err
		}},
		{"REEX_STOP_PROBABILITY", func(v string) (err error) {
			f.stopP, err = cast.ToFloat64E(v)
			return err
		}},
		{"REEX_MAX_LENGTH", func(v string) (err error) {
			f.maxLen, err = cast.ToIntE(v)
			return err
		}},
	}
	for _, d := range defaults {
		v := getenv(d.name)
		if v == "" {
			continue
		}
		if err := d.set(v); err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
	}
	return nil
}

func newFlagSet(f *flags) *flag.FlagSet {
	fs := flag.NewFlagSet("reex", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.IntVar(&f.num, "n", f.num, "number of examples to generate")
	fs.IntVar(&f.num, "num", f.num, "same as -n")
	fs.Float64Var(&f.stopP, "p", f.stopP, "probability of stopping whenever the example so far matches")
	fs.IntVar(&f.maxLen, "max", f.maxLen, "length after which to stop at the first match; negative for no limit")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed; 0 picks one at random")
	fs.BoolVar(&f.grep, "grep", false, "print lines of the files (or stdin) that the pattern matches in full")
	fs.BoolVar(&f.quote, "quote", false, "always quote examples")
	fs.BoolVar(&f.noQuote, "no-quote", false, "never quote examples")
	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: reex [flags] PATTERN")
	fmt.Fprintln(out, "       reex -grep PATTERN [FILE...]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// run runs the command with the given standard files and arguments (without
// the program name), and returns the exit status.
func run(fds [3]*os.File, args []string) int {
	return runWith(fds[0], fds[1], fds[2], isTerminal(fds[1]), os.Getenv, args)
}

func runWith(stdin io.Reader, stdout, stderr io.Writer, terminal bool, getenv func(string) string, args []string) int {
	logger := log.New(stderr, "reex: ", 0)

	f := flags{num: 1, stopP: reex.DefaultStopProbability, maxLen: -1}
	if err := loadEnvDefaults(&f, getenv); err != nil {
		logger.Print(err)
		return exitError
	}
	fs := newFlagSet(&f)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stdout, fs)
			return exitOK
		}
		logger.Print(err)
		usage(stderr, fs)
		return exitError
	}
	if fs.NArg() == 0 || (!f.grep && fs.NArg() > 1) {
		usage(stderr, fs)
		return exitError
	}

	re, err := reex.Parse(fs.Arg(0))
	if err != nil {
		logger.Print(err)
		return exitError
	}

	if f.grep {
		return grep(re, fs.Args()[1:], stdin, stdout, logger)
	}

	opts := []reex.GeneratorOption{
		reex.WithStopProbability(f.stopP),
		reex.WithMaxLength(f.maxLen),
	}
	if f.seed != 0 {
		opts = append(opts, reex.WithSeed(f.seed))
	}
	g := reex.NewGenerator(opts...)
	// Quoting keeps empty examples visible on a terminal.
	quote := (terminal || f.quote) && !f.noQuote
	w := bufio.NewWriter(stdout)
	for i := 0; i < f.num; i++ {
		example := g.Generate(re)
		if quote {
			example = strconv.Quote(example)
		}
		fmt.Fprintln(w, example)
	}
	if err := w.Flush(); err != nil {
		logger.Print(err)
		return exitError
	}
	return exitOK
}

func grep(re reex.Regex, paths []string, stdin io.Reader, stdout io.Writer, logger *log.Logger) int {
	w := bufio.NewWriter(stdout)
	defer w.Flush()

	foundAny := false
	failed := false
	if len(paths) == 0 {
		found, err := scanAndPrint(re, "", stdin, w)
		if err != nil {
			logger.Printf("stdin: %v", err)
			failed = true
		}
		foundAny = found
	}
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			logger.Print(err)
			failed = true
			continue
		}
		prefix := ""
		if len(paths) > 1 {
			prefix = path + ":"
		}
		found, err := scanAndPrint(re, prefix, file, w)
		file.Close()
		if err != nil {
			logger.Printf("%s: %v", path, err)
			failed = true
		}
		foundAny = foundAny || found
	}

	switch {
	case failed:
		return exitError
	case foundAny:
		return exitOK
	default:
		return exitNoMatch
	}
}

func scanAndPrint(re reex.Regex, prefix string, r io.Reader, w io.Writer) (bool, error) {
	found := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if re.Match(line) {
			found = true
			fmt.Fprintf(w, "%s%s\n", prefix, line)
		}
	}
	return found, scanner.Err()
}
