// ABOUTME: CLI entry point for ansislice
// ABOUTME: Reads stdin or --file, slices by visible column, writes the result to stdout

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	pilog "github.com/mauromedda/ansislice/internal/log"
	"github.com/mauromedda/ansislice/pkg/ansislice"
)

func main() {
	args := parseFlags()

	if args.verbose {
		pilog.SetLevel(slog.LevelDebug)
	}

	if err := run(args, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs, stdin io.Reader, stdout io.Writer) error {
	input, err := readInput(args.file, stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var opts []ansislice.Option
	if args.ellipsis != "" {
		opts = append(opts, ansislice.WithEllipsis(args.ellipsis))
	}
	if args.ambiguousWide {
		opts = append(opts, ansislice.WithAmbiguousWide())
	}

	out, identity := ansislice.Slice(input, args.start, args.end, opts...)
	pilog.DebugKV("slice resolved", "start", args.start, "end", args.end, "identity", identity, "outputBytes", len(out))

	_, err = io.WriteString(stdout, out)
	return err
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
