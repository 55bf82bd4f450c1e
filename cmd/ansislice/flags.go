// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --start, --end, --ellipsis, --ambiguous-wide, --file, --verbose

package main

import (
	"flag"
	"math"
	"strconv"
)

type cliArgs struct {
	start         float64
	end           float64
	ellipsis      string
	ambiguousWide bool
	file          string
	verbose       bool
}

func parseFlags() cliArgs {
	var args cliArgs
	var endStr string

	flag.Float64Var(&args.start, "start", 0, "slice start column (negative counts from end)")
	flag.StringVar(&endStr, "end", "", "slice end column, exclusive (negative counts from end; empty means to end of input)")
	flag.StringVar(&args.ellipsis, "ellipsis", "", "string to substitute for cut content at the start/end of the window")
	flag.BoolVar(&args.ambiguousWide, "ambiguous-wide", false, "treat East-Asian-Ambiguous codepoints as width 2")
	flag.StringVar(&args.file, "file", "", "read input from this file instead of stdin")
	flag.BoolVar(&args.verbose, "verbose", false, "log the requested bounds, identity signal and output length to stderr")

	flag.Parse()

	if endStr == "" {
		args.end = math.Inf(1)
	} else {
		args.end = parseEnd(endStr)
	}
	return args
}

func parseEnd(s string) float64 {
	switch s {
	case "inf", "+inf", "Inf":
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}
