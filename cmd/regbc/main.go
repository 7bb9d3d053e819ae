// regbc CLI - validates and converts register VM bytecode programs
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/regbc/manifest"
	"github.com/chazu/regbc/pkg/bytecode"
)

const toolName = "regbc"

var log = commonlog.GetLogger(toolName)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the global flags plus whatever regbc.toml contributed.
type options struct {
	verbosity int
	decoder   bytecode.Decoder
	stdout    io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbosity := fs.Int("v", -1, "Log verbosity (overrides [log] verbosity in regbc.toml)")
	configDir := fs.String("config", ".", "Directory to search upward from for regbc.toml")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: regbc [options] <command> [args...]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  check FILE...     Parse raw programs and report their size\n")
		fmt.Fprintf(stderr, "  pack IN OUT       Convert a raw program to a CBOR envelope\n")
		fmt.Fprintf(stderr, "  unpack IN OUT     Convert a CBOR envelope to a raw program\n")
		fmt.Fprintf(stderr, "  init [DIR]        Write a default regbc.toml\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	m, err := manifest.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if m == nil {
		m = manifest.Default()
	}

	opts := options{verbosity: m.Log.Verbosity, stdout: stdout}
	if *verbosity >= 0 {
		opts.verbosity = *verbosity
	}
	commonlog.Configure(opts.verbosity, nil)

	opts.decoder, err = m.Decoder()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if m.Dir != "" {
		log.Debugf("using %s/%s (sub-opcodes %s)", m.Dir, manifest.FileName, opts.decoder.Mode)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}

	switch rest[0] {
	case "check":
		err = handleCheckCommand(opts, rest[1:])
	case "pack":
		err = handlePackCommand(opts, rest[1:])
	case "unpack":
		err = handleUnpackCommand(opts, rest[1:])
	case "init":
		err = handleInitCommand(rest[1:])
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", rest[0])
		fs.Usage()
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
