package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/chazu/regbc/manifest"
	"github.com/chazu/regbc/pkg/bytecode"
	"github.com/chazu/regbc/pkg/bytecode/wire"
)

var errUsage = errors.New("wrong number of arguments")

// handleCheckCommand parses every file and reports string and instruction
// counts. All files are checked even after a failure.
func handleCheckCommand(opts options, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("check: %w", errUsage)
	}

	failed := 0
	for _, path := range args {
		p, err := readProgram(opts.decoder, path)
		if err != nil {
			log.Errorf("%s: %s", path, err.Error())
			fmt.Fprintf(opts.stdout, "%s: FAIL %v\n", path, err)
			failed++
			continue
		}
		log.Infof("%s: parsed", path)
		fmt.Fprintf(opts.stdout, "%s: ok, %d strings, %d instructions\n", path, len(p.Strings), p.Len())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func handlePackCommand(opts options, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("pack: %w", errUsage)
	}
	p, err := readProgram(opts.decoder, args[0])
	if err != nil {
		return err
	}
	data, err := wire.Marshal(p)
	if err != nil {
		return fmt.Errorf("pack %s: %w", args[0], err)
	}
	if err := os.WriteFile(args[1], data, 0644); err != nil {
		return err
	}
	log.Infof("packed %s -> %s (%d bytes)", args[0], args[1], len(data))
	return nil
}

func handleUnpackCommand(opts options, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("unpack: %w", errUsage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	p, err := wire.UnmarshalWith(data, opts.decoder)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", args[0], err)
	}
	raw := p.Serialize()
	if err := os.WriteFile(args[1], raw, 0644); err != nil {
		return err
	}
	log.Infof("unpacked %s -> %s (%d bytes)", args[0], args[1], len(raw))
	return nil
}

func handleInitCommand(args []string) error {
	dir := "."
	switch len(args) {
	case 0:
	case 1:
		dir = args[0]
	default:
		return fmt.Errorf("init: %w", errUsage)
	}
	return manifest.Write(dir, manifest.Default())
}

func readProgram(d bytecode.Decoder, path string) (*bytecode.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := d.ParseProgram(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}
