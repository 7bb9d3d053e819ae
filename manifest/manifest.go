// Package manifest handles regbc.toml codec configuration.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/regbc/pkg/bytecode"
)

// FileName is the name of the configuration file looked up by Load.
const FileName = "regbc.toml"

// Manifest represents a regbc.toml configuration.
type Manifest struct {
	Codec Codec `toml:"codec"`
	Log   Log   `toml:"log"`

	// Dir is the directory containing the regbc.toml file (set at load time).
	Dir string `toml:"-"`
}

// Codec configures how programs are decoded.
type Codec struct {
	SubOpcodes string `toml:"sub-opcodes"`
}

// Log configures the command-line tools' logging.
type Log struct {
	Verbosity int `toml:"verbosity"`
}

// Default returns the configuration used when no regbc.toml exists.
func Default() *Manifest {
	return &Manifest{
		Codec: Codec{SubOpcodes: bytecode.SubOpcodeCorrected.String()},
	}
}

// Load parses a regbc.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m := Default()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if m.Codec.SubOpcodes == "" {
		m.Codec.SubOpcodes = bytecode.SubOpcodeCorrected.String()
	}
	if _, err := bytecode.ParseSubOpcodeMode(m.Codec.SubOpcodes); err != nil {
		return nil, fmt.Errorf("%s: codec: %w", path, err)
	}

	return m, nil
}

// FindAndLoad walks up from startDir to find a regbc.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Write encodes m as regbc.toml in dir.
func Write(dir string, m *Manifest) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return fmt.Errorf("encode %s: %w", FileName, err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// Decoder returns a bytecode decoder configured by m.
func (m *Manifest) Decoder() (bytecode.Decoder, error) {
	mode, err := bytecode.ParseSubOpcodeMode(m.Codec.SubOpcodes)
	if err != nil {
		return bytecode.Decoder{}, err
	}
	return bytecode.Decoder{Mode: mode}, nil
}
