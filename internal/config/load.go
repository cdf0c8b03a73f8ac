package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoConfig      = errors.New("no configuration file found")
	ErrInvalidChoice = errors.New("invalid configuration choice")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Extensions recognised by Discover. YAML is a superset of JSON, so JSON
// configs load unchanged.
var Extensions = []string{".yaml", ".yml", ".json"}

// Load loads configuration with priority: defaults < file < flags.
// Without an explicit path the working directory is searched; several
// candidates are offered on stdin/stdout.
func Load() (*Config, error) {
	return load(ConfigPath(), ".", os.Stdin, os.Stdout)
}

func load(explicit, dir string, in io.Reader, out io.Writer) (*Config, error) {
	configPath, err := resolvePath(explicit, dir, in, out)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads a config file over the defaults and resolves relative
// mesh paths against the file's directory. Flags are not applied.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	cfg.Path = path
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

func resolvePath(explicit, dir string, in io.Reader, out io.Writer) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	candidates, err := Discover(dir)
	if err != nil {
		return "", err
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrNoConfig, dir)
	case 1:
		return candidates[0], nil
	default:
		return Choose(candidates, in, out)
	}
}

// Discover lists config files in dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range Extensions {
			if ext == want {
				paths = append(paths, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	return paths, nil
}

// Choose lists paths on out and reads a 1-based selection from in.
func Choose(paths []string, in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Several configuration files were found:")
	fmt.Fprintln(out)
	for i, p := range paths {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, p)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, "Which file should be loaded? ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("%w: %v", ErrInvalidChoice, err)
	}
	index, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidChoice, strings.TrimSpace(line))
	}
	if index < 1 || index > len(paths) {
		return "", fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidChoice, index, len(paths))
	}
	return paths[index-1], nil
}

// loadFromFile loads config from a YAML (or JSON) file, merging with
// existing values. Keys outside the schema are rejected.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) resolvePaths(dir string) {
	for i, p := range c.Scene.ObjFiles {
		if !filepath.IsAbs(p) {
			c.Scene.ObjFiles[i] = filepath.Join(dir, p)
		}
	}
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Scene.Phases != nil && *c.Scene.Phases < 0 {
		return fmt.Errorf("%w: negative phase count %d", ErrInvalidConfig, *c.Scene.Phases)
	}
	if c.Transitions.Fast < 0 || c.Transitions.Slow < 0 {
		return fmt.Errorf("%w: negative transition duration", ErrInvalidConfig)
	}
	if len(c.Scene.Sequence) == 0 {
		c.Scene.Sequence = []Instruction{{Command: CmdUserCallback}}
	}
	return nil
}
