package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/cutout/internal/config"
)

type configCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func (c *configCmd) Program() string        { return c.subcommand("config") }
func (c *configCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	c := &configCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		fmt.Fprint(c.out, c.root.config.String())
		return nil
	case "path":
		fmt.Fprintln(c.out, configPath())
		return nil
	case "save":
		return c.runSave()
	default:
		return usageError(c, "unknown config command: %s", args[0])
	}
}

// configPath is the file the loader read, or the per-user default when none
// was found.
func configPath() string {
	if path := config.NewLoader(version, configPathOverride).GetConfigPath(); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.rc"
	}
	return filepath.Join(home, ".config", "cutout", "config.rc")
}

func (c *configCmd) runSave() error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(c.root.config.String()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
