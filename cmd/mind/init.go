package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const memoryTemplate = `# Project Memory

## Project State
- Goal:
- Stack:
- Blocked:

## Gotchas

`

// projectTOML is the .mind/project.toml snapshot written by init: the
// project name and an empty goal. No command reads it back. Grounded on
// internal/recipes.go's toml.NewEncoder usage.
type projectTOML struct {
	Name string `toml:"name"`
	Goal string `toml:"goal"`
}

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize mind in the current directory",
	Long:  `Creates a .mind/ directory with config.yaml and project.toml, plus a MEMORY.md template if one doesn't already exist.`,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runInit(projectDir, initForce); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing MEMORY.md/.mind files")
}

func runInit(dir string, force bool) error {
	mindDir := filepath.Join(dir, ".mind")
	if err := os.MkdirAll(mindDir, 0o755); err != nil {
		return fmt.Errorf("creating .mind directory: %w", err)
	}

	memoryPath := filepath.Join(dir, "MEMORY.md")
	if _, err := os.Stat(memoryPath); force || os.IsNotExist(err) {
		if err := os.WriteFile(memoryPath, []byte(memoryTemplate), 0o644); err != nil {
			return fmt.Errorf("writing MEMORY.md: %w", err)
		}
	}

	configPath := filepath.Join(mindDir, "config.yaml")
	if _, err := os.Stat(configPath); force || os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(defaultConfigYAML), 0o644); err != nil {
			return fmt.Errorf("writing .mind/config.yaml: %w", err)
		}
	}

	projectPath := filepath.Join(mindDir, "project.toml")
	if _, err := os.Stat(projectPath); force || os.IsNotExist(err) {
		f, err := os.Create(projectPath) // #nosec G304 - path built from caller-supplied project dir
		if err != nil {
			return fmt.Errorf("creating .mind/project.toml: %w", err)
		}
		defer f.Close()
		if err := toml.NewEncoder(f).Encode(projectTOML{Name: filepath.Base(absPath(dir)), Goal: ""}); err != nil {
			return fmt.Errorf("writing .mind/project.toml: %w", err)
		}
	}

	if !quietFlag {
		fmt.Println(color.GreenString("✓") + " initialized mind in " + dir)
	}
	return nil
}

func absPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

const defaultConfigYAML = `author: ""
model: ""
retrieval:
  bm25-k1: 1.5
  bm25-b: 0.75
  rrf-k: 60.0
  vector-weight: 0.7
  keyword-weight: 0.3
  fetch-multiplier: 3
  embedding-dim: 384
`
