package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/mind/internal/parser"
	"github.com/steveyegge/mind/internal/types"
)

var parseScanInline bool

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse MEMORY.md (and optionally MEMORY: comments) into entities",
	Run: func(_ *cobra.Command, _ []string) {
		os.Exit(runParse(projectDir, parseScanInline, jsonOutput))
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseScanInline, "scan-inline", false, "Also scan source files for MEMORY: comments")
}

func runParse(dir string, scanInline, asJSON bool) int {
	memoryPath := filepath.Join(dir, "MEMORY.md")
	text, err := os.ReadFile(memoryPath) // #nosec G304 - path built from caller-supplied project dir
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	p := parser.New()
	result := p.Parse(string(text), memoryPath)
	if scanInline {
		result.Entities = append(result.Entities, p.ScanInline(dir)...)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
		return 0
	}

	printEntities(result.Entities)
	return 0
}

func printEntities(entities []types.Entity) {
	if len(entities) == 0 {
		fmt.Println("no entities found")
		return
	}
	for _, e := range entities {
		label := string(e.Kind)
		switch e.Kind {
		case types.KindDecision:
			label = color.CyanString(label)
		case types.KindIssue:
			label = color.RedString(label)
		case types.KindLearning:
			label = color.YellowString(label)
		}
		fmt.Printf("[%s] %.2f %s\n", label, e.Confidence, e.Title)
	}
}
