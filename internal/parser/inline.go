package parser

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/steveyegge/mind/internal/types"
)

// excludedDirs are never descended by ScanInline.
var excludedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"venv":         true,
	".venv":        true,
	"env":          true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
	".mind":        true,
}

// commentSyntax maps a recognized file extension to the regex that strips
// its comment marker and captures the MEMORY: payload after it.
var commentSyntax = map[string]*regexp.Regexp{
	".py":  regexp.MustCompile(`(?i)#\s*memory:\s*(.+)$`),
	".rb":  regexp.MustCompile(`(?i)#\s*memory:\s*(.+)$`),
	".sh":  regexp.MustCompile(`(?i)#\s*memory:\s*(.+)$`),
	".yml": regexp.MustCompile(`(?i)#\s*memory:\s*(.+)$`),
	".yaml": regexp.MustCompile(`(?i)#\s*memory:\s*(.+)$`),

	".go":   regexp.MustCompile(`(?i)//\s*memory:\s*(.+)$`),
	".js":   regexp.MustCompile(`(?i)//\s*memory:\s*(.+)$`),
	".jsx":  regexp.MustCompile(`(?i)//\s*memory:\s*(.+)$`),
	".ts":   regexp.MustCompile(`(?i)//\s*memory:\s*(.+)$`),
	".tsx":  regexp.MustCompile(`(?i)//\s*memory:\s*(.+)$`),
	".java": regexp.MustCompile(`(?i)//\s*memory:\s*(.+)$`),
	".c":    regexp.MustCompile(`(?i)//\s*memory:\s*(.+)$`),
	".h":    regexp.MustCompile(`(?i)//\s*memory:\s*(.+)$`),
	".cpp":  regexp.MustCompile(`(?i)//\s*memory:\s*(.+)$`),
	".rs":   regexp.MustCompile(`(?i)//\s*memory:\s*(.+)$`),

	".html": regexp.MustCompile(`(?i)<!--\s*memory:\s*(.+?)\s*-->`),
	".htm":  regexp.MustCompile(`(?i)<!--\s*memory:\s*(.+?)\s*-->`),

	".css":  regexp.MustCompile(`(?i)/\*\s*memory:\s*(.+?)\s*\*/`),
	".scss": regexp.MustCompile(`(?i)/\*\s*memory:\s*(.+?)\s*\*/`),
}

// ScanInline walks a directory tree and extracts entities from MEMORY:
// comments in every recognized source file, skipping dependency/build/VCS
// directories. It never returns an error: unreadable files and directories
// are silently skipped, matching the parser's total-parse contract.
func (p *Parser) ScanInline(root string) []types.Entity {
	var entities []types.Entity

	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && excludedDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		re, ok := commentSyntax[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}
		entities = append(entities, scanFile(path, re)...)
		return nil
	})

	applyKeyMarkers(entities)
	return entities
}

func scanFile(path string, re *regexp.Regexp) []types.Entity {
	f, err := os.Open(path) // #nosec G304 - path comes from filepath.Walk under caller-supplied root
	if err != nil {
		return nil
	}
	defer f.Close()

	var out []types.Entity
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		m := re.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		payload := strings.TrimSpace(m[1])
		if payload == "" {
			continue
		}
		entity, ok := recognize(payload)
		if !ok {
			continue
		}
		entity.SourceFile = path
		entity.SourceLine = lineNo
		out = append(out, entity)
	}
	return out
}
