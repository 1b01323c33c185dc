// Package mindconfig loads Mind's per-project tuning knobs and the
// process-wide CLI configuration layer, grounded on the teacher's
// internal/config.LocalConfig (direct YAML read) and cmd/bd/config.go's
// viper.New() sub-config pattern.
package mindconfig

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// RetrievalConfig is the subset of config.yaml that tunes the hybrid
// index. Read through LoadLocalConfig, unset fields are zero; read through
// NewViper and RetrievalConfigFromViper, unset fields take NewViper's
// defaults.
type RetrievalConfig struct {
	BM25K1          float64 `yaml:"bm25-k1"`
	BM25B           float64 `yaml:"bm25-b"`
	RRFK            float64 `yaml:"rrf-k"`
	VectorWeight    float64 `yaml:"vector-weight"`
	KeywordWeight   float64 `yaml:"keyword-weight"`
	FetchMultiplier int     `yaml:"fetch-multiplier"`
	EmbeddingDim    int     `yaml:"embedding-dim"`
}

// LocalConfig mirrors the teacher's LocalConfig: the subset of
// .mind/config.yaml read directly from disk rather than through the
// viper singleton, for callers that need it before viper initializes or
// from a project directory other than the current one.
type LocalConfig struct {
	Author     string          `yaml:"author"`
	Model      string          `yaml:"model"`
	Retrieval  RetrievalConfig `yaml:"retrieval"`
}

// LoadLocalConfig reads and parses .mind/config.yaml from projectDir.
// Returns an empty LocalConfig (not nil) if the file is missing or
// malformed, per spec.md §7's line/request-granularity skip policy.
func LoadLocalConfig(projectDir string) *LocalConfig {
	configPath := filepath.Join(projectDir, ".mind", "config.yaml")
	data, err := os.ReadFile(configPath) // #nosec G304 - path built from caller-supplied project dir
	if err != nil {
		return &LocalConfig{}
	}

	var cfg LocalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &LocalConfig{}
	}
	return &cfg
}

// LoadLocalConfigWithEnv reads .mind/config.yaml and applies MIND_*
// environment overrides, following the teacher's BEADS_*-env-overrides-
// config-file convention renamed to this project.
func LoadLocalConfigWithEnv(projectDir string) *LocalConfig {
	cfg := LoadLocalConfig(projectDir)
	if model := os.Getenv("MIND_MODEL"); model != "" {
		cfg.Model = model
	}
	if author := os.Getenv("MIND_AUTHOR"); author != "" {
		cfg.Author = author
	}
	return cfg
}

// NewViper builds a process-wide viper instance layering (highest to
// lowest precedence) explicit flags, MIND_*-prefixed environment
// variables, and projectDir/.mind/config.yaml — the same layering
// cmd/bd/config.go applies to .beads/config.yaml.
func NewViper(projectDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(filepath.Join(projectDir, ".mind", "config.yaml"))
	v.SetEnvPrefix("MIND")
	v.AutomaticEnv()

	v.SetDefault("retrieval.bm25-k1", 1.5)
	v.SetDefault("retrieval.bm25-b", 0.75)
	v.SetDefault("retrieval.rrf-k", 60.0)
	v.SetDefault("retrieval.vector-weight", 0.7)
	v.SetDefault("retrieval.keyword-weight", 0.3)
	v.SetDefault("retrieval.fetch-multiplier", 3)
	v.SetDefault("retrieval.embedding-dim", 384)

	_ = v.ReadInConfig() // missing/unreadable config file is not an error

	return v
}

// RetrievalConfigFromViper extracts the retrieval tuning knobs from a
// viper instance built by NewViper.
func RetrievalConfigFromViper(v *viper.Viper) RetrievalConfig {
	return RetrievalConfig{
		BM25K1:          v.GetFloat64("retrieval.bm25-k1"),
		BM25B:           v.GetFloat64("retrieval.bm25-b"),
		RRFK:            v.GetFloat64("retrieval.rrf-k"),
		VectorWeight:    v.GetFloat64("retrieval.vector-weight"),
		KeywordWeight:   v.GetFloat64("retrieval.keyword-weight"),
		FetchMultiplier: v.GetInt("retrieval.fetch-multiplier"),
		EmbeddingDim:    v.GetInt("retrieval.embedding-dim"),
	}
}
