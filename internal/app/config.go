package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chronoline/backend/internal/ingest"
	"github.com/chronoline/backend/internal/pkg/logger"
	"github.com/chronoline/backend/internal/utils"
)

// Config is the process configuration. Values come from an optional YAML
// file (CONFIG_FILE) with environment variables taking precedence; database
// connection settings live in their own POSTGRES_* variables read by the
// db package.
type Config struct {
	HTTPPort     string
	AllowOrigins []string
	IconDir      string
	Policy       ingest.Policy
}

type fileConfig struct {
	HTTP struct {
		Port         string   `yaml:"port"`
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"http"`
	Icons struct {
		Dir string `yaml:"dir"`
	} `yaml:"icons"`
	Ingest struct {
		RequireSources      bool  `yaml:"require_sources"`
		TrustSuppliedImages *bool `yaml:"trust_supplied_images"`
		SkipDuplicateTitles bool  `yaml:"skip_duplicate_titles"`
	} `yaml:"ingest"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	var fc fileConfig
	fc.HTTP.Port = "8080"
	fc.HTTP.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	policy := ingest.DefaultPolicy()
	policy.RequireSources = fc.Ingest.RequireSources
	if fc.Ingest.TrustSuppliedImages != nil {
		policy.TrustSuppliedImages = *fc.Ingest.TrustSuppliedImages
	}
	policy.SkipDuplicateTitles = fc.Ingest.SkipDuplicateTitles

	cfg := Config{
		HTTPPort:     utils.GetEnv("HTTP_PORT", fc.HTTP.Port, log),
		AllowOrigins: fc.HTTP.AllowOrigins,
		IconDir:      utils.GetEnv("ICON_DIR", fc.Icons.Dir, log),
		Policy: ingest.Policy{
			RequireSources:      utils.GetEnvAsBool("INGEST_REQUIRE_SOURCES", policy.RequireSources, log),
			TrustSuppliedImages: utils.GetEnvAsBool("INGEST_TRUST_SUPPLIED_IMAGES", policy.TrustSuppliedImages, log),
			SkipDuplicateTitles: utils.GetEnvAsBool("INGEST_SKIP_DUPLICATE_TITLES", policy.SkipDuplicateTitles, log),
		},
	}
	if origins := os.Getenv("ALLOW_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}
	return cfg, nil
}
