package main

import (
	"flag"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tokenlore/storyd/internal/api"
	"github.com/tokenlore/storyd/internal/pubsub"
	"github.com/tokenlore/storyd/internal/repo"
	"github.com/tokenlore/storyd/pkg/environment"
	"github.com/tokenlore/storyd/pkg/errors"
)

const (
	ModelSingle = "single"
	ModelMulti  = "multi"
)

type Config struct {
	Environment environment.Env `yaml:"Environment"`
	Database    repo.Config     `yaml:"Database"`
	API         api.Config      `yaml:"API"`
	Feed        pubsub.Config   `yaml:"Feed"`
	Story       StoryConfig     `yaml:"Story"`
}

type StoryConfig struct {
	// Creator is the privileged identity: the only address allowed to
	// flip the toggle and author creator stories.
	Creator string `yaml:"creator"`

	// Model picks the ownership variant: "single" or "multi".
	Model string `yaml:"model"`

	Collections struct {
		Stories string `yaml:"stories"`
		Tokens  string `yaml:"tokens"`
	} `yaml:"collections"`
}

func loadConfig() (*Config, error) {
	path, err := filepath.Abs("config.yaml")
	if err != nil {
		return nil, errors.WrapFail(err, "build path to config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFail(err, "read \"config.yaml\"")
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.WrapFail(err, "parse yaml")
	}

	if cfg.Story.Creator == "" {
		return nil, errors.Error("config: story creator address is required")
	}

	if envFromFlags := getEnvFromFlags(); envFromFlags != nil {
		cfg.Environment = *envFromFlags
	}

	return &cfg, nil
}

func getEnvFromFlags() *environment.Env {
	raw := flag.String("env", "", "environment (dev, prod)")
	flag.Parse()
	if raw == nil {
		return nil
	}

	env := environment.FromString(*raw)
	return &env
}
