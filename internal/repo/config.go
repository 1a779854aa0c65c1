package repo

import "time"

type Config struct {
	Storage string      `yaml:"storage"`
	Mongo   MongoConfig `yaml:"mongo"`
}

type MongoConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`

	Database string `yaml:"database"`

	Auth struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
}
