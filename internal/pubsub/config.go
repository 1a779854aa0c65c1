package pubsub

type Config struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Group   string   `yaml:"group"`

	// Follow starts the audit follower on the same topic.
	Follow bool `yaml:"follow"`
}

func (c Config) Enabled() bool {
	return len(c.Brokers) > 0
}
