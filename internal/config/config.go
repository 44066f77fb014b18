package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// Validation bounds for display names and message bodies.
	MaxNameLen    int `mapstructure:"max_name_len" yaml:"max_name_len"`
	MaxMessageLen int `mapstructure:"max_message_len" yaml:"max_message_len"`

	// EventBuffer bounds each connection's outbound event queue;
	// overflow drops events rather than stalling dispatch.
	EventBuffer int `mapstructure:"event_buffer" yaml:"event_buffer"`

	// JoinTimeout disconnects sessions that never join a room.
	// Zero disables the timer.
	JoinTimeout time.Duration `mapstructure:"join_timeout" yaml:"join_timeout"`

	// MessageRateLimit caps chat messages per connection per minute.
	// Zero disables the limit.
	MessageRateLimit int `mapstructure:"message_rate_limit" yaml:"message_rate_limit"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		MaxNameLen:        20,
		MaxMessageLen:     200,
		EventBuffer:       32,
		JoinTimeout:       30 * time.Second,
		MessageRateLimit:  60,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.MaxNameLen != 0 {
		c.MaxNameLen = other.MaxNameLen
	}
	if other.MaxMessageLen != 0 {
		c.MaxMessageLen = other.MaxMessageLen
	}
	if other.EventBuffer != 0 {
		c.EventBuffer = other.EventBuffer
	}
	if other.JoinTimeout != 0 {
		c.JoinTimeout = other.JoinTimeout
	}
	if other.MessageRateLimit != 0 {
		c.MessageRateLimit = other.MessageRateLimit
	}
}
