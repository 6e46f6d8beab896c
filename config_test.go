package main

import "testing"

func validConfig() *Config {
	return &Config{
		backendURL: "http://localhost:5139",
		bind:       "0.0.0.0",
		port:       8080,
		minCards:   0,
		maxCards:   20,
	}
}

func TestConfigValidate(t *testing.T) {
	if err := validConfig().validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.port = 0 }},
		{"port too high", func(c *Config) { c.port = 70000 }},
		{"backend url without scheme", func(c *Config) { c.backendURL = "localhost:5139" }},
		{"backend url wrong scheme", func(c *Config) { c.backendURL = "ftp://localhost" }},
		{"backend url without host", func(c *Config) { c.backendURL = "http://" }},
		{"negative min cards", func(c *Config) { c.minCards = -1 }},
		{"zero max cards", func(c *Config) { c.maxCards = 0 }},
		{"min above max", func(c *Config) { c.minCards = 5; c.maxCards = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestCmdFlagDefaults(t *testing.T) {
	cfg := &Config{}
	cmd := newCmd(cfg)

	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.backendURL != "http://localhost:5139" {
		t.Fatalf("unexpected default backend url %q", cfg.backendURL)
	}
	if cfg.port != 8080 || cfg.minCards != 0 || cfg.maxCards != 20 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
