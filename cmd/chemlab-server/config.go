package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/daniacca/chemlab/internal/chemlab"
)

// ServerConfig holds the server configuration
type ServerConfig struct {
	Addr        string
	RulesFile   string
	StoreKind   string
	SQLitePath  string
	PostgresDSN string
	Seed        bool
	LogLevel    string
	MQTTBroker  string
	MQTTTopic   string
}

// configResolver defines how to resolve a single configuration value
type configResolver struct {
	flagName    string
	envVarName  string
	defaultVal  string
	description string
	setter      func(*ServerConfig, string)
}

// loadServerConfig loads server configuration from CLI flags and environment variables.
// Uses a resolver pattern to make it easy to add new configuration options.
func loadServerConfig() ServerConfig {
	cfg := ServerConfig{}

	// Define all configuration resolvers
	// To add a new option, just add a new resolver here
	resolvers := []configResolver{
		{
			flagName:    "addr",
			envVarName:  "CHEMLAB_ADDR",
			defaultVal:  ":8080",
			description: "HTTP listen address (e.g. :8080, 0.0.0.0:8080)",
			setter:      func(c *ServerConfig, v string) { c.Addr = v },
		},
		{
			flagName:    "rules-file",
			envVarName:  "CHEMLAB_RULES_FILE",
			defaultVal:  "",
			description: "optional path to a JSON or YAML reaction rule file; builtin rules are used when empty",
			setter:      func(c *ServerConfig, v string) { c.RulesFile = v },
		},
		{
			flagName:    "store",
			envVarName:  "CHEMLAB_STORE",
			defaultVal:  "sqlite",
			description: "catalog store backend: sqlite, postgres or memory",
			setter:      func(c *ServerConfig, v string) { c.StoreKind = v },
		},
		{
			flagName:    "sqlite-path",
			envVarName:  "CHEMLAB_SQLITE_PATH",
			defaultVal:  "./data/chemlab.db",
			description: "path of the SQLite catalog database (store=sqlite)",
			setter:      func(c *ServerConfig, v string) { c.SQLitePath = v },
		},
		{
			flagName:    "postgres-dsn",
			envVarName:  "CHEMLAB_POSTGRES_DSN",
			defaultVal:  "",
			description: "Postgres DSN for the catalog database (store=postgres)",
			setter:      func(c *ServerConfig, v string) { c.PostgresDSN = v },
		},
		{
			flagName:    "seed",
			envVarName:  "CHEMLAB_SEED",
			defaultVal:  "true",
			description: "load the builtin chemical library into the store at startup",
			setter: func(c *ServerConfig, v string) {
				if val, err := strconv.ParseBool(v); err == nil {
					c.Seed = val
				} else {
					log.Printf("Invalid value for seed: %s, using default true", v)
					c.Seed = true
				}
			},
		},
		{
			flagName:    "log-level",
			envVarName:  "CHEMLAB_LOG_LEVEL",
			defaultVal:  "info",
			description: "Log level: debug, info, warn, error",
			setter:      func(c *ServerConfig, v string) { c.LogLevel = v },
		},
		{
			flagName:    "mqtt-broker",
			envVarName:  "CHEMLAB_MQTT_BROKER",
			defaultVal:  "",
			description: "optional MQTT broker URL for reaction events (e.g. tcp://localhost:1883)",
			setter:      func(c *ServerConfig, v string) { c.MQTTBroker = v },
		},
		{
			flagName:    "mqtt-topic",
			envVarName:  "CHEMLAB_MQTT_TOPIC",
			defaultVal:  "chemlab/reactions",
			description: "MQTT topic reaction events are published on",
			setter:      func(c *ServerConfig, v string) { c.MQTTTopic = v },
		},
	}

	// Register string flags first
	flagVars := make(map[string]*string)
	for _, resolver := range resolvers {
		flagVars[resolver.flagName] = flag.String(resolver.flagName, "", resolver.description)
	}

	// Parse flags once
	flag.Parse()

	// Resolve values for each resolver
	for _, resolver := range resolvers {
		var value string
		if *flagVars[resolver.flagName] != "" {
			value = *flagVars[resolver.flagName]
		} else if envValue := os.Getenv(resolver.envVarName); envValue != "" {
			value = envValue
		} else {
			value = resolver.defaultVal
		}
		resolver.setter(&cfg, value)
	}

	return cfg
}

// loadRules returns the rule table: the file at path when set, the
// builtin table otherwise.
func loadRules(path string) (*chemlab.RuleSet, error) {
	if path == "" {
		return chemlab.DefaultRules(), nil
	}
	return chemlab.LoadRuleFile(path)
}
