// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env tags. Load parses a
// struct type once per process and caches the result, so independent
// packages can ask for the same config without re-reading the environment.
// A ./.env file is loaded through godotenv before the first parse unless
// LoadEnvFiles was called with explicit paths.
//
// Configs implementing Validator are checked right after parsing; failures
// are reported as ErrInvalidConfig.
//
//	var cfg httpserver.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package config
