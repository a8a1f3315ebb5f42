package config

import "go.uber.org/fx"

// Module provides *Config read from the dotenv file, environment and flags.
var Module = fx.Provide(Load)
