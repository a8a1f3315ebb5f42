package logger

import "go.uber.org/fx"

// Module provides the service-tagged JSON slog logger.
var Module = fx.Provide(New)
