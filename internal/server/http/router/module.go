package router

import "go.uber.org/fx"

// Module provides the gin engine serving the REST API.
var Module = fx.Provide(Setup)
