package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/logging"
)

// InitLogger configures the process-wide logger (level and format resolve
// from the runtime profile plus environment overrides) and stamps every
// event with the owning app name.
func InitLogger(app string) zerolog.Logger {
	logging.ConfigureRuntime()
	logger := log.Logger.With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
