// Package logger configures the global zerolog logger.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global log level and output. Production emits JSON lines;
// every other environment gets a human-readable console writer with callers.
func Init(level, environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	environment = strings.ToLower(strings.TrimSpace(environment))
	if environment == "production" || environment == "prod" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()
	}

	logLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		if level != "" {
			log.Warn().Str("level", level).Msg("Unknown log level - defaulting to info")
		}
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	log.Info().Str("environment", environment).Str("level", logLevel.String()).Msg("Logger initialized")
}
