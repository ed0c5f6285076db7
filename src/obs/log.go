// Package obs provides the package-level structured logger used across the
// Diodon module for phase-boundary observability. It exists because the
// distilled specification is silent on logging, not because the digest
// engine needs to be chatty: callers computing a digest at the fast profile
// (L = 20000 rounds) would drown in output if every round logged, so only
// phase transitions are logged, at Debug level.
package obs

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the module-wide logger. Callers that want different behavior
// (a different writer, a different level) can reassign it at program
// startup; the engine package only ever calls Logger.Debug().
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().
	Timestamp().
	Str("component", "diodon").
	Logger()
