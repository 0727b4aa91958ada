package promreg

import (
	"log/slog"
	"os"
	"sync"

	"github.com/joeycumines/logiface"
	logifaceslog "github.com/joeycumines/logiface-slog"
)

// Event is the concrete [logiface.Event] implementation used by this
// package's default logger, backed by the stdlib [log/slog] handler via the
// logiface-slog adapter.
type Event = logifaceslog.Event

var (
	// globalLogger is the package-level structured logger, following a
	// SetStructuredLogger-style global-configuration idiom. It defaults to a
	// disabled logger so the hot path never allocates or blocks on logging
	// unless a caller opts in.
	globalLogger struct {
		sync.RWMutex
		logger *logiface.Logger[*Event]
	}
)

func init() {
	globalLogger.logger = logiface.New[*Event](
		logifaceslog.NewLogger(slog.NewJSONHandler(os.Stderr, nil)),
		logiface.WithLevel[*Event](logiface.LevelDisabled),
	)
}

// SetLogger sets the package-level structured logger used for contract
// violations, garbage-collection summaries, and directory register/
// unregister events. Passing nil restores the disabled default.
func SetLogger(l *logiface.Logger[*Event]) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	if l == nil {
		l = logiface.New[*Event](
			logifaceslog.NewLogger(slog.NewJSONHandler(os.Stderr, nil)),
			logiface.WithLevel[*Event](logiface.LevelDisabled),
		)
	}
	globalLogger.logger = l
}

func getLogger() *logiface.Logger[*Event] {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}

// logFatalContract logs a [ContractViolation] at Emergency level. Callers
// abort the process immediately after calling this.
func logFatalContract(v *ContractViolation) {
	getLogger().Emerg().Str("rule", v.Rule).Str("detail", v.Detail).Log("promreg: contract violation")
}

// logGCPass logs a summary of a completed garbage-collection pass.
func logGCPass(ownerName string, reclaimed int) {
	getLogger().Debug().Str("owner", ownerName).Int("reclaimed", reclaimed).Log("promreg: garbage collection pass")
}

// logDirectoryChange logs directory register/unregister events.
func logDirectoryChange(action, ownerName string) {
	getLogger().Info().Str("action", action).Str("owner", ownerName).Log("promreg: directory")
}
