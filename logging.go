package nextbusclient

import (
	"log/slog"
	"os"
)

// InitLogging configures the default structured logger for library and CLI
// use. The library logs only non-escalated events, such as dropped pairs in
// PredictByPairs.
func InitLogging() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
