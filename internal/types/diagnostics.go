package types

// DiagnosticKind classifies a non-fatal condition observed during a search.
type DiagnosticKind string

const (
	DirectoryEmpty  DiagnosticKind = "directory_empty"
	FileReadFailure DiagnosticKind = "file_read_failure"
)

// Diagnostic is an informational message attached to a search report.
type Diagnostic struct {
	Kind    DiagnosticKind
	Path    string
	Message string
}

// Strategy names a concurrency strategy for running the scan workers.
type Strategy string

const (
	// StrategyShared runs workers that append into one locked result.
	StrategyShared Strategy = "shared"
	// StrategyIsolated runs workers that hand back private results over a channel.
	StrategyIsolated Strategy = "isolated"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategyShared, StrategyIsolated:
		return Strategy(s), true
	default:
		return "", false
	}
}
