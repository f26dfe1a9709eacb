package report

import (
	"sync"
	"time"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the set
// log level and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors reported so far.
	errorCount int

	// The number of warnings reported so far.
	warnCount int

	startTime time.Time
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// LogLevelNames are the names accepted for log levels on the command line and
// in build profiles.
var LogLevelNames = []string{"silent", "error", "warn", "verbose"}

// LogLevelFromName converts a log level name into its enumerated value.
func LogLevelFromName(name string) (int, bool) {
	for i, lname := range LogLevelNames {
		if lname == name {
			return i, true
		}
	}

	return LogLevelVerbose, false
}

// rep is the global reporter instance.  It starts out verbose so that the
// package is usable before InitReporter is called.
var rep = newReporter(LogLevelVerbose)

func newReporter(logLevel int) *Reporter {
	return &Reporter{
		m:         &sync.Mutex{},
		logLevel:  logLevel,
		startTime: time.Now(),
	}
}

// InitReporter initializes the global error reporter to the given log level.
func InitReporter(logLevel int) {
	rep = newReporter(logLevel)
}
