// Package monitoring carries the process-wide diagnostic logger used
// for data-quality anomalies and operational messages.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to
// log.Printf; callers that need to mute or capture output (tests, the
// CLI) replace it via SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. A nil argument installs a
// no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
