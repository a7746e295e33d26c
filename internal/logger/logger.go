// Package logger provides a small tagged console logger for startup and
// request-level messages. The calculation engine itself never logs.
package logger

import "fmt"

const (
	colReset  = "\033[0m"
	colCyan   = "\033[36m"
	colGreen  = "\033[32m"
	colYellow = "\033[33m"
	colRed    = "\033[31m"
	colBold   = "\033[1m"
)

func tagged(color, tag, msg string) {
	fmt.Printf("%s[%s]%s %s\n", color, tag, colReset, msg)
}

// Info logs a neutral message under a tag.
func Info(tag, msg string) { tagged(colCyan, tag, msg) }

// Success logs a completed step.
func Success(tag, msg string) { tagged(colGreen, tag, msg) }

// Warn logs a recoverable problem.
func Warn(tag, msg string) { tagged(colYellow, tag, msg) }

// Error logs a failure.
func Error(tag, msg string) { tagged(colRed, tag, msg) }

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Printf("%s%sresale-radar%s %s\n", colBold, colCyan, colReset, version)
}

// Section prints a visual divider for a named phase.
func Section(title string) {
	fmt.Printf("%s── %s ──%s\n", colBold, title, colReset)
}

// Stats prints a key/value line.
func Stats(key string, value any) {
	fmt.Printf("  %s: %v\n", key, value)
}

// Server announces the listen address.
func Server(addr string) {
	Success("Server", fmt.Sprintf("Listening on http://%s", addr))
}
