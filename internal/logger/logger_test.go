package logger

import (
	"bytes"
	"os"
	"testing"
)

func TestTaggedLevels_NoPanic(t *testing.T) {
	// Redirect stdout so we don't spam the test output.
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()

	Info("Schedule", "loaded")
	Success("DB", "opened")
	Warn("Calc", "category_defaulted")
	Error("Server", "failed")

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	// Just ensure nothing panicked; output is environment-dependent (colors).
}

func TestBannerSectionStats_NoPanic(t *testing.T) {
	old := os.Stdout
	_, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()

	Banner("v1.0.0")
	Banner("")
	Section("Fees")
	Stats("total fees", 11.36)
	Server("127.0.0.1:13380")
	w.Close()
}
