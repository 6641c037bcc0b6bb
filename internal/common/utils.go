package common

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
)

// NewLogger returns the JSON stderr logger every action uses.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// Mark renders a pass/fail flag for console checklists.
func Mark(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// YesNo renders a boolean verdict.
func YesNo(ok bool) string {
	if ok {
		return "YES"
	}
	return "NO"
}
