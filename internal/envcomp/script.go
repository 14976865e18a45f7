package envcomp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// RenderScript produces a self-contained shell script re-exporting the
// composed variables.
func RenderScript(vars []Variable) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("# Generated by hangar setup. Re-run `hangar setup` instead of editing.\n")
	for _, v := range vars {
		fmt.Fprintf(&b, "export %s=%q\n", v.Name, v.Value)
	}
	return b.String()
}

// WriteScript writes the environment script, creating parent directories.
func WriteScript(path string, vars []Variable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create script dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderScript(vars)), 0o644); err != nil {
		return fmt.Errorf("write env script %s: %w", path, err)
	}
	return nil
}

// SourceLine is the exact line appended to the shell startup file.
func SourceLine(scriptPath string) string {
	return "source " + scriptPath
}

// AppendSourceLine appends line to the startup file unless that exact line is
// already present. The check-then-append runs under a sibling ".lock" file so
// concurrent setup runs cannot double-append. Reports whether it appended.
func AppendSourceLine(startupFile, line string) (bool, error) {
	lock := flock.New(startupFile + ".lock")
	if err := lock.Lock(); err != nil {
		return false, fmt.Errorf("lock %s: %w", startupFile, err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(startupFile)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read %s: %w", startupFile, err)
	}
	for _, existing := range strings.Split(string(data), "\n") {
		if existing == line {
			return false, nil
		}
	}

	f, err := os.OpenFile(startupFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", startupFile, err)
	}
	defer func() { _ = f.Close() }()

	payload := line + "\n"
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		payload = "\n" + payload
	}
	if _, err := f.WriteString(payload); err != nil {
		return false, fmt.Errorf("append %s: %w", startupFile, err)
	}
	return true, nil
}
