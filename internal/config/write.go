package config

import (
	"fmt"
	"os"
	"strings"
)

// SetKeyInFile updates or adds an option in the config file, preserving
// comments and layout. An empty section targets the global options at the top
// of the file. A matching line inside the target section is replaced in place;
// otherwise the option is appended to the end of that section, and a missing
// section is appended to the end of the file.
func SetKeyInFile(path, section, key, value string) error {
	for _, s := range [...]string{section, key, value} {
		if strings.ContainsAny(s, "\r\n") {
			return fmt.Errorf("line breaks are not allowed in config entries: %q", s)
		}
	}
	if key == "" || strings.ContainsAny(key, " \t") {
		return fmt.Errorf("invalid config key: %q", key)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}

	newLine := key
	if value != "" {
		newLine = key + " " + value
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}

	current := ""
	// insertAt is one past the last non-blank line of the target section.
	insertAt := -1
	if section == "" {
		insertAt = 0
	}
	replaced := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			current = strings.TrimSpace(strings.Trim(trimmed, "[]"))
			if current == section {
				insertAt = i + 1
			}
			continue
		}
		if current != section || trimmed == "" {
			continue
		}
		insertAt = i + 1
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if name, _, _ := strings.Cut(trimmed, " "); name == key {
			lines[i] = newLine
			replaced = true
			break
		}
	}

	switch {
	case replaced:
	case insertAt >= 0:
		lines = append(lines[:insertAt], append([]string{newLine}, lines[insertAt:]...)...)
	default:
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "["+section+"]", newLine)
	}

	return atomicWriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// WriteFile replaces the config file at path with data, creating the parent
// directory if needed.
func WriteFile(path string, data []byte) error {
	return atomicWriteFile(path, data, 0644)
}
