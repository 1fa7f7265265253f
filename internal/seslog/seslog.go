// Package seslog is the session log: a plain append-only text file the
// session writes diagnostics to while the terminal is owned by the
// overlay, plus a bounded tail reader for showing the most recent lines
// after a failed session.
package seslog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultLogPath = "~/.local/share/skylark/skylark.log"

// DefaultPath returns the session log location, tilde-expanded.
func DefaultPath() string {
	path := defaultLogPath
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// Append writes one timestamped line. Best effort: while the overlay owns
// the terminal there is nowhere useful to report a logging failure.
func Append(path, message string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s  %s\n", time.Now().Format(time.RFC3339), message)
}

// Tail returns at most maxLines from the end of the file at path.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
