// Package cnf writes bash-sourceable KEY=VALUE retrieval config files.
package cnf

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kailas-cloud/georegion/internal/domain"
)

// Writer writes config files. The zero value is usable.
type Writer struct {
	now func() time.Time
}

// New creates a Writer stamping headers with the current UTC time.
func New() *Writer {
	return &Writer{now: time.Now}
}

// Write replaces path with a header line followed by one KEY=VALUE line per
// field. The file is written to a temp file in the same directory, then renamed.
func (w *Writer) Write(path string, fields []domain.ConfigField) error {
	for _, f := range fields {
		if f.Key == "" || strings.ContainsAny(f.Key, "= \t\n") {
			return fmt.Errorf("invalid config key %q", f.Key)
		}
		if strings.Contains(f.Value, "\n") {
			return fmt.Errorf("config value for %s contains a newline", f.Key)
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod config: %w", err)
	}

	bw := bufio.NewWriter(tmp)
	fmt.Fprintf(bw, "# Auto-generated %s\n", w.stamp())
	for _, f := range fields {
		fmt.Fprintf(bw, "%s=%s\n", f.Key, Quote(f.Value))
	}

	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// Quote double-quotes a value containing a space unless it is already a bash
// array literal "(...)" or already starts with a quote.
func Quote(v string) string {
	if strings.Contains(v, " ") && !strings.HasPrefix(v, "(") && !strings.HasPrefix(v, `"`) {
		return `"` + v + `"`
	}
	return v
}

func (w *Writer) stamp() string {
	now := time.Now
	if w.now != nil {
		now = w.now
	}
	return now().UTC().Format("2006-01-02T15:04:05Z")
}
