// Package downloader runs the external meteorological retrieval script.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds script runner settings.
type Config struct {
	ScriptPath string
	Stdout     io.Writer // default os.Stdout
	Stderr     io.Writer // default os.Stderr
	Logger     *zap.Logger
}

// Script invokes the retrieval script as a subprocess.
type Script struct {
	path   string
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

// New creates a script runner.
func New(cfg Config) *Script {
	s := &Script{
		path:   cfg.ScriptPath,
		stdout: cfg.Stdout,
		stderr: cfg.Stderr,
		logger: cfg.Logger,
	}
	if s.stdout == nil {
		s.stdout = os.Stdout
	}
	if s.stderr == nil {
		s.stderr = os.Stderr
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Args returns the script arguments: -c <config> -P <parallel> -D <cycle>.
func Args(configPath string, parallel int, cycle string) []string {
	return []string{"-c", configPath, "-P", strconv.Itoa(parallel), "-D", cycle}
}

// Download runs the script and waits for it. A non-zero exit is an error.
func (s *Script) Download(ctx context.Context, configPath string, parallel int, cycle string) error {
	if s.path == "" {
		return errors.New("download script path is empty")
	}

	args := Args(configPath, parallel, cycle)
	cmd := exec.CommandContext(ctx, s.path, args...)
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr

	s.logger.Info("Starting download script",
		zap.String("script", s.path),
		zap.Strings("args", args),
	)
	start := time.Now()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("download script %s exited with code %d: %w", s.path, exitErr.ExitCode(), err)
		}
		return fmt.Errorf("run download script %s: %w", s.path, err)
	}

	s.logger.Info("Download script finished", zap.Duration("duration", time.Since(start)))
	return nil
}

// Check reports whether the script exists and is executable.
func (s *Script) Check() error {
	if s.path == "" {
		return errors.New("download script path is empty")
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("stat download script: %w", err)
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("download script %s is not executable", s.path)
	}
	return nil
}
