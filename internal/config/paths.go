package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the resolved application directory layout. All relative
// configuration paths resolve against the executable directory, never
// the current working directory, so the binaries behave the same no
// matter where they are launched from.
type Paths struct {
	ExecutableDir string
	DataDir       string
	SourcesDir    string
	ReportsDir    string
	LogsDir       string
	CatalogFile   string
}

// ExecutableDir returns the directory holding the running binary,
// with symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return filepath.Dir(exe), nil
}

// ResolvePaths resolves the configured path layout against the
// executable directory.
func (c *Config) ResolvePaths() (*Paths, error) {
	exeDir, err := ExecutableDir()
	if err != nil {
		return nil, err
	}
	return c.resolvePathsFrom(exeDir), nil
}

// resolvePathsFrom builds the layout against an explicit base,
// keeping path resolution testable without a real executable.
func (c *Config) resolvePathsFrom(base string) *Paths {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	return &Paths{
		ExecutableDir: base,
		DataDir:       resolve(c.Paths.DataDir),
		SourcesDir:    resolve(c.Paths.SourcesDir),
		ReportsDir:    resolve(c.Paths.ReportsDir),
		LogsDir:       resolve(c.Paths.LogsDir),
		CatalogFile:   resolve(c.Paths.CatalogFile),
	}
}

// EnsureDirectories creates the data, sources, reports, and logs
// directories if they are missing.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.SourcesDir, p.ReportsDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path of a log file inside the logs directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}
