package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultMaxDiagnostics applies when [build].max_diagnostics is absent.
const DefaultMaxDiagnostics = 100

var (
	// ErrManifestMissing indicates that no danube.toml was found.
	ErrManifestMissing = errors.New("no " + ManifestName + " found")
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageRootMissing indicates that [package].root is missing.
	ErrPackageRootMissing = errors.New("missing [package].root")
)

type Manifest struct {
	Path   string // danube.toml
	Root   string // directory of Path
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Trace   TraceConfig   `toml:"trace"`
}

type PackageConfig struct {
	Name string `toml:"name"`
	Root string `toml:"root"` // entry file, relative to the manifest
}

type BuildConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	Jobs           int `toml:"jobs"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// LoadManifest finds danube.toml above startDir and decodes it.
func LoadManifest(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrManifestMissing
	}
	// #nosec G304 -- path comes from FindManifest
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := DecodeManifest(path, data)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// DecodeManifest parses manifest text; path is used in error messages.
func DecodeManifest(path string, data []byte) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	cfg.Package.Name = strings.TrimSpace(cfg.Package.Name)
	cfg.Package.Root = strings.TrimSpace(cfg.Package.Root)
	if !meta.IsDefined("package", "root") || cfg.Package.Root == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageRootMissing)
	}
	if !meta.IsDefined("build", "max_diagnostics") {
		cfg.Build.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if cfg.Build.MaxDiagnostics < 0 || cfg.Build.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [build] values must not be negative", path)
	}
	if cfg.Trace.Level == "" {
		cfg.Trace.Level = "off"
	}
	if cfg.Trace.Output == "" {
		cfg.Trace.Output = "-"
	}
	return cfg, nil
}

// EntryFile resolves [package].root against the manifest directory.
func (m *Manifest) EntryFile() (string, error) {
	return ResolveEntry(m.Root, m.Config.Package.Root)
}

// ResolveEntry resolves and validates an entry file relative to the
// project root.
func ResolveEntry(projectRoot, root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", ErrPackageRootMissing
	}
	if filepath.IsAbs(root) {
		return "", fmt.Errorf("invalid [package].root %q: must be relative", root)
	}
	entry := filepath.Join(projectRoot, filepath.Clean(filepath.FromSlash(root)))
	if !pathWithin(projectRoot, entry) {
		return "", fmt.Errorf("invalid [package].root %q: escapes project root", root)
	}
	if filepath.Ext(entry) != SourceExt {
		return "", fmt.Errorf("invalid [package].root %q: must be a %s file", root, SourceExt)
	}
	info, err := os.Stat(entry)
	if err != nil {
		return "", fmt.Errorf("invalid [package].root %q: %w", root, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("invalid [package].root %q: is a directory", root)
	}
	return entry, nil
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
