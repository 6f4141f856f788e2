package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// PackageManager describes how to install dependencies and run scripts
type PackageManager struct {
	Name        string
	InstallArgs []string
}

// lockfiles are checked in order; the first one present decides the package manager
var lockfiles = []struct {
	file    string
	manager PackageManager
}{
	{"yarn.lock", PackageManager{Name: "yarn", InstallArgs: []string{"install", "--frozen-lockfile"}}},
	{"pnpm-lock.yaml", PackageManager{Name: "pnpm", InstallArgs: []string{"install", "--frozen-lockfile"}}},
	{"bun.lockb", PackageManager{Name: "bun", InstallArgs: []string{"install", "--frozen-lockfile"}}},
	{"package-lock.json", PackageManager{Name: "npm", InstallArgs: []string{"ci"}}},
}

var defaultPackageManager = PackageManager{Name: "npm", InstallArgs: []string{"install"}}

// DetectPackageManager picks the package manager from the lockfile present in dir
func DetectPackageManager(dir string) PackageManager {
	for _, lf := range lockfiles {
		if fileExists(filepath.Join(dir, lf.file)) {
			return lf.manager
		}
	}
	return defaultPackageManager
}

// Builder installs dependencies and runs package scripts in a directory
type Builder struct {
	runner        Runner
	dir           string
	installScript string
	buildScript   string
	cleanScript   string
}

// BuilderOptions configures a Builder
type BuilderOptions struct {
	Dir           string
	InstallScript string // Overrides the package manager's install command when set
	BuildScript   string
	CleanScript   string
}

// NewBuilder creates a Builder for the given directory
func NewBuilder(runner Runner, opts BuilderOptions) *Builder {
	return &Builder{
		runner:        runner,
		dir:           opts.Dir,
		installScript: opts.InstallScript,
		buildScript:   opts.BuildScript,
		cleanScript:   opts.CleanScript,
	}
}

// Install installs dependencies, using the install script when one is configured
func (b *Builder) Install(ctx context.Context) error {
	pm := DetectPackageManager(b.dir)

	args := pm.InstallArgs
	if b.installScript != "" {
		args = []string{"run", b.installScript}
	}

	slog.Info("Installing dependencies", "package_manager", pm.Name, "dir", b.dir)
	if _, err := b.runner.Run(ctx, b.dir, pm.Name, args...); err != nil {
		return fmt.Errorf("failed to install dependencies: %w", err)
	}
	return nil
}

// Build runs the build script
func (b *Builder) Build(ctx context.Context) error {
	return b.runScript(ctx, b.buildScript)
}

// Clean runs the clean script when one is configured
func (b *Builder) Clean(ctx context.Context) error {
	if b.cleanScript == "" {
		return nil
	}
	return b.runScript(ctx, b.cleanScript)
}

// InstallAndBuild runs clean, install and build in order
func (b *Builder) InstallAndBuild(ctx context.Context) error {
	if err := b.Clean(ctx); err != nil {
		return err
	}
	if err := b.Install(ctx); err != nil {
		return err
	}
	return b.Build(ctx)
}

func (b *Builder) runScript(ctx context.Context, script string) error {
	pm := DetectPackageManager(b.dir)

	slog.Info("Running script", "package_manager", pm.Name, "script", script)
	if _, err := b.runner.Run(ctx, b.dir, pm.Name, "run", script); err != nil {
		return fmt.Errorf("failed to run script %q: %w", script, err)
	}
	return nil
}

// fileExists checks if a given file exists and can be accessed
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
