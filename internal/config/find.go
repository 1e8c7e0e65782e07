package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	configFilenames = []string{
		".hatchgate.toml",
		".hatchgate.yaml",
		".hatchgate.yml",
		".hatchgate.json",
	}
	xdgFilenames = []string{
		"config.toml",
		"config.yaml",
		"config.yml",
		"config.json",
	}
)

// 探索元
const (
	SourceExplicit = "explicit"
	SourceRepo     = "repo-up"
	SourceXDG      = "xdg"
	SourceHome     = "home"
)

// Find は設定ファイルを探します。明示パス、リポジトリから上位ディレクトリ、
// XDG、ホームの順で、見つかったパスと探索元を返します。
func Find(repoDir, explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		path, err := resolveExplicit(explicit)
		if err != nil {
			return "", "", err
		}
		return path, SourceExplicit, nil
	}

	start := strings.TrimSpace(repoDir)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", "", err
	}
	for {
		if found := firstExisting(dir, configFilenames); found != "" {
			return found, SourceRepo, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	homeDir := resolveHome(home)
	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		if found := firstExisting(filepath.Join(xdgRoot, "hatchgate"), xdgFilenames); found != "" {
			return found, SourceXDG, nil
		}
	}
	if homeDir != "" {
		if found := firstExisting(homeDir, configFilenames); found != "" {
			return found, SourceHome, nil
		}
	}
	return "", "", nil
}

func resolveExplicit(p string) (string, error) {
	candidate := p
	if !filepath.IsAbs(candidate) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		candidate = filepath.Join(cwd, candidate)
	}
	info, err := os.Stat(candidate)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("config path %q points to a directory", candidate)
	}
	return candidate, nil
}

func resolveHome(home string) string {
	if h := strings.TrimSpace(home); h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return ""
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
