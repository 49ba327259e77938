package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

const appName = "bicig-toli"

// DataFileNames are tried in order when the dataset path is a directory.
var DataFileNames = []string{"data.msgpack", "data.json"}

// PathResolver finds the dataset and config files regardless of the
// directory the binary is started from.
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a resolver anchored at the running executable
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the config directory for the platform
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appName)
		}
		return filepath.Join(homeDir, ".config", appName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	case "darwin":
		return filepath.Join(homeDir, ".config", appName)
	default:
		return filepath.Join(homeDir, "."+appName)
	}
}

// dataCandidates lists where a dataset given as userPath may live:
// the path itself when absolute, then relative to the working directory,
// the executable and its parent, and finally the config directory.
func (pr *PathResolver) dataCandidates(userPath string) []string {
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(filepath.Dir(pr.executableDir), userPath),
		filepath.Join(pr.configDir, userPath),
	)
	return candidates
}

// ResolveDataFile returns the dataset file for userPath. A directory is
// searched for DataFileNames.
func (pr *PathResolver) ResolveDataFile(userPath string) (string, error) {
	candidates := pr.dataCandidates(userPath)
	for _, path := range candidates {
		stat, err := os.Stat(path)
		if err != nil {
			log.Debugf("Dataset candidate not found: %s", path)
			continue
		}
		if !stat.IsDir() {
			log.Debugf("Found dataset: %s", path)
			return path, nil
		}
		if found, err := pr.FindFileInPaths(DataFileNames, []string{path}); err == nil {
			log.Debugf("Found dataset: %s", found)
			return found, nil
		}
	}
	return "", fmt.Errorf("dataset %q not found in %s: %w", userPath, strings.Join(candidates, ", "), os.ErrNotExist)
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// FindFileInPaths returns the first of filenames present in searchPaths,
// trying every filename in a path before moving to the next path.
func (pr *PathResolver) FindFileInPaths(filenames []string, searchPaths []string) (string, error) {
	for _, searchPath := range searchPaths {
		for _, name := range filenames {
			fullPath := filepath.Join(searchPath, name)
			if stat, err := os.Stat(fullPath); err == nil && !stat.IsDir() {
				return fullPath, nil
			}
		}
	}
	return "", os.ErrNotExist
}

// GetRuntimeInfo returns debug information about the runtime environment
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()

	info := map[string]string{
		"executable_path": pr.executablePath,
		"executable_dir":  pr.executableDir,
		"current_dir":     cwd,
		"home_dir":        pr.homeDir,
		"config_dir":      pr.configDir,
		"os":              runtime.GOOS,
		"arch":            runtime.GOARCH,
	}
	for _, envVar := range []string{"HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}
