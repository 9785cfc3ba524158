package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep runs Validate and then checks the filesystem: the config file,
// the data directory, and the backend's database file. An empty configPath
// skips the config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("storage.key", c.Storage.Key, validKey),
		c.validateBackendFile(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Storage.Backend == BackendMemory {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "backend",
			Message:  "memory backend discards all tasks when the process exits",
		})
	}

	return warnings
}

// BackendPath returns the on-disk location of the configured backend, or ""
// for backends that do not use a single file.
func (c *Config) BackendPath() string {
	switch c.Storage.Backend {
	case BackendSQLite:
		return filepath.Join(c.DataDir, "taskboard.db")
	case BackendBolt:
		return filepath.Join(c.DataDir, "taskboard.bolt")
	case BackendFile:
		return filepath.Join(c.DataDir, c.Storage.Key+".json")
	}
	return ""
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateBackendFile() error {
	path := c.BackendPath()
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // created on first use
	}
	if err != nil {
		return criterio.NewFieldErrors("storage.backend", fmt.Errorf("cannot access %s: %w", path, err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("storage.backend", fmt.Errorf("%s is a directory, not a file", path))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func validKey(key string) error {
	if strings.TrimSpace(key) != key {
		return fmt.Errorf("must not have leading or trailing whitespace")
	}
	if strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("must not contain path separators")
	}
	return nil
}
