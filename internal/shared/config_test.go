package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Storage.Path == "" {
		t.Error("Expected default storage path")
	}
	if config.Upload.MaxFileSize != 10*1024*1024 {
		t.Errorf("Got max file size %d, expected 10 MiB", config.Upload.MaxFileSize)
	}
	if config.Log.Level != "info" {
		t.Errorf("Got log level %q, expected info", config.Log.Level)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("ValidFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[storage]
path = "/tmp/library.db"
max_open_conns = 4

[upload]
max_file_size = 2097152

[log]
level = "debug"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Storage.Path != "/tmp/library.db" {
			t.Errorf("Got storage path %q", config.Storage.Path)
		}
		if config.Storage.MaxOpenConns != 4 {
			t.Errorf("Got max open conns %d, expected 4", config.Storage.MaxOpenConns)
		}
		if config.Upload.MaxFileSize != 2097152 {
			t.Errorf("Got max file size %d, expected 2097152", config.Upload.MaxFileSize)
		}
		if config.Log.Level != "debug" {
			t.Errorf("Got log level %q, expected debug", config.Log.Level)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("InvalidTOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[storage\npath ="), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("Expected error for invalid TOML")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("CreatesFromEmbedded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("Failed to load created config: %v", err)
		}
		if config.Upload.MaxFileSize != DefaultConfig().Upload.MaxFileSize {
			t.Error("Created config differs from embedded defaults")
		}
	})

	t.Run("RefusesOverwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# existing"), 0644); err != nil {
			t.Fatalf("Failed to write existing file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("Expected error when config already exists")
		}
	})
}
