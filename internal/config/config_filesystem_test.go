package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureLogOutput captures logs written during a test function.
func captureLogOutput(t *testing.T, fn func()) []byte {
	t.Helper()
	var buf bytes.Buffer
	oldLogger := log
	log = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	defer func() { log = oldLogger }()
	fn()
	return buf.Bytes()
}

func TestSaveConfigDirCreationError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// Create a file where the config dir should be
	configDir := filepath.Join(home, configDirName)
	if err := os.WriteFile(configDir, []byte("blocking file"), 0o644); err != nil {
		t.Fatalf("write blocking file: %v", err)
	}

	err := Save(Config{RootPath: "~/notes"})
	if err == nil {
		t.Fatal("expected error when config dir path is blocked by a file")
	}

	if !strings.Contains(err.Error(), "create config dir") {
		t.Errorf("error should mention config dir creation, got: %v", err)
	}
}

func TestSaveConfigFileWriteError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("cannot test permission errors as root")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	// Create config dir but make it read-only
	configDir := filepath.Join(home, configDirName)
	if err := os.Mkdir(configDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Chmod(configDir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(configDir, 0o755) // cleanup

	err := Save(Config{RootPath: "~/notes"})
	if err == nil {
		t.Fatal("expected error when config file cannot be written")
	}

	if !strings.Contains(err.Error(), "write config") {
		t.Errorf("error should mention config write, got: %v", err)
	}
}

func TestSaveConfigSuccessLogsInfo(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	logs := captureLogOutput(t, func() {
		if err := Save(Config{RootPath: "~/my-notes"}); err != nil {
			t.Fatalf("save config: %v", err)
		}
	})

	logStr := string(logs)
	if !strings.Contains(logStr, "level=INFO") {
		t.Error("successful save should log at INFO level")
	}
	if !strings.Contains(logStr, "saved config") {
		t.Error("log should contain 'saved config'")
	}
	expectedPath := filepath.Join(home, configDirName, configFileName)
	if !strings.Contains(logStr, expectedPath) {
		t.Errorf("log should contain config path %q", expectedPath)
	}
}

func TestSaveConfigFilePermissions(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := Save(Config{RootPath: "~/notes"}); err != nil {
		t.Fatalf("save config: %v", err)
	}
	info, err := os.Stat(filepath.Join(home, configDirName, configFileName))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}
}

func TestLoadConfigReadError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("cannot test permission errors as root")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	// Create config file with no read permissions
	configPath := filepath.Join(home, configDirName, configFileName)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(configPath, []byte(`{"root_path":"~/notes"}`), 0o000); err != nil {
		t.Fatalf("write config: %v", err)
	}
	defer os.Chmod(configPath, 0o644) // cleanup

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when config file cannot be read")
	}

	if !strings.Contains(err.Error(), "read config") {
		t.Errorf("error should mention read config, got: %v", err)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfigFile(t, home, `{invalid json`)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when config contains invalid JSON")
	}

	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("error should mention parse config, got: %v", err)
	}
}

func TestLoadConfigEmptyRootPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfigFile(t, home, `{"root_path":"   "}`)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when root_path is empty")
	}

	if !strings.Contains(err.Error(), "invalid root_path") {
		t.Errorf("error should mention invalid root_path, got: %v", err)
	}
}

func TestSaveConfigInvalidRootPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	err := Save(Config{RootPath: "   "})
	if err == nil {
		t.Fatal("expected error when root_path is empty")
	}

	if !strings.Contains(err.Error(), "invalid root_path") {
		t.Errorf("error should mention invalid root_path, got: %v", err)
	}
}

func TestResolveLogsCorruptConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfigFile(t, home, `{invalid json`)

	logs := captureLogOutput(t, func() {
		if _, err := Resolve(); err != nil {
			t.Fatalf("resolve: %v", err)
		}
	})

	logStr := string(logs)
	if !strings.Contains(logStr, "level=WARN") || !strings.Contains(logStr, "load config") {
		t.Fatalf("expected warning about unreadable config, got %q", logStr)
	}
}

func TestResolveRootCreationError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// A file where the default root's parent should be
	if err := os.WriteFile(filepath.Join(home, "Documents"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocking file: %v", err)
	}

	_, err := Resolve()
	if err == nil {
		t.Fatal("expected error when default root cannot be created")
	}
	if !strings.Contains(err.Error(), "create root") {
		t.Errorf("error should mention root creation, got: %v", err)
	}
}
