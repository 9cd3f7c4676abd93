package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvHostRoot, "")
	t.Setenv(EnvVerbose, "")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Default()
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoad_AllFields(t *testing.T) {
	t.Setenv(EnvHostRoot, "")
	t.Setenv(EnvVerbose, "")

	dir := t.TempDir()
	writeConfig(t, dir, `
host_root = "/srv/spacialist"
host_name = "Spacialist-Fork"
env_file = "config/.env"
lib_dir = "src/lib"
dist_dir = "build"
bundle_suffix = ".es.js"
copy_id = true
verbose = true

[theme]
name = "none"
ascii_symbols = true
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Config{
		HostRoot:     "/srv/spacialist",
		HostName:     "Spacialist-Fork",
		EnvFile:      "config/.env",
		LibDir:       "src/lib",
		DistDir:      "build",
		BundleSuffix: ".es.js",
		CopyID:       true,
		Verbose:      true,
		Theme:        ThemeConfig{Name: "none", ASCIISymbols: true},
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	t.Setenv(EnvHostRoot, "")
	t.Setenv(EnvVerbose, "")

	dir := t.TempDir()
	writeConfig(t, dir, `lib_dir = "vendor"`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LibDir != "vendor" {
		t.Errorf("LibDir = %q, want %q", cfg.LibDir, "vendor")
	}
	if cfg.HostName != "spacialist" {
		t.Errorf("HostName = %q, want default %q", cfg.HostName, "spacialist")
	}
	if cfg.BundleSuffix != ".umd.js" {
		t.Errorf("BundleSuffix = %q, want default %q", cfg.BundleSuffix, ".umd.js")
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvHostRoot, "")
	t.Setenv(EnvVerbose, "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", `host_root = `, "failed to parse config file"},
		{"unknown theme", "[theme]\nname = \"dracula\"", `invalid theme.name "dracula"`},
		{"bundle suffix", `bundle_suffix = ".css"`, "invalid bundle_suffix"},
		{"empty host name", `host_name = ""`, "host_name must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			cfg, err := Load(dir)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
			if cfg != Default() {
				t.Errorf("expected defaults on error, got %+v", cfg)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `host_root = "/from/file"`)

	t.Setenv(EnvHostRoot, "/from/env")
	t.Setenv(EnvVerbose, "true")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HostRoot != "/from/env" {
		t.Errorf("HostRoot = %q, want %q", cfg.HostRoot, "/from/env")
	}
	if !cfg.Verbose {
		t.Error("expected Verbose to be enabled by env")
	}
}

func TestLoad_InvalidVerboseEnv(t *testing.T) {
	t.Setenv(EnvHostRoot, "")
	t.Setenv(EnvVerbose, "loud")

	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for invalid DOCTOR_VERBOSE")
	}
}

func TestPluginDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvPluginDir, dir)

	got, err := PluginDir()
	if err != nil {
		t.Fatalf("PluginDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("PluginDir() = %q, want %q", got, dir)
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	plugin := filepath.Join("/srv", "spacialist", "app", "Plugins", "Template")
	p := Default().Paths(plugin)

	host := filepath.Join("/srv", "spacialist")
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"package", p.Package, filepath.Join(plugin, "package.json")},
		{"manifest", p.Manifest, filepath.Join(plugin, "manifest.xml")},
		{"legacy manifest", p.LegacyManifest, filepath.Join(plugin, "App", "info.xml")},
		{"lib manifest", p.LibManifest, filepath.Join(plugin, "lib", "App", "info.xml")},
		{"dist", p.DistDir, filepath.Join(plugin, "dist")},
		{"script link", p.ScriptLink, filepath.Join(plugin, "js", "script.js")},
		{"host root", p.HostRoot, host},
		{"host package", p.HostPackage, filepath.Join(host, "package.json")},
		{"host env", p.HostEnv, filepath.Join(host, ".env")},
		{"host scripts", p.HostScripts, filepath.Join(host, "storage", "app", "private", "plugins")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestPaths_AbsoluteOverrides(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.HostRoot = "/opt/host"
	cfg.EnvFile = "/etc/spacialist.env"

	p := cfg.Paths("/work/plugin")
	if p.HostRoot != "/opt/host" {
		t.Errorf("HostRoot = %q, want /opt/host", p.HostRoot)
	}
	if p.HostEnv != "/etc/spacialist.env" {
		t.Errorf("HostEnv = %q, want /etc/spacialist.env", p.HostEnv)
	}
}

func TestPaths_Rel(t *testing.T) {
	t.Parallel()

	p := Default().Paths("/work/plugin")

	if got := p.Rel("/work/plugin/App/info.xml"); got != filepath.Join("App", "info.xml") {
		t.Errorf("Rel(inside) = %q", got)
	}
	if got := p.Rel("/work/other/file"); got != "/work/other/file" {
		t.Errorf("Rel(outside) = %q, want absolute path", got)
	}
}
