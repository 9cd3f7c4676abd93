package config

import (
	"path/filepath"
	"strings"
)

// Fixed file names inside the plugin and host trees.
const (
	PackageFileName  = "package.json"
	ManifestFileName = "manifest.xml"
)

var (
	legacyManifestPath = filepath.Join("App", "info.xml")
	scriptLinkPath     = filepath.Join("js", "script.js")
	hostScriptsPath    = filepath.Join("storage", "app", "private", "plugins")
)

// Paths holds every location the doctor reads or writes, resolved to
// absolute paths for one plugin checkout.
type Paths struct {
	PluginDir      string
	Package        string // <plugin>/package.json
	Manifest       string // <plugin>/manifest.xml
	LegacyManifest string // <plugin>/App/info.xml
	LibManifest    string // <plugin>/<lib>/App/info.xml
	LibDir         string
	DistDir        string
	ScriptLink     string // <plugin>/js/script.js
	BundleSuffix   string

	HostRoot    string
	HostPackage string // <host>/package.json
	HostEnv     string // <host>/.env
	HostScripts string // <host>/storage/app/private/plugins
}

// Paths resolves the configured locations against pluginDir.
func (c Config) Paths(pluginDir string) Paths {
	pluginDir = filepath.Clean(pluginDir)
	hostRoot := resolve(pluginDir, c.HostRoot)
	libDir := resolve(pluginDir, c.LibDir)

	return Paths{
		PluginDir:      pluginDir,
		Package:        filepath.Join(pluginDir, PackageFileName),
		Manifest:       filepath.Join(pluginDir, ManifestFileName),
		LegacyManifest: filepath.Join(pluginDir, legacyManifestPath),
		LibManifest:    filepath.Join(libDir, legacyManifestPath),
		LibDir:         libDir,
		DistDir:        resolve(pluginDir, c.DistDir),
		ScriptLink:     filepath.Join(pluginDir, scriptLinkPath),
		BundleSuffix:   c.BundleSuffix,

		HostRoot:    hostRoot,
		HostPackage: filepath.Join(hostRoot, PackageFileName),
		HostEnv:     resolve(hostRoot, c.EnvFile),
		HostScripts: filepath.Join(hostRoot, hostScriptsPath),
	}
}

// Rel returns path relative to the plugin root for display, or path
// itself when it lies outside the plugin.
func (p Paths) Rel(path string) string {
	rel, err := filepath.Rel(p.PluginDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
