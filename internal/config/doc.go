// Package config handles loading and validation of the doctor configuration.
//
// Configuration is read from .doctor.toml in the plugin root, with
// environment variable overrides for the locations that differ between
// development machines.
//
// # Configuration Sources (highest priority first)
//
//   - DOCTOR_PLUGIN_DIR env var: plugin root (default: working directory)
//   - DOCTOR_HOST_ROOT env var: Spacialist checkout the plugin lives in
//   - DOCTOR_VERBOSE env var: enable debug output
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - host_root: host checkout, default "../../.." (app/Plugins/<Name>)
//   - host_name: expected "name" in the host package.json (default "spacialist")
//   - env_file: host dotenv file, relative to host_root (default ".env")
//   - lib_dir, dist_dir: plugin sub directories (default "lib", "dist")
//   - bundle_suffix: built bundle is <plugin_name lowercased><suffix> (default ".umd.js")
//   - copy_id: copy the plugin id to the clipboard after "doctor --id"
//
// The [theme] section selects "default" or "none" colors:
//
//	[theme]
//	name = "none"
//	ascii_symbols = true
//
// Relative paths resolve against the plugin root. [Config.Paths] turns a
// loaded config into the absolute [Paths] used by every command.
package config
