package doctor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spacialist/plugin-doctor/internal/config"
	"github.com/spacialist/plugin-doctor/internal/fsprobe"
	"github.com/spacialist/plugin-doctor/internal/log"
	"github.com/spacialist/plugin-doctor/internal/manifest"
	"github.com/spacialist/plugin-doctor/internal/pkgjson"
	"github.com/spacialist/plugin-doctor/internal/ui/styles"
)

// ErrCheckFailed marks a failure the command has already reported.
var ErrCheckFailed = errors.New("check failed")

// callSteps are the commands "call" runs, in order.
var callSteps = []Command{
	CommandVerifyPackageJSON,
	CommandVerifyVersion,
	CommandRenameDirectory,
	CommandLinkLib,
	CommandLinkJS,
}

// checkFailed wraps ErrCheckFailed. The format may use %w to keep the
// cause inspectable.
func checkFailed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCheckFailed}, args...)...)
}

// Reported reports whether err has already been shown to the user.
func Reported(err error) bool {
	return errors.Is(err, ErrCheckFailed) || errors.Is(err, ErrParse)
}

// Execute runs one command.
func (r *Run) Execute(ctx context.Context, cmd Command) error {
	switch cmd {
	case CommandCall:
		return r.call(ctx)
	case CommandDB:
		return r.db(ctx)
	case CommandHelp:
		log.FromContext(ctx).Logf("%s", HelpText())
		return nil
	case CommandID:
		return r.id(ctx)
	case CommandLinkLegacyInfo:
		return r.linkLegacyInfo(ctx)
	case CommandLinkLib:
		return r.linkLib(ctx)
	case CommandLinkJS:
		return r.linkJS(ctx)
	case CommandManifest:
		return r.manifest(ctx)
	case CommandPath:
		return r.path(ctx)
	case CommandRenameDirectory:
		return r.renameDirectory(ctx)
	case CommandVerifyPackageJSON:
		return r.verifyPackageJSON(ctx)
	case CommandVerifyVersion:
		return r.verifyVersion(ctx)
	}
	return fmt.Errorf("unknown command %s", cmd)
}

// HelpText renders the usage message listing every option.
func HelpText() string {
	maxLen := 0
	for _, c := range Commands() {
		maxLen = max(maxLen, len(strings.Join(c.Flags(), ", ")))
	}

	lines := make([]string, 0, len(options))
	for _, c := range Commands() {
		lines = append(lines, fmt.Sprintf("%-*s%s", maxLen+4, strings.Join(c.Flags(), ", "), c.Description()))
	}

	return styles.CurrentSymbols().Usage + " Usage: doctor [options]\n" +
		"    Options:\n" +
		"        " + strings.Join(lines, "\n        ")
}

func (r *Run) call(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Logf("%s", log.Separator(""))
	l.Section("Call the doctor")
	l.Logf("%s\n", log.Separator(""))

	failed := 0
	for _, step := range callSteps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Execute(ctx, step); err != nil {
			failed++
			if !Reported(err) {
				l.SystemErrorf("%v", err)
			}
		}
	}

	if failed > 0 {
		return checkFailed("%d of %d checks failed", failed, len(callSteps))
	}
	return nil
}

func (r *Run) db(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Section("Check database")

	env, err := r.Environment()
	if err != nil {
		l.Errorf("Could not read the environment variables: %v", err)
		return checkFailed("environment: %w", err)
	}

	l.Logf("Database connection details:\n"+
		"============================\n"+
		"Host: %s\n"+
		"Port: %s\n"+
		"Database name: %s", env.Host(), env.Port(), env.Database())

	if missing := env.Missing(); len(missing) > 0 {
		l.Warnf("Missing environment variables: %s", strings.Join(missing, ", "))
	}

	lookup, err := r.Lookup(ctx)
	if err != nil {
		l.Errorf("Could not connect to the database: %v", err)
		return checkFailed("connect: %w", err)
	}
	if err := lookup.Ping(ctx); err != nil {
		l.Errorf("Database is not reachable: %v", err)
		return checkFailed("ping: %w", err)
	}
	l.Successf("Database is reachable!")
	return nil
}

func (r *Run) id(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Section("Get plugin id")

	id, err := r.PluginID(ctx)
	if err != nil {
		l.Errorf("Could not resolve the plugin id: %v", err)
		return checkFailed("plugin id: %w", err)
	}
	l.Successf("Plugin id:\n%s", id)

	if r.cfg.CopyID {
		if err := r.clipboard(id.String()); err != nil {
			l.Warnf("Could not copy the plugin id to the clipboard: %v", err)
		} else {
			l.Logf("Plugin id copied to the clipboard.")
		}
	}
	return nil
}

func (r *Run) path(ctx context.Context) error {
	l := log.FromContext(ctx)

	host, err := pkgjson.Load(r.paths.HostPackage)
	if err != nil {
		l.SystemErrorf("Application path could not be checked: %v", err)
		return checkFailed("host package.json: %w", err)
	}

	if !strings.EqualFold(host.Name(), r.cfg.HostName) {
		l.Errorf("The plugin is not in a Spacialist's plugin directory!\n" +
			"The spacialist plugin directory is located at: 'app/Plugins/{PluginName}'")
		return checkFailed("host name %q, want %q", host.Name(), r.cfg.HostName)
	}
	l.Successf("The plugin is in a Spacialist's plugin directory!")
	return nil
}

func (r *Run) manifest(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Section("Check if a manifest file exists")

	valid := make(map[string]bool)
	for _, path := range []string{r.paths.Manifest, r.paths.LegacyManifest, r.paths.LibManifest} {
		rel := r.paths.Rel(path)
		if reason := manifestProblem(path); reason != "" {
			l.Warnf("Manifest file %q is not valid: %s", rel, reason)
			continue
		}
		valid[path] = true
		l.Successf("Manifest file %q is valid.", rel)
	}

	if !valid[r.paths.LegacyManifest] && valid[r.paths.LibManifest] {
		l.Hintf("It seems like your plugin uses the %q folder for the app. You must create the symlinks first.", filepath.Base(r.paths.LibDir))
	}
	return nil
}

// manifestProblem returns why the manifest at path is unusable, or "".
func manifestProblem(path string) string {
	m, err := manifest.Parse(path)
	switch {
	case errors.Is(err, manifest.ErrNotFound):
		return "file does not exist"
	case err != nil:
		return err.Error()
	case !m.HasInfo():
		return fmt.Sprintf("root element is <%s>, expected <info>", m.Root)
	}
	return ""
}

func (r *Run) linkLegacyInfo(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Section("Link legacy info.xml")

	src, dest := r.paths.Manifest, r.paths.LegacyManifest
	if !fsprobe.Exists(src) {
		l.Errorf("Actual '%s' file does not exist at %s", config.ManifestFileName, src)
		return checkFailed("%s: %w", src, fsprobe.ErrSourceMissing)
	}

	if _, err := fsprobe.EnsureDir(filepath.Dir(dest)); err != nil {
		l.Errorf("Failed to create symlink from %s to %s: %v", src, dest, err)
		return checkFailed("%w", err)
	}

	res, err := fsprobe.Symlink(src, dest)
	if err != nil {
		l.Errorf("Failed to create symlink from %s to %s: %v", src, dest, err)
		return checkFailed("%w", err)
	}
	if res == fsprobe.LinkExisted {
		l.Stalef("File %q already exists!", r.paths.Rel(dest))
		return nil
	}
	l.Successf("Symlink created from %s to %s", src, dest)
	return nil
}

func (r *Run) linkLib(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Section("Link lib folder")

	libName := filepath.Base(r.paths.LibDir)
	results, err := fsprobe.LinkEntries(r.paths.LibDir, r.paths.PluginDir)
	if err != nil {
		l.Warnf("Plugin has no '%s' directory! Linking not necessary (or not possible.)", libName)
		l.Debug("read lib directory", "error", err)
		return nil
	}

	failed := 0
	for _, res := range results {
		l.Logf("Checking if %q exists...", res.Name)
		switch {
		case res.Err != nil:
			failed++
			l.Errorf("Failed to create symlink for %s: %v", res.Source, res.Err)
		case res.Result == fsprobe.LinkExisted:
			l.Stalef("Directory %q already exists!", res.Name)
		default:
			l.Successf("Symlink successfully created for %s!", res.Source)
		}
	}

	if failed > 0 {
		return checkFailed("%d of %d %s entries could not be linked", failed, len(results), libName)
	}
	return nil
}

func (r *Run) linkJS(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Section("Link js folder")

	d, err := r.Descriptor()
	if err != nil {
		l.Errorf("%v", err)
		return checkFailed("%w", err)
	}
	name := strings.ToLower(d.PluginName())
	if name == "" {
		l.Errorf("Missing required fields in package.json: plugin_name")
		return checkFailed("no plugin_name")
	}

	bundle := filepath.Join(r.paths.DistDir, name+r.paths.BundleSuffix)
	if !fsprobe.Exists(bundle) {
		l.Errorf("File %q does not exist!", r.paths.Rel(bundle))
		return checkFailed("bundle %s missing", bundle)
	}
	l.Successf("File %q exists!", r.paths.Rel(bundle))

	sourceMap := bundle + ".map"
	hasMap := fsprobe.Exists(sourceMap)
	if hasMap {
		l.Successf("Source map file exists: %s", r.paths.Rel(sourceMap))
	} else {
		l.Warnf("Source map file does not exist: %s", r.paths.Rel(sourceMap))
	}

	ok := true
	script := r.paths.ScriptLink
	scriptRel := r.paths.Rel(script)
	if fsprobe.Exists(script) {
		l.Warnf("File %q already exists!", scriptRel)
	} else {
		jsDir := filepath.Dir(script)
		res, err := fsprobe.EnsureDir(jsDir)
		if err != nil {
			l.Errorf("Failed to create directory %q: %v", r.paths.Rel(jsDir), err)
			return checkFailed("%w", err)
		}
		if res == fsprobe.DirCreated {
			l.Successf("Directory %q created!", r.paths.Rel(jsDir))
		} else {
			l.Successf("Directory %q already exists!", r.paths.Rel(jsDir))
		}

		if _, err := fsprobe.Symlink(bundle, script); err != nil {
			l.Errorf("Failed to create symlink for %q: %v", scriptRel, err)
			ok = false
		} else {
			l.Successf("Symlink successfully created for %q!", scriptRel)
		}
	}
	if hasMap {
		ok = r.link(l, sourceMap, script+".map") && ok
	}

	id, err := r.PluginID(ctx)
	if err != nil {
		l.Errorf("Could not resolve the plugin id: %v", err)
		return checkFailed("plugin id: %w", err)
	}

	deployed := filepath.Join(r.paths.HostScripts, fmt.Sprintf("%s-%s.js", name, id))
	ok = r.link(l, bundle, deployed) && ok
	if hasMap {
		ok = r.link(l, sourceMap, deployed+".map") && ok
	}

	if !ok {
		return checkFailed("not every script could be linked")
	}
	return nil
}

// link creates dest unless present and reports the outcome. It returns
// false when the link could not be created.
func (r *Run) link(l *log.Logger, src, dest string) bool {
	res, err := fsprobe.Symlink(src, dest)
	if err != nil {
		l.Errorf("Failed to create symlink for %s -> %s: %v", src, dest, err)
		return false
	}
	if res == fsprobe.LinkExisted {
		l.Warnf("File %q already exists!", r.paths.Rel(dest))
		return true
	}
	l.Successf("Symlink successfully created for %s -> %s", r.paths.Rel(src), r.paths.Rel(dest))
	return true
}

// renameDirectory only reports; the directory is never moved.
func (r *Run) renameDirectory(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Section("Rename directory")

	d, err := r.Descriptor()
	if err != nil {
		l.Errorf("%v", err)
		return checkFailed("%w", err)
	}
	name := d.PluginName()
	if name == "" {
		l.Errorf("Missing required fields in package.json: plugin_name")
		return checkFailed("no plugin_name")
	}

	actual := r.paths.PluginDir
	expected := filepath.Join(filepath.Dir(actual), name)
	if actual != expected {
		l.Errorf("Wrong directory name: expected %s, got %s", expected, actual)
		return checkFailed("directory %s, want %s", actual, expected)
	}
	l.Successf("Directory name is correctly set!")
	return nil
}

func (r *Run) verifyPackageJSON(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Section("Verify package.json")

	d, err := r.Descriptor()
	if err != nil {
		l.Errorf("%v", err)
		return checkFailed("%w", err)
	}

	if missing := d.MissingFields(); len(missing) > 0 {
		l.Errorf("Missing required fields in package.json: %s", strings.Join(missing, ", "))
		return checkFailed("missing fields %s", strings.Join(missing, ", "))
	}

	l.Successf("Your package.json is valid!")
	l.Logf("Name: %s", d.Name())
	l.Logf("Plugin Name: %s", d.PluginName())
	l.Logf("Version: %s", d.Version())
	l.Logf("Description: %s", d.Description())
	return nil
}

func (r *Run) verifyVersion(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Section("Verify version")

	m, err := r.Manifest()
	if err != nil {
		l.Errorf("Manifest file not found: %v", err)
		return checkFailed("%w", err)
	}
	d, err := r.Descriptor()
	if err != nil {
		l.Errorf("%v", err)
		return checkFailed("%w", err)
	}

	file := r.paths.Rel(m.Path)
	want := m.Info.Version
	if want == "" {
		l.Errorf("The '%s' does not contain a version", file)
		return checkFailed("%s has no version", file)
	}

	got := d.Version()
	if got == want {
		l.Successf("Version in %s matches version in package.json: v%s", file, want)
		return nil
	}

	l.Warnf("Version in package.json (v%s) did not match version in %s (v%s). Updating package.json version to match %s => v%s",
		got, file, want, file, want)
	if err := d.SetVersion(want); err != nil {
		l.SystemErrorf("%v", err)
		return checkFailed("%w", err)
	}
	if err := d.Save(); err != nil {
		l.SystemErrorf("Could not update package.json: %v", err)
		return checkFailed("%w", err)
	}
	l.Debug("package.json rewritten", "path", d.Path(), "version", want)
	return nil
}
