package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/spacialist/plugin-doctor/internal/config"
	"github.com/spacialist/plugin-doctor/internal/database"
	"github.com/spacialist/plugin-doctor/internal/hostenv"
	"github.com/spacialist/plugin-doctor/internal/log"
	"github.com/spacialist/plugin-doctor/internal/manifest"
	"github.com/spacialist/plugin-doctor/internal/pkgjson"
)

// PluginLookup answers the questions the doctor asks the host database.
type PluginLookup interface {
	PluginUUID(ctx context.Context, name string) (uuid.UUID, error)
	Ping(ctx context.Context) error
}

// Connector opens a PluginLookup from the host environment.
type Connector func(env hostenv.Environment) (PluginLookup, error)

// Run is the state shared by the commands of one invocation. Everything
// it loads is loaded on first use and kept for the rest of the process.
type Run struct {
	cfg   config.Config
	paths config.Paths

	connect   Connector
	clipboard func(string) error
	spinner   func(message string) (stop func())

	descriptor *pkgjson.Descriptor
	manifests  *manifest.Cache
	env        *hostenv.Environment
	lookup     PluginLookup
	pluginID   uuid.UUID
}

// Option configures a Run.
type Option func(*Run)

// WithConnector replaces how the host database is opened.
func WithConnector(c Connector) Option {
	return func(r *Run) { r.connect = c }
}

// WithClipboard sets the function used to copy the plugin id.
func WithClipboard(fn func(string) error) Option {
	return func(r *Run) { r.clipboard = fn }
}

// WithSpinner sets the progress indicator shown while the database is
// queried. start returns the function that stops it.
func WithSpinner(start func(message string) (stop func())) Option {
	return func(r *Run) { r.spinner = start }
}

// New creates the run context for the plugin at paths.
func New(cfg config.Config, paths config.Paths, opts ...Option) *Run {
	r := &Run{
		cfg:       cfg,
		paths:     paths,
		connect:   openDatabase,
		clipboard: func(string) error { return errors.New("no clipboard available") },
		spinner:   func(string) func() { return func() {} },
		manifests: manifest.NewCache(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func openDatabase(env hostenv.Environment) (PluginLookup, error) {
	return database.Open(env)
}

// Paths returns the resolved locations of this run.
func (r *Run) Paths() config.Paths {
	return r.paths
}

// Descriptor returns the plugin's package.json.
func (r *Run) Descriptor() (*pkgjson.Descriptor, error) {
	if r.descriptor != nil {
		return r.descriptor, nil
	}
	d, err := pkgjson.Load(r.paths.Package)
	if err != nil {
		return nil, err
	}
	r.descriptor = d
	return d, nil
}

// Manifest returns the first manifest that parses, trying manifest.xml
// before the legacy App/info.xml.
func (r *Run) Manifest() (*manifest.Manifest, error) {
	return r.manifests.First(r.paths.Manifest, r.paths.LegacyManifest)
}

// Environment returns the host's dotenv file.
func (r *Run) Environment() (hostenv.Environment, error) {
	if r.env != nil {
		return *r.env, nil
	}
	env, err := hostenv.Load(r.paths.HostEnv)
	if err != nil {
		return hostenv.Environment{}, err
	}
	r.env = &env
	return env, nil
}

// Lookup returns the host database handle, opening it on first use.
func (r *Run) Lookup(ctx context.Context) (PluginLookup, error) {
	if r.lookup != nil {
		return r.lookup, nil
	}
	env, err := r.Environment()
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).Debug("opening host database", "host", env.Host(), "port", env.Port(), "database", env.Database())
	lookup, err := r.connect(env)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	r.lookup = lookup
	return lookup, nil
}

// PluginID returns the uuid the host assigned to this plugin.
func (r *Run) PluginID(ctx context.Context) (uuid.UUID, error) {
	if r.pluginID != uuid.Nil {
		return r.pluginID, nil
	}

	d, err := r.Descriptor()
	if err != nil {
		return uuid.Nil, err
	}
	name := d.PluginName()
	if name == "" {
		return uuid.Nil, errors.New("package.json has no plugin_name")
	}

	lookup, err := r.Lookup(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	stop := r.spinner("Looking up plugin " + name + "...")
	id, err := lookup.PluginUUID(ctx, name)
	stop()
	if err != nil {
		return uuid.Nil, err
	}

	r.pluginID = id
	return id, nil
}

// Close releases the database handle if one was opened.
func (r *Run) Close() error {
	if c, ok := r.lookup.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
