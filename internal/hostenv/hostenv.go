// Package hostenv reads the host application's dotenv file for the
// database connection parameters.
package hostenv

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// ErrMissing is returned when the dotenv file does not exist.
var ErrMissing = errors.New("environment file not found")

// Keys the database-backed commands need.
const (
	KeyHost     = "DB_HOST"
	KeyPort     = "DB_PORT"
	KeyDatabase = "DB_DATABASE"
	KeyUsername = "DB_USERNAME"
	KeyPassword = "DB_PASSWORD"
)

// RequiredKeys lists the DB_* keys in report order.
var RequiredKeys = []string{KeyHost, KeyPort, KeyDatabase, KeyUsername, KeyPassword}

// Environment is a parsed dotenv file.
type Environment struct {
	Path string
	vars map[string]string
}

// Load parses the dotenv file at path.
func Load(path string) (Environment, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Environment{}, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return Environment{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Environment{Path: path, vars: vars}, nil
}

// New builds an Environment from an in-memory map.
func New(vars map[string]string) Environment {
	return Environment{vars: vars}
}

// Get returns the value of key, or "" when unset.
func (e Environment) Get(key string) string {
	return e.vars[key]
}

func (e Environment) Host() string     { return e.vars[KeyHost] }
func (e Environment) Port() string     { return e.vars[KeyPort] }
func (e Environment) Database() string { return e.vars[KeyDatabase] }
func (e Environment) Username() string { return e.vars[KeyUsername] }
func (e Environment) Password() string { return e.vars[KeyPassword] }

// Missing returns the required keys that are not set.
func (e Environment) Missing() []string {
	var missing []string
	for _, key := range RequiredKeys {
		if _, ok := e.vars[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
