package changelog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/nsxbet/changelog-linter/pkg/types"
)

// Extensions lists the file extensions Loader accepts.
var Extensions = []string{".yaml", ".yml", ".json"}

// Loader reads changelog files from disk. It implements linter.Resolver.
type Loader struct{}

// NewLoader returns a file Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Supports reports whether location has a changelog extension this package reads.
func Supports(location string) bool {
	ext := strings.ToLower(filepath.Ext(location))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads and parses the changelog at location.
func (l *Loader) Load(ctx context.Context, location string) (*types.ChangeLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !Supports(location) {
		return nil, errors.Errorf("unsupported changelog format: %s", location)
	}
	slog.Debug("Reading changelog", "location", location)
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read changelog %s", location)
	}
	return Parse(location, data)
}
