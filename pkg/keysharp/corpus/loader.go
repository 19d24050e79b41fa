package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cognicore/keysharp/internal/logger"
	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
)

// Loader reads presets from Dir and custom corpora from arbitrary paths.
type Loader struct {
	Dir    string
	Logger *log.Logger
}

// NewLoader returns a loader for the given preset directory.
func NewLoader(dir string, l *log.Logger) *Loader {
	if l == nil {
		l = logger.Discard()
	}
	return &Loader{Dir: dir, Logger: l}
}

// ListPresets returns the sorted names of supported files in Dir.
// A missing directory yields an empty list.
func (l *Loader) ListPresets() ([]string, error) {
	if l.Dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list presets in %s: %w", l.Dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// LoadPreset loads the named file from Dir.
func (l *Loader) LoadPreset(name string) (Corpus, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return Corpus{}, fmt.Errorf("preset name %q: %w", name, internalerr.ErrInvalidInput)
	}
	if l.Dir == "" {
		return Corpus{}, fmt.Errorf("preset %q: no preset directory configured: %w", name, internalerr.ErrNotFound)
	}

	text, err := l.read(filepath.Join(l.Dir, name))
	if err != nil {
		return Corpus{}, err
	}
	return New(name, text, false), nil
}

// LoadCustom loads a corpus from any path.
func (l *Loader) LoadCustom(path string) (Corpus, error) {
	text, err := l.read(path)
	if err != nil {
		return Corpus{}, err
	}
	return New(filepath.Base(path), text, true), nil
}

func (l *Loader) read(path string) (string, error) {
	if !Supported(path) {
		return "", fmt.Errorf("%s: unsupported extension: %w", path, internalerr.ErrInvalidInput)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("corpus %s: %w", path, internalerr.ErrNotFound)
		}
		return "", fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	text, err := Decode(path, f, l.logger())
	if err != nil {
		return "", err
	}
	l.logger().Debug("loaded corpus", "path", path, "bytes", len(text))
	return text, nil
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return logger.Discard()
	}
	return l.Logger
}
