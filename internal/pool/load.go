package pool

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olivier-w/conveyor/internal/media"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedSource is returned by Load for paths it cannot read items from.
var ErrUnsupportedSource = errors.New("unsupported pool source")

type poolFile struct {
	Items []Source `yaml:"items"`
}

// Load reads sources from a directory, a YAML pool file or a playlist.
func Load(path string) ([]Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening pool: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".yaml" || ext == ".yml":
		return LoadFile(path)
	case media.IsPlaylistExt(ext):
		return LoadPlaylist(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
}

// LoadFile reads a YAML file of the form `items: [{key, title, description, media}]`.
func LoadFile(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pool file: %w", err)
	}
	var f poolFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing pool file %s: %w", path, err)
	}
	return f.Items, nil
}

// LoadPlaylist reads a playlist, keeping only entries that resolve to media.
func LoadPlaylist(path string) ([]Source, error) {
	entries, err := media.ParseLocalPlaylist(path)
	if err != nil {
		return nil, err
	}
	entries, _ = media.FilterPlayablePlaylistEntries(entries)
	out := make([]Source, 0, len(entries))
	for _, e := range entries {
		desc := media.KindOf(e.Ref()).String()
		if e.URL != "" {
			desc += " stream"
		}
		out = append(out, Source{Title: e.Title, Description: desc, Media: e.Ref()})
	}
	return out, nil
}

// LoadDir lists the supported media files in dir, sorted by name
// (case-insensitive). Audio titles come from tags when present.
func LoadDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading pool dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !media.IsSupportedExt(filepath.Ext(e.Name())) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	out := make([]Source, 0, len(files))
	for _, f := range files {
		tags := media.ReadTags(f)
		desc := tags.Description()
		if desc == "" {
			desc = media.KindOf(f).String()
		}
		out = append(out, Source{Title: tags.Title, Description: desc, Media: f})
	}
	return out, nil
}
