package media

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// PlaylistEntry is one playlist line: either a local Path or a remote URL.
type PlaylistEntry struct {
	Path  string
	URL   string
	Title string
}

// Ref returns the media reference of the entry.
func (e PlaylistEntry) Ref() string {
	if e.URL != "" {
		return e.URL
	}
	return e.Path
}

// ParseLocalPlaylist parses a local .m3u/.m3u8/.pls file.
// Relative entries are resolved against the playlist file directory.
func ParseLocalPlaylist(path string) ([]PlaylistEntry, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsPlaylistExt(ext) {
		return nil, fmt.Errorf("unsupported playlist format %s", ext)
	}

	absPlaylistPath, err := filepath.Abs(path)
	if err != nil {
		absPlaylistPath = path
	}

	data, err := os.ReadFile(absPlaylistPath)
	if err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("playlist is not valid UTF-8")
	}

	baseDir := filepath.Dir(absPlaylistPath)
	text := strings.TrimPrefix(string(data), "\uFEFF")
	scanner := bufio.NewScanner(strings.NewReader(text))

	switch ext {
	case ".pls":
		return parsePLS(scanner, baseDir), nil
	default:
		return parseM3U(scanner, baseDir), nil
	}
}

// FilterPlayablePlaylistEntries keeps remote entries and existing, supported
// local files, filling empty titles. It reports how many entries were dropped.
func FilterPlayablePlaylistEntries(entries []PlaylistEntry) ([]PlaylistEntry, int) {
	out := make([]PlaylistEntry, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		if e.URL != "" {
			if e.Title == "" {
				e.Title = e.URL
			}
			out = append(out, e)
			continue
		}
		info, err := os.Stat(e.Path)
		if err != nil || info.IsDir() || !IsSupportedExt(filepath.Ext(e.Path)) {
			skipped++
			continue
		}
		if e.Title == "" {
			base := filepath.Base(e.Path)
			e.Title = strings.TrimSuffix(base, filepath.Ext(base))
		}
		out = append(out, e)
	}
	return out, skipped
}

func parseM3U(scanner *bufio.Scanner, baseDir string) []PlaylistEntry {
	entries := make([]PlaylistEntry, 0)
	pendingTitle := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#EXTINF:") {
			if comma := strings.Index(line, ","); comma >= 0 {
				pendingTitle = strings.TrimSpace(line[comma+1:])
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, newPlaylistEntry(line, pendingTitle, baseDir))
		pendingTitle = ""
	}
	return entries
}

func parsePLS(scanner *bufio.Scanner, baseDir string) []PlaylistEntry {
	files := make(map[int]string)
	titles := make(map[int]string)
	var order []int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		eq := strings.Index(line, "=")
		if eq <= 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:eq]))
		val := strings.TrimSpace(line[eq+1:])
		if val == "" {
			continue
		}

		if n, ok := plsIndex(key, "file"); ok {
			if _, dup := files[n]; !dup {
				order = append(order, n)
			}
			files[n] = val
		} else if n, ok := plsIndex(key, "title"); ok {
			titles[n] = val
		}
	}

	entries := make([]PlaylistEntry, 0, len(order))
	for _, n := range order {
		entries = append(entries, newPlaylistEntry(files[n], titles[n], baseDir))
	}
	return entries
}

func plsIndex(key, prefix string) (int, bool) {
	if !strings.HasPrefix(key, prefix) {
		return 0, false
	}
	rest := key[len(prefix):]
	if rest == "" {
		return 0, false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	return n, err == nil
}

func newPlaylistEntry(raw, title, baseDir string) PlaylistEntry {
	raw = strings.Trim(raw, `"'`)
	if isRemote(raw) {
		if title == "" {
			title = raw
		}
		return PlaylistEntry{URL: raw, Title: title}
	}
	return PlaylistEntry{Path: resolvePlaylistEntryPath(raw, baseDir), Title: title}
}

func isRemote(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func resolvePlaylistEntryPath(raw, baseDir string) string {
	p := filepath.Clean(raw)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(baseDir, p))
}
