package media

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Tags holds the text a card shows for a media file.
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// Description joins artist and album the way a card subtitle reads.
func (t Tags) Description() string {
	switch {
	case t.Artist != "" && t.Album != "":
		return t.Artist + " - " + t.Album
	case t.Artist != "":
		return t.Artist
	default:
		return t.Album
	}
}

// ReadTags reads ID3v2 tags from an MP3 file, falling back to the filename.
func ReadTags(path string) Tags {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		if err == nil {
			defer tag.Close()
			t := Tags{
				Title:  strings.TrimSpace(tag.Title()),
				Artist: strings.TrimSpace(tag.Artist()),
				Album:  strings.TrimSpace(tag.Album()),
			}
			if t.Title != "" {
				return t
			}
		}
	}

	base := filepath.Base(path)
	return Tags{Title: strings.TrimSuffix(base, filepath.Ext(base))}
}
