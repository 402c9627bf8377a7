package media

import (
	"path/filepath"
	"strings"
)

// Kind classifies a media reference by what a card shows for it.
type Kind int

const (
	Unknown Kind = iota
	Image
	Video
	Audio
)

var kindByExt = map[string]Kind{
	".jpg":  Image,
	".jpeg": Image,
	".png":  Image,
	".gif":  Image,
	".webp": Image,
	".mp4":  Video,
	".webm": Video,
	".mov":  Video,
	".mkv":  Video,
	".mp3":  Audio,
	".wav":  Audio,
	".flac": Audio,
	".ogg":  Audio,
	".aac":  Audio,
	".m4a":  Audio,
	".m4b":  Audio,
}

var playlistExts = map[string]bool{
	".m3u":  true,
	".m3u8": true,
	".pls":  true,
}

// KindOf classifies a path or URL by its extension.
func KindOf(ref string) Kind {
	if i := strings.IndexAny(ref, "?#"); i >= 0 && strings.Contains(ref, "://") {
		ref = ref[:i]
	}
	return kindByExt[strings.ToLower(filepath.Ext(ref))]
}

// IsSupportedExt returns true if the extension is a media format cards can reference.
func IsSupportedExt(ext string) bool {
	return kindByExt[strings.ToLower(ext)] != Unknown
}

// IsPlaylistExt returns true if the extension is a supported playlist format.
func IsPlaylistExt(ext string) bool {
	return playlistExts[strings.ToLower(ext)]
}

func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	case Audio:
		return "audio"
	default:
		return "media"
	}
}

// Badge returns the glyph shown in the corner of a card.
func (k Kind) Badge() string {
	switch k {
	case Image:
		return "▣"
	case Video:
		return "▶"
	case Audio:
		return "♪"
	default:
		return "·"
	}
}
