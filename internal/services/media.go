package services

import (
	"path"
	"strings"
)

const (
	MediaImage   = "image"
	MediaAudio   = "audio"
	MediaVideo   = "video"
	MediaUnknown = "unknown"
)

var mediaTypes = map[string]string{
	"png":  MediaImage,
	"jpg":  MediaImage,
	"jpeg": MediaImage,
	"gif":  MediaImage,
	"bmp":  MediaImage,
	"svg":  MediaImage,
	"webp": MediaImage,
	"mp3":  MediaAudio,
	"wav":  MediaAudio,
	"ogg":  MediaAudio,
	"m4a":  MediaAudio,
	"aac":  MediaAudio,
	"flac": MediaAudio,
	"mp4":  MediaVideo,
	"webm": MediaVideo,
	"ogv":  MediaVideo,
	"mov":  MediaVideo,
	"avi":  MediaVideo,
	"m4v":  MediaVideo,
}

// MediaType classifies a filename by extension. Unknown extensions yield
// MediaUnknown rather than an error.
func MediaType(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if kind, ok := mediaTypes[ext]; ok {
		return kind
	}
	return MediaUnknown
}

// AllowedFile reports whether filename has an extension the kiosk can play.
func AllowedFile(filename string) bool {
	return MediaType(filename) != MediaUnknown
}

// SecureFilename strips any directory part and replaces characters outside
// [A-Za-z0-9._-] with underscores.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.Join(strings.Fields(name), "_")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
