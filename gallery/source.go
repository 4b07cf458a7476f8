package gallery

import (
	"fmt"
	"strings"
)

// ImageSource is one image the gallery should display.
// Immutable once normalized.
type ImageSource struct {
	// URI is a local path, a file:// URI or an http(s):// URL.
	URI string `toml:"uri"`
	// AltText describes the image. It is carried for callers and logs; it is never rendered.
	AltText string `toml:"alt"`
}

// NormalizeSources converts caller-supplied image entries into ImageSources.
// Each entry may be a plain string, an ImageSource, a *ImageSource, or a map with "uri"/"src"/"url"
// and "alt" keys (the shape a decoded TOML or JSON table takes). Entries with an empty URI are dropped
// with a warning since they can never load.
//
// Parameters:
//   - entries: the raw image entries
//
// Returns:
//   - []ImageSource: the normalized sources in input order
//   - error: error if an entry has an unsupported type
func NormalizeSources(entries ...any) ([]ImageSource, error) {
	out := make([]ImageSource, 0, len(entries))
	for i, e := range entries {
		var src ImageSource
		switch v := e.(type) {
		case string:
			src = ImageSource{URI: v}
		case ImageSource:
			src = v
		case *ImageSource:
			if v == nil {
				continue
			}
			src = *v
		case map[string]any:
			src.URI = firstString(v, "uri", "src", "url")
			src.AltText = firstString(v, "alt", "alt_text", "altText")
		case map[string]string:
			src.URI = firstString(toAnyMap(v), "uri", "src", "url")
			src.AltText = firstString(toAnyMap(v), "alt", "alt_text", "altText")
		default:
			return nil, fmt.Errorf("image entry %d: unsupported type %T", i, e)
		}
		src.URI = strings.TrimSpace(src.URI)
		if src.URI == "" {
			Logger().Warn("dropping image entry with empty uri", "index", i)
			continue
		}
		out = append(out, src)
	}
	return out, nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func toAnyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
