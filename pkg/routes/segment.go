package routes

import (
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

var (
	// repeated separators collapse to one
	multiSlashRe = regexp.MustCompile(`/{2,}`)

	// escapes the host separator when paths are embedded in generated source
	separatorEscapeRe = regexp.MustCompile(regexp.QuoteMeta(string(filepath.Separator)))
)

// ParseSegment classifies a single path token.
//
//	_      -> catch-all
//	_id    -> dynamic "id"
//	index  -> index
//	users  -> static
func ParseSegment(key string) Segment {
	seg := Segment{Raw: key, Name: key}

	switch {
	case key == "_":
		seg.Name = ""
		seg.Type = SegmentCatchAll
	case strings.HasPrefix(key, "_"):
		// Only a leading sigil is removed
		seg.Name = key[1:]
		seg.Type = SegmentDynamic
	case key == "index":
		seg.Type = SegmentIndex
	default:
		seg.Type = SegmentStatic
	}

	return seg
}

// ParsePatternToken classifies a router-pattern token such as "users",
// ":id", ":id?" or "*".
func ParsePatternToken(tok string) Segment {
	switch {
	case tok == "*":
		return Segment{Raw: tok, Type: SegmentCatchAll}
	case strings.HasPrefix(tok, ":") && strings.HasSuffix(tok, "?"):
		return Segment{Raw: tok, Name: tok[1 : len(tok)-1], Type: SegmentOptionalDynamic}
	case strings.HasPrefix(tok, ":"):
		return Segment{Raw: tok, Name: tok[1:], Type: SegmentDynamic}
	}
	return Segment{Raw: tok, Name: tok, Type: SegmentStatic}
}

// Validate checks that file lies under the pages root and carries a
// recognized extension. It must pass before Tokenize is called.
func Validate(file string, opts Options) error {
	_, err := opts.withDefaults().relative(file)
	return err
}

// Tokenize splits one page file path into classified segments, stripping
// the pages-root prefix and the extension.
func Tokenize(file string, opts Options) ([]Segment, error) {
	rel, err := opts.withDefaults().relative(file)
	if err != nil {
		return nil, err
	}

	keys := strings.Split(rel, "/")
	segments := make([]Segment, 0, len(keys))
	for _, key := range keys {
		segments = append(segments, ParseSegment(key))
	}
	return segments, nil
}

// relative returns file relative to the pages root with its extension
// removed. opts must already carry defaults.
func (o Options) relative(file string) (string, error) {
	p := multiSlashRe.ReplaceAllString(filepath.ToSlash(file), "/")

	if o.PagesDir != "" {
		rest, ok := strings.CutPrefix(p, o.PagesDir)
		if !ok || !strings.HasPrefix(rest, "/") {
			return "", &InvalidInputPathError{Path: file, Reason: "outside pages directory " + o.PagesDir}
		}
		p = rest
	}

	ext := strings.TrimPrefix(path.Ext(p), ".")
	if ext == "" || !slices.Contains(o.Extensions, ext) {
		return "", &InvalidInputPathError{Path: file, Reason: "unrecognized extension"}
	}
	p = strings.Trim(strings.TrimSuffix(p, "."+ext), "/")

	if p == "" {
		return "", &InvalidInputPathError{Path: file, Reason: "empty page name"}
	}
	return p, nil
}

// chunkName strips the recognized extension, keeping the pages prefix.
func (o Options) chunkName(file string) string {
	p := multiSlashRe.ReplaceAllString(filepath.ToSlash(file), "/")
	return strings.TrimSuffix(p, path.Ext(p))
}

// DefaultResolver joins base and rel into an absolute, host-native path.
func DefaultResolver(base, rel string) string {
	joined := filepath.Join(base, filepath.FromSlash(rel))
	abs, err := filepath.Abs(joined)
	if err != nil {
		return joined
	}
	return abs
}

// EscapePath escapes host separators so the path can be embedded in a
// quoted string literal. It is the identity on hosts using "/".
func EscapePath(p string) string {
	if filepath.Separator == '/' {
		return p
	}
	return separatorEscapeRe.ReplaceAllLiteralString(p, `\\`)
}
