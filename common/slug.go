package common

import (
	"errors"
	"path"
	"regexp"
	"strings"
)

var (
	ErrEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	extChars     = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)
)

func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

// SlugFilename slugifies the stem of a user supplied filename and keeps a
// plain extension, e.g. "Factura Marzo (1).PDF" -> "factura-marzo-1.pdf".
// Unusable stems fall back to fallback, then to "file".
func SlugFilename(name, fallback string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := strings.ToLower(path.Ext(base))
	if !extChars.MatchString(ext) {
		ext = ""
	}
	stem := strings.TrimSuffix(base, path.Ext(base))

	slug, err := Slugify(stem, fallback)
	if err != nil {
		slug = "file"
	}
	return slug + ext
}

func slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}
