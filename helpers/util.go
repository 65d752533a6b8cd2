package helpers

import (
	"errors"
	"strings"
)

func GetSplitPart(target string, separate string, index int) (string, error) {
	parts := strings.Split(target, separate)
	if index >= len(parts) {
		return "", errors.New("index out of range")
	}
	return parts[index], nil
}

// SlugFromURL returns the last path segment of a URL, ignoring any query string
func SlugFromURL(link string) string {
	// index 0 always exists, the error is impossible here
	base, _ := GetSplitPart(link, "?", 0)
	base = strings.TrimRight(base, "/")
	parts := strings.Split(base, "/")
	return parts[len(parts)-1]
}

// TitleFromSlug turns a dash-separated slug into a title-cased display name
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
