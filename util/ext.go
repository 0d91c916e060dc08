package util

import (
	"path"
	"slices"
	"strings"
)

// Extension returns the text after the final dot of the base name of the
// slash-separated path p.
// Names without a dot, and dotfiles such as ".gitignore", have no extension.
// "Tree." has an extension, but it is empty.
func Extension(p string) (string, bool) {
	base := path.Base(p)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return "", false
	}
	return base[i+1:], true
}

// ExtensionSet is an inclusion filter of lower-case extensions without the
// leading dot. A nil set is "no filter".
type ExtensionSet map[string]struct{}

// ParseExtensions builds an ExtensionSet from user input.
//
// Accepted forms are "png", ".png" and "*.png". Values are trimmed and
// lower-cased; empty values are dropped. If nothing remains the result is
// nil, so an empty --include list behaves like no filter at all.
func ParseExtensions(exts []string) ExtensionSet {
	var set ExtensionSet
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*.")
		ext = strings.TrimLeft(ext, ".")
		ext = strings.ToLower(ext)
		if ext == "" {
			continue
		}
		if set == nil {
			set = make(ExtensionSet)
		}
		set[ext] = struct{}{}
	}
	return set
}

// Active reports whether the set filters anything.
func (s ExtensionSet) Active() bool {
	return s != nil
}

// Allows reports whether ext passes the filter. An inactive set allows
// everything. Membership is exact: "PNG" does not match "png".
func (s ExtensionSet) Allows(ext string) bool {
	if s == nil {
		return true
	}
	_, ok := s[ext]
	return ok
}

// Sorted returns the members in lexical order, for display.
func (s ExtensionSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for ext := range s {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}
