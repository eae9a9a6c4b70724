// Package assets stores profile pictures keyed by user id. Two backends
// implement Store: LocalStore keeps files in an uploads directory and records
// their path in the profiles table, S3Store keeps the bytes in an object store.
package assets

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode"
)

// Store is the blob side of a profile. Get returns common.ErrorNotFound when
// the user has no picture; any other error is a storage failure.
type Store interface {
	// Put stores content for userID, replacing an existing picture, and
	// returns a backend-specific reference to it.
	Put(ctx context.Context, userID int64, filename string, content []byte) (string, error)
	Get(ctx context.Context, userID int64) ([]byte, error)
	// Delete removes the picture; deleting a missing picture is not an error.
	Delete(ctx context.Context, userID int64) error
}

const fallbackName = "picture"

// maxNameLen matches profiles.picture_path and common filesystem limits.
const maxNameLen = 255

// FileName builds the stored name for a user's picture: "<id>_<name>",
// lowercased, with whitespace replaced by '_'. Directory components of the
// original name are dropped, so the result never escapes the store root.
// The id prefix keeps names unique per user. Long names are shortened
// before the extension to fit maxNameLen bytes.
func FileName(userID int64, original string) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == ".." || base == "/" {
		base = fallbackName
	}

	name := fmt.Sprintf("%d_%s", userID, base)
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return unicode.ToLower(r)
	}, name)

	return truncateName(name)
}

func truncateName(name string) string {
	if len(name) <= maxNameLen {
		return name
	}
	ext := path.Ext(name)
	if len(ext) > maxNameLen/4 {
		ext = ""
	}
	stem := []rune(strings.TrimSuffix(name, ext))
	for len(string(stem))+len(ext) > maxNameLen {
		stem = stem[:len(stem)-1]
	}
	return string(stem) + ext
}
