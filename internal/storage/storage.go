// Package storage stages uploaded files outside the request so the payload
// can carry a reference instead of the bytes.
package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stager persists an upload and returns a reference to it.
type Stager interface {
	Stage(ctx context.Context, name string, data []byte) (string, error)
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadName builds the key <unix-ms>-<uuid>-<name>. The uuid keeps keys
// unique for concurrent uploads of the same file in the same millisecond.
func UploadName(now time.Time, id uuid.UUID, name string) string {
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), id, SanitizeName(name))
}

// SanitizeName strips directories and anything outside [A-Za-z0-9._-].
func SanitizeName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	name = path.Base(name)
	name = unsafeName.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" || name == "/" {
		return "upload"
	}
	return name
}
