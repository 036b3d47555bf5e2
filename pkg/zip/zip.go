// Package zip bundles rendered images into a single archive.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Asset is one archive entry. When Filename has no extension one is derived
// from MIME.
type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// entries carry a fixed timestamp so equal inputs give equal archives
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ArchiveAssets writes assets in order. Entries are stored, not deflated,
// since PNG data is already compressed.
func ArchiveAssets(assets []Asset) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	seen := make(map[string]struct{}, len(assets))
	for _, asset := range assets {
		name := entryName(asset)
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("zip: duplicate entry %q", name)
		}
		seen[name] = struct{}{}

		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store, Modified: epoch})
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", name, err)
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}

func entryName(a Asset) string {
	name := path.Clean("/" + a.Filename)[1:]
	if name == "" {
		name = "asset"
	}
	if path.Ext(name) == "" && a.MIME != "" {
		if mt := mimetype.Lookup(a.MIME); mt != nil {
			name += mt.Extension()
		}
	}
	return name
}
