// Package fetcher retrieves contact lists from local paths, HTTP(S)
// and FTP sources, and parses XLSX workbooks into rows.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Fetcher downloads remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// Open resolves a contact-list source to a reader. Sources may be a
// local file path, an http(s):// URL or an ftp:// URL.
func Open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return NewHTTPFetcher(HTTPOptions{}).Download(ctx, source)
	case strings.HasPrefix(source, "ftp://"):
		return NewFTPFetcher(FTPOptions{}).Download(ctx, source)
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: open %s", source)
		}
		return f, nil
	}
}

// Fetch materializes a source to a local file. Local paths pass
// through untouched; remote sources download to destDir. Returns the
// local path.
func Fetch(ctx context.Context, source, destDir string) (string, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" {
		if _, statErr := os.Stat(source); statErr != nil {
			return "", eris.Wrapf(statErr, "fetcher: stat %s", source)
		}
		return source, nil
	}

	dest := filepath.Join(destDir, baseName(u.Path))
	var f Fetcher
	switch u.Scheme {
	case "http", "https":
		f = NewHTTPFetcher(HTTPOptions{})
	case "ftp":
		f = NewFTPFetcher(FTPOptions{})
	default:
		return "", eris.Errorf("fetcher: unsupported scheme %q", u.Scheme)
	}

	if _, err := f.DownloadToFile(ctx, source, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func baseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	if p == "" {
		return "download"
	}
	return p
}
