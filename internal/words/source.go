package words

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Source yields the raw bytes of a word bank document.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads the bank from a local JSON file.
type FileSource struct {
	Path string
}

func (f FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(f.Path)
}

func (f FileSource) String() string { return "file:" + f.Path }

// HTTPSource fetches the bank from a URL. A nil Client gets a 10s timeout.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (h HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("words: fetch %s: status %s", h.URL, resp.Status)
	}
	return resp.Body, nil
}

func (h HTTPSource) String() string { return h.URL }

// SourceFor picks a source from configuration: a file path wins over a URL.
// Returns nil when neither is set.
func SourceFor(path, url string, timeout time.Duration) Source {
	switch {
	case path != "":
		return FileSource{Path: path}
	case url != "":
		return HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
	default:
		return nil
	}
}
