package registry

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/kilianp07/tutorgrid/core/model"
)

// maxRemoteSize bounds the party document read from a remote endpoint.
const maxRemoteSize = 8 << 20

// Fetch downloads a party document from rawURL with client. The format is
// taken from the response Content-Type, then from the URL path extension,
// and defaults to yaml.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (model.Registry, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return model.Registry{}, fmt.Errorf("fetch registry: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, application/json")
	resp, err := client.Do(req)
	if err != nil {
		return model.Registry{}, fmt.Errorf("fetch registry: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return model.Registry{}, fmt.Errorf("fetch registry: unexpected status %s", resp.Status)
	}
	reg, err := Decode(io.LimitReader(resp.Body, maxRemoteSize), remoteFormat(resp.Header.Get("Content-Type"), rawURL))
	if err != nil {
		return model.Registry{}, fmt.Errorf("%s: %w", rawURL, err)
	}
	return reg, nil
}

func remoteFormat(contentType, rawURL string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "application/json":
			return FormatJSON
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			return FormatYAML
		}
	}
	if u, err := url.Parse(rawURL); err == nil {
		if f, err := FormatOf(u.Path); err == nil {
			return f
		}
	}
	return FormatYAML
}
