package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"launchmc/errs"
)

// Fetch retrieves and decodes a remote JSON document. A nil client
// constructs a scoped client for this call only.
func Fetch[T any](ctx context.Context, client *http.Client, url string) (T, error) {
	var v T
	if client == nil {
		client = &http.Client{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return v, fmt.Errorf("request %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return v, errs.Wrap(errs.KindDownload, err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return v, errs.Downloadf("fetch %s responded %d (not 200)", url, resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(&v)
	if err != nil {
		return v, errs.Wrap(errs.KindParse, err, "decode %s", url)
	}
	return v, nil
}
