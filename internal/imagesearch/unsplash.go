package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultUnsplashURL is the public Unsplash API root.
const DefaultUnsplashURL = "https://api.unsplash.com"

// UnsplashClient searches photos on Unsplash.
type UnsplashClient struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
}

// NewUnsplashClient creates a client authenticating with accessKey. An empty
// baseURL selects DefaultUnsplashURL.
func NewUnsplashClient(httpClient *http.Client, baseURL, accessKey string) *UnsplashClient {
	if baseURL == "" {
		baseURL = DefaultUnsplashURL
	}
	return &UnsplashClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		accessKey:  accessKey,
	}
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// Search queries /search/photos. Spaces in the query become hyphens. Every
// result is returned, including those without a regular URL.
func (c *UnsplashClient) Search(ctx context.Context, query string, orientation Orientation) ([]string, error) {
	params := url.Values{}
	params.Set("query", strings.ReplaceAll(query, " ", "-"))
	params.Set("orientation", string(orientation))
	params.Set("client_id", c.accessKey)
	endpoint := c.baseURL + "/search/photos/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building unsplash request: %w", err)
	}
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash search: unexpected status %d", resp.StatusCode)
	}

	var body unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding unsplash response: %w", err)
	}

	urls := make([]string, 0, len(body.Results))
	for _, r := range body.Results {
		urls = append(urls, r.URLs.Regular)
	}
	return urls, nil
}
