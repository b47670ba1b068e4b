// Package profile fetches public GitHub profile stats for the home panel.
// The fetch is fire-and-forget: callers poll a channel from the frame loop
// and a failure only costs the stats row.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
)

type Stats struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	HTMLURL     string `json:"html_url"`
}

// Result is delivered once per FetchAsync.
type Result struct {
	Stats Stats
	Err   error
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Timeout time.Duration
	log     *game_log.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *game_log.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    http.DefaultClient,
		Timeout: timeout,
		log:     logger.Tag("PROFILE"),
	}
}

// Fetch loads the stats for user.
func (c *Client) Fetch(ctx context.Context, user string) (Stats, error) {
	if user == "" {
		return Stats{}, fmt.Errorf("profile: empty user")
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	u := c.BaseURL + "/users/" + url.PathEscape(user)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("profile: build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Stats{}, fmt.Errorf("profile: get %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Stats{}, fmt.Errorf("profile: get %s: status %d", u, resp.StatusCode)
	}
	var s Stats
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return Stats{}, fmt.Errorf("profile: decode: %w", err)
	}
	c.log.Debugf("fetched %s: %d repos", user, s.PublicRepos)
	return s, nil
}

// FetchAsync runs Fetch on its own goroutine. The returned channel receives
// exactly one Result and is then closed.
func (c *Client) FetchAsync(ctx context.Context, user string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		s, err := c.Fetch(ctx, user)
		if err != nil {
			c.log.Warnf("%v", err)
		}
		ch <- Result{Stats: s, Err: err}
	}()
	return ch
}

// Summary formats the stats row shown on the home panel.
func (s Stats) Summary() string {
	return fmt.Sprintf("%d repos · %d followers · %d following", s.PublicRepos, s.Followers, s.Following)
}
