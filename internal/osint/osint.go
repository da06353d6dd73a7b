// Package osint performs best-effort, unauthenticated public profile lookups
// for a candidate identity derived from a gallery match. Lookups are guesses,
// not evidence of identity; every network failure degrades to "no hit".
package osint

import (
	"context"
	"crypto/md5" //nolint:gosec // gravatar addresses profiles by md5 of the email
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vkrejcir/facetrace/internal/constants"
)

// commonDomains is the fixed list of email domains probed for an avatar
// profile, in probe order.
var commonDomains = []string{"gmail.com", "yahoo.com", "hotmail.com"}

// Hit is a single successful profile lookup.
type Hit struct {
	Source   string          `json:"source"`
	Email    string          `json:"email,omitempty"`
	Username string          `json:"username,omitempty"`
	Data     json.RawMessage `json:"data"`
}

// GitHubProfile holds the subset of a developer profile worth reporting.
type GitHubProfile struct {
	AvatarURL   string `json:"avatar_url"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// Client probes public profile services. The zero value is not usable;
// construct with NewClient.
type Client struct {
	http         *http.Client
	gravatarBase string
	githubBase   string
}

// NewClient creates a lookup client with the standard endpoints and a
// bounded per-request timeout.
func NewClient() *Client {
	return &Client{
		http:         &http.Client{Timeout: constants.OSINTTimeout},
		gravatarBase: "https://www.gravatar.com",
		githubBase:   "https://api.github.com",
	}
}

// Lookup runs all profile probes for the candidate string and returns any
// hits. It never returns an error: failed probes simply contribute nothing.
func (c *Client) Lookup(ctx context.Context, candidate string) []Hit {
	if candidate == "" {
		return nil
	}

	var hits []Hit

	// Try common email patterns against the avatar service; first hit wins.
	for _, domain := range commonDomains {
		email := candidate + "@" + domain
		if data, ok := c.gravatar(ctx, email); ok {
			hits = append(hits, Hit{
				Source: "Gravatar",
				Email:  email,
				Data:   data,
			})
			break
		}
	}

	if profile, ok := c.github(ctx, candidate); ok {
		data, err := json.Marshal(profile)
		if err == nil {
			hits = append(hits, Hit{
				Source:   "GitHub",
				Username: candidate,
				Data:     data,
			})
		}
	}

	return hits
}

// gravatar fetches the profile document for an md5-hashed email address.
func (c *Client) gravatar(ctx context.Context, email string) (json.RawMessage, bool) {
	sum := md5.Sum([]byte(email)) //nolint:gosec // protocol requirement, not a security control
	hash := hex.EncodeToString(sum[:])
	url := fmt.Sprintf("%s/%s.json", c.gravatarBase, hash)

	body, ok := c.get(ctx, url)
	if !ok {
		return nil, false
	}

	// Only report well-formed profile documents.
	if !json.Valid(body) {
		return nil, false
	}
	return json.RawMessage(body), true
}

// github fetches the public user document for a username.
func (c *Client) github(ctx context.Context, username string) (*GitHubProfile, bool) {
	url := fmt.Sprintf("%s/users/%s", c.githubBase, username)

	body, ok := c.get(ctx, url)
	if !ok {
		return nil, false
	}

	var profile GitHubProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

// get performs a GET request and returns the body only on a 200 response.
// Any transport error, timeout or non-success status reads as "no hit".
func (c *Client) get(ctx context.Context, url string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false
	}
	return body, true
}
