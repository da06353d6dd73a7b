package osint

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testClient points a Client at mock gravatar and github servers.
func testClient(gravatarURL, githubURL string) *Client {
	return &Client{
		http:         &http.Client{Timeout: 2 * time.Second},
		gravatarBase: gravatarURL,
		githubBase:   githubURL,
	}
}

func emailHash(email string) string {
	sum := md5.Sum([]byte(email))
	return hex.EncodeToString(sum[:])
}

func TestCandidateFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"JohnDoe.jpg", "johndoe"},
		{"alice.smith.png", "alice"},
		{"Jiří.jpeg", "jiri"},
		{"noextension", "noextension"},
		{"UPPER.GIF", "upper"},
	}

	for _, tc := range tests {
		if got := CandidateFromFilename(tc.filename); got != tc.want {
			t.Errorf("CandidateFromFilename(%q) = %q, expected %q", tc.filename, got, tc.want)
		}
	}
}

func TestLookup_GravatarFirstDomainWins(t *testing.T) {
	gmailHash := emailHash("johndoe@gmail.com")

	var requested []string
	gravatar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		if r.URL.Path == "/"+gmailHash+".json" {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"hash": gmailHash})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer gravatar.Close()

	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer github.Close()

	c := testClient(gravatar.URL, github.URL)

	hits := c.Lookup(context.Background(), "johndoe")

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}

	if hits[0].Source != "Gravatar" {
		t.Errorf("expected Gravatar source, got %s", hits[0].Source)
	}

	if hits[0].Email != "johndoe@gmail.com" {
		t.Errorf("expected first-domain email, got %s", hits[0].Email)
	}

	// First domain hit stops the probe sequence.
	if len(requested) != 1 {
		t.Errorf("expected probing to stop after first hit, saw %d requests", len(requested))
	}
}

func TestLookup_GravatarFallsThroughDomains(t *testing.T) {
	hotmailHash := emailHash("johndoe@hotmail.com")

	gravatar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/"+hotmailHash+".json" {
			json.NewEncoder(w).Encode(map[string]string{"hash": hotmailHash})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer gravatar.Close()

	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer github.Close()

	c := testClient(gravatar.URL, github.URL)

	hits := c.Lookup(context.Background(), "johndoe")

	if len(hits) != 1 || hits[0].Email != "johndoe@hotmail.com" {
		t.Fatalf("expected hotmail hit after falling through domains, got %+v", hits)
	}
}

func TestLookup_GitHubHit(t *testing.T) {
	gravatar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer gravatar.Close()

	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/johndoe" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"avatar_url":   "https://example.com/avatar.png",
			"name":         "John Doe",
			"bio":          "developer",
			"public_repos": 42,
			"followers":    7,
		})
	}))
	defer github.Close()

	c := testClient(gravatar.URL, github.URL)

	hits := c.Lookup(context.Background(), "johndoe")

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}

	if hits[0].Source != "GitHub" || hits[0].Username != "johndoe" {
		t.Errorf("unexpected hit %+v", hits[0])
	}

	var profile GitHubProfile
	if err := json.Unmarshal(hits[0].Data, &profile); err != nil {
		t.Fatalf("failed to parse profile data: %v", err)
	}

	if profile.Name != "John Doe" || profile.PublicRepos != 42 {
		t.Errorf("unexpected profile %+v", profile)
	}
}

func TestLookup_AllServicesFail(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	c := testClient(failing.URL, failing.URL)

	hits := c.Lookup(context.Background(), "johndoe")

	if len(hits) != 0 {
		t.Errorf("expected no hits when all services fail, got %d", len(hits))
	}
}

func TestLookup_UnreachableServices(t *testing.T) {
	// Closed server: connections are refused, which must read as no hit.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := testClient(server.URL, server.URL)

	hits := c.Lookup(context.Background(), "johndoe")

	if len(hits) != 0 {
		t.Errorf("expected no hits for unreachable services, got %d", len(hits))
	}
}

func TestLookup_EmptyCandidate(t *testing.T) {
	c := NewClient()

	if hits := c.Lookup(context.Background(), ""); hits != nil {
		t.Errorf("expected nil hits for empty candidate, got %+v", hits)
	}
}

func TestLookup_InvalidGravatarJSONIgnored(t *testing.T) {
	gravatar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer gravatar.Close()

	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer github.Close()

	c := testClient(gravatar.URL, github.URL)

	hits := c.Lookup(context.Background(), "johndoe")

	if len(hits) != 0 {
		t.Errorf("expected malformed profile body to be ignored, got %+v", hits)
	}
}
