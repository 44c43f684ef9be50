// Package github is a thin REST client for the GitHub API: issue search,
// repository health probes, and rate-limit introspection. Search results are
// cached in the short-lived search namespace.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/issue-scout/internal/cache"
	"github.com/jonathan/issue-scout/internal/types"
)

const (
	// DefaultBaseURL is the public GitHub API endpoint.
	DefaultBaseURL = "https://api.github.com"
	// DefaultMaxResults bounds how many issues one search returns.
	DefaultMaxResults = 50
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	apiVersion = "2022-11-28"
	userAgent  = "issue-scout/1.0"

	// staleRepoDays marks a repository unhealthy when it has seen no update
	// for this long.
	staleRepoDays = 180
)

// Error represents a failed GitHub API call.
type Error struct {
	Path       string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("github %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("github %s: %s (HTTP %d)", e.Path, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("github %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	// Token is a personal access token. Optional: without it GitHub allows
	// 60 requests/hour instead of 5000.
	Token      string
	BaseURL    string
	Timeout    time.Duration
	MaxResults int
}

// Client talks to the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxResults int
	cache      *cache.Store
	log        *zap.Logger
	now        func() time.Time
}

// NewClient creates a Client. The cache may be a disabled store but must not
// be nil.
func NewClient(store *cache.Store, log *zap.Logger, opts Options) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      opts.Token,
		maxResults: maxResults,
		cache:      store,
		log:        log,
		now:        time.Now,
	}, nil
}

// Authenticated reports whether the client carries a token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// SearchIssues finds open, unassigned issues matching the preferences. The
// result is served from the search cache namespace when a fresh entry exists
// for the same normalized query.
func (c *Client) SearchIssues(ctx context.Context, prefs *types.UserPreferences, maxResults int) ([]*types.IssueRecord, error) {
	if maxResults <= 0 || maxResults > c.maxResults {
		maxResults = c.maxResults
	}
	query := BuildSearchQuery(prefs)

	key := cache.Fingerprint(map[string]string{
		"query": query,
		"max":   strconv.Itoa(maxResults),
	})
	var cached []*types.IssueRecord
	if c.cache.GetJSON(cache.NamespaceSearch, key, &cached) {
		return cached, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "updated")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(maxResults))

	var resp searchResponse
	if err := c.get(ctx, "/search/issues", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	issues := c.toIssueRecords(ctx, resp.Items)
	c.cache.SetJSON(cache.NamespaceSearch, key, issues, 0)
	return issues, nil
}

// RepoHealth probes a repository's vital signs.
func (c *Client) RepoHealth(ctx context.Context, repoFullName string) (*types.RepoHealth, error) {
	repo, err := c.fetchRepo(ctx, repoFullName)
	if err != nil {
		return nil, fmt.Errorf("failed to check repo health: %w", err)
	}

	daysSinceUpdate := int(c.now().UTC().Sub(repo.UpdatedAt.UTC()).Hours() / 24)

	return &types.RepoHealth{
		Stars:                repo.StargazersCount,
		Forks:                repo.ForksCount,
		OpenIssues:           repo.OpenIssuesCount,
		DaysSinceUpdate:      daysSinceUpdate,
		HasContributingGuide: c.hasFile(ctx, repoFullName, "CONTRIBUTING.md"),
		IsHealthy:            daysSinceUpdate < staleRepoDays && repo.StargazersCount >= MinRepoStars,
	}, nil
}

// RateLimit reports the core API quota for the current credentials.
type RateLimit struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// RateLimitStatus fetches the current rate-limit state.
func (c *Client) RateLimitStatus(ctx context.Context) (*RateLimit, error) {
	var resp struct {
		Resources struct {
			Core struct {
				Limit     int   `json:"limit"`
				Remaining int   `json:"remaining"`
				Reset     int64 `json:"reset"`
			} `json:"core"`
		} `json:"resources"`
	}
	if err := c.get(ctx, "/rate_limit", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch rate limit: %w", err)
	}
	return &RateLimit{
		Limit:     resp.Resources.Core.Limit,
		Remaining: resp.Resources.Core.Remaining,
		ResetAt:   time.Unix(resp.Resources.Core.Reset, 0).UTC(),
	}, nil
}

// --- wire types ---

type searchResponse struct {
	TotalCount int        `json:"total_count"`
	Items      []apiIssue `json:"items"`
}

type apiIssue struct {
	Number        int    `json:"number"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	HTMLURL       string `json:"html_url"`
	RepositoryURL string `json:"repository_url"`
	Comments      int    `json:"comments"`
	Labels        []struct {
		Name string `json:"name"`
	} `json:"labels"`
	Assignees []struct {
		Login string `json:"login"`
	} `json:"assignees"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type apiRepo struct {
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// toIssueRecords maps raw search items to IssueRecords, enriching each with
// repository stars and description. Repositories are fetched once per batch;
// an issue whose repository cannot be fetched is kept with zero stars rather
// than dropped.
func (c *Client) toIssueRecords(ctx context.Context, items []apiIssue) []*types.IssueRecord {
	repos := make(map[string]*apiRepo)
	issues := make([]*types.IssueRecord, 0, len(items))

	for _, item := range items {
		fullName := repoFullNameFromURL(item.RepositoryURL)
		if fullName == "" {
			c.log.Warn("skipping issue with unparseable repository URL",
				zap.String("url", item.RepositoryURL))
			continue
		}

		repo, seen := repos[fullName]
		if !seen {
			fetched, err := c.fetchRepo(ctx, fullName)
			if err != nil {
				c.log.Warn("failed to fetch repository metadata",
					zap.String("repo", fullName),
					zap.Error(err))
			}
			repo = fetched // may be nil
			repos[fullName] = repo
		}

		record := &types.IssueRecord{
			RepoFullName:  fullName,
			Number:        item.Number,
			Title:         item.Title,
			Body:          item.Body,
			URL:           item.HTMLURL,
			CommentsCount: item.Comments,
			CreatedAt:     item.CreatedAt,
			UpdatedAt:     item.UpdatedAt,
		}
		for _, label := range item.Labels {
			record.Labels = append(record.Labels, label.Name)
		}
		for _, assignee := range item.Assignees {
			record.Assignees = append(record.Assignees, assignee.Login)
		}
		if repo != nil {
			record.RepoStars = repo.StargazersCount
			record.RepoDescription = repo.Description
		}
		issues = append(issues, record)
	}
	return issues
}

func (c *Client) fetchRepo(ctx context.Context, fullName string) (*apiRepo, error) {
	var repo apiRepo
	if err := c.get(ctx, "/repos/"+fullName, nil, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// hasFile checks for a file at the repository root. Any error counts as
// absent.
func (c *Client) hasFile(ctx context.Context, fullName, filename string) bool {
	var out json.RawMessage
	err := c.get(ctx, "/repos/"+fullName+"/contents/"+filename, nil, &out)
	return err == nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &Error{Path: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Path: path, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Path: path, Message: "failed to read response", Cause: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return &Error{Path: path, StatusCode: resp.StatusCode, Message: "rate limit exceeded"}
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{Path: path, StatusCode: resp.StatusCode, Message: "bad credentials"}
	default:
		return &Error{Path: path, StatusCode: resp.StatusCode, Message: apiErrorMessage(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Path: path, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// apiErrorMessage pulls the "message" field out of a GitHub error body.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "unexpected response"
}

// repoFullNameFromURL extracts "owner/repo" from an API repository URL such
// as https://api.github.com/repos/owner/repo.
func repoFullNameFromURL(repoURL string) string {
	const marker = "/repos/"
	idx := strings.Index(repoURL, marker)
	if idx < 0 {
		return ""
	}
	fullName := repoURL[idx+len(marker):]
	if strings.Count(fullName, "/") != 1 {
		return ""
	}
	return fullName
}
