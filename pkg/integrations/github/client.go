package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v62/github"

	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/httputil"
	"github.com/matzehuels/swiftdeps/pkg/observability"
	"github.com/matzehuels/swiftdeps/pkg/submission"
)

// DefaultServerURL is the public GitHub server.
const DefaultServerURL = "https://github.com"

// Client submits snapshots for one GitHub server.
type Client struct {
	gh       *gh.Client
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithRetry overrides the retry policy (default: httputil.DefaultAttempts
// attempts starting at httputil.DefaultDelay).
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.gh = rebase(gh.NewClient(hc), c.gh)
	}
}

// NewClient creates a client for serverURL authenticated with token.
// An empty serverURL means [DefaultServerURL].
func NewClient(serverURL, token string, opts ...Option) (*Client, error) {
	client := gh.NewClient(nil)
	if !isDotCom(serverURL) {
		if err := errs.ValidateServerURL(serverURL); err != nil {
			return nil, err
		}
		var err error
		client, err = client.WithEnterpriseURLs(serverURL, serverURL)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeConfiguration, err, "invalid server URL %q", serverURL)
		}
	}

	c := &Client{
		gh:       client,
		attempts: httputil.DefaultAttempts,
		delay:    httputil.DefaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if token != "" {
		c.gh = c.gh.WithAuthToken(token)
	}
	return c, nil
}

// Result is GitHub's acknowledgement of a submitted snapshot.
type Result struct {
	ID        int64
	CreatedAt time.Time
	Message   string
	Result    string // "SUCCESS", "ACCEPTED" or "INVALID"
}

// Submit posts doc to the repository named by doc.Owner and doc.Repo.
func (c *Client) Submit(ctx context.Context, doc *submission.Document) (*Result, error) {
	if err := validateTarget(doc.Owner, doc.Repo); err != nil {
		return nil, err
	}

	snapshot := toSnapshot(doc)
	host := c.gh.BaseURL.Host
	path := c.gh.BaseURL.Path + "repos/" + doc.Owner + "/" + doc.Repo + "/dependency-graph/snapshots"
	hooks := observability.HTTP()

	var created *gh.DependencyGraphSnapshotCreationData
	err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
		hooks.OnRequest(ctx, http.MethodPost, host, path)
		start := time.Now()

		data, resp, err := c.gh.DependencyGraph.CreateSnapshot(ctx, doc.Owner, doc.Repo, snapshot)
		if resp != nil {
			hooks.OnResponse(ctx, http.MethodPost, host, path, resp.StatusCode, time.Since(start))
		}
		if err != nil {
			hooks.OnError(ctx, http.MethodPost, host, path, err)
			return classify(resp, err, doc.Owner, doc.Repo)
		}
		created = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		ID:        created.ID,
		CreatedAt: created.GetCreatedAt().Time,
		Message:   created.GetMessage(),
		Result:    created.GetResult(),
	}, nil
}

// classify maps a failed call onto an error code. Transport failures and
// server errors are marked retryable.
func classify(resp *gh.Response, err error, owner, repo string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if resp == nil {
		return httputil.Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "submit snapshot to %s/%s", owner, repo))
	}
	switch code := resp.StatusCode; {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errs.Wrap(errs.ErrCodeUnauthorized, err, "submit snapshot to %s/%s", owner, repo)
	case code >= 500:
		return httputil.Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "submit snapshot to %s/%s", owner, repo))
	default:
		return errs.Wrap(errs.ErrCodeNetwork, err, "submit snapshot to %s/%s", owner, repo)
	}
}

func validateTarget(owner, repo string) error {
	if err := errs.ValidateOwner(owner); err != nil {
		return err
	}
	return errs.ValidateRepo(repo)
}

func isDotCom(serverURL string) bool {
	if serverURL == "" {
		return true
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "github.com" || host == "www.github.com"
}

// rebase copies the endpoints of from onto to.
func rebase(to, from *gh.Client) *gh.Client {
	to.BaseURL = from.BaseURL
	to.UploadURL = from.UploadURL
	return to
}
