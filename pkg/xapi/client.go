package xapi

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

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://api.twitter.com/2"
	DefaultTokenURL = "https://api.twitter.com/oauth2/token"

	defaultTimeout           = 15 * time.Second
	defaultMaxRateLimitWaits = 3
	maxRateLimitWait         = 15 * time.Minute
	fallbackRateLimitWait    = time.Minute
)

type Config struct {
	BaseURL           string
	TokenURL          string
	BearerToken       string
	ConsumerKey       string
	ConsumerSecret    string
	RequestsPerSecond float64
	Timeout           time.Duration
}

type Client struct {
	baseURL           string
	httpClient        *http.Client
	limiter           *rate.Limiter
	maxRateLimitWaits int
	now               func() time.Time
	sleep             func(ctx context.Context, d time.Duration) error
}

// New builds an authenticated client. A bearer token wins over consumer
// credentials; with consumer credentials only, the app token is fetched
// eagerly so bad credentials surface here rather than on the first query.
func New(ctx context.Context, cfg Config) (*Client, error) {
	var httpClient *http.Client
	switch {
	case cfg.BearerToken != "":
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.BearerToken, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, src)
	case cfg.ConsumerKey != "" && cfg.ConsumerSecret != "":
		tokenURL := cfg.TokenURL
		if tokenURL == "" {
			tokenURL = DefaultTokenURL
		}
		cc := &clientcredentials.Config{
			ClientID:     cfg.ConsumerKey,
			ClientSecret: cfg.ConsumerSecret,
			TokenURL:     tokenURL,
		}
		if _, err := cc.Token(ctx); err != nil {
			return nil, fmt.Errorf("failed to obtain app token: %w", err)
		}
		httpClient = cc.Client(ctx)
	default:
		return nil, ErrMissingCreds
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient.Timeout = timeout

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:           baseURL,
		httpClient:        httpClient,
		limiter:           newLimiter(cfg.RequestsPerSecond),
		maxRateLimitWaits: defaultMaxRateLimitWaits,
		now:               time.Now,
		sleep:             sleepContext,
	}, nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (User, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return User{}, ErrEmptyHandle
	}

	query := url.Values{}
	query.Set("user.fields", strings.Join(DefaultUserFields, ","))

	var resp userResponse
	if err := c.get(ctx, "/users/by/username/"+url.PathEscape(username), query, &resp); err != nil {
		return User{}, err
	}

	if resp.Data == nil {
		for _, problem := range resp.Errors {
			if problem.isNotFound() {
				return User{}, fmt.Errorf("%s: %w", username, ErrNotFound)
			}
		}
		if len(resp.Errors) > 0 {
			return User{}, &APIError{StatusCode: http.StatusOK, Title: resp.Errors[0].Title, Detail: resp.Errors[0].Detail}
		}
		return User{}, fmt.Errorf("%s: %w", username, ErrNotFound)
	}

	return *resp.Data, nil
}

// GetUserTweets returns the most recent tweets posted by userID.
func (c *Client) GetUserTweets(ctx context.Context, userID string, params TimelineParams) (TweetsResponse, error) {
	query := url.Values{}
	query.Set("max_results", strconv.Itoa(clamp(params.MaxResults, 5, 100)))
	setList(query, "tweet.fields", params.TweetFields)
	setList(query, "expansions", params.Expansions)

	var resp TweetsResponse
	err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/tweets", query, &resp)
	return resp, err
}

// SearchRecent runs a recent search for the given free-text query.
func (c *Client) SearchRecent(ctx context.Context, text string, params SearchParams) (TweetsResponse, error) {
	query := url.Values{}
	query.Set("query", text)
	query.Set("max_results", strconv.Itoa(clamp(params.MaxResults, 10, 100)))
	setList(query, "tweet.fields", params.TweetFields)
	setList(query, "expansions", params.Expansions)
	setList(query, "user.fields", params.UserFields)

	var resp TweetsResponse
	err := c.get(ctx, "/tweets/search/recent", query, &resp)
	return resp, err
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("x api request %s: %w", path, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < c.maxRateLimitWaits {
			wait := c.rateLimitWait(resp.Header)
			_ = resp.Body.Close()
			log.Warn().Str("path", path).Dur("wait", wait).Msg("Rate limit exceeded, waiting before retrying")
			if err := c.sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		return decode(resp, out)
	}
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read x api response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var problem Problem
		_ = json.Unmarshal(body, &problem)
		if problem.Title == "" {
			problem.Title = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Title: problem.Title, Detail: problem.Detail}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode x api response: %w", err)
	}
	return nil
}

// rateLimitWait honours x-rate-limit-reset (epoch seconds) then Retry-After.
func (c *Client) rateLimitWait(header http.Header) time.Duration {
	wait := fallbackRateLimitWait
	if reset := header.Get("x-rate-limit-reset"); reset != "" {
		if epoch, err := strconv.ParseInt(reset, 10, 64); err == nil {
			wait = time.Unix(epoch, 0).Sub(c.now()) + time.Second
		}
	} else if retryAfter := header.Get("Retry-After"); retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil {
			wait = time.Duration(secs) * time.Second
		}
	}

	if wait < 0 {
		return 0
	}
	if wait > maxRateLimitWait {
		return maxRateLimitWait
	}
	return wait
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func setList(query url.Values, key string, values []string) {
	if len(values) > 0 {
		query.Set(key, strings.Join(values, ","))
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
