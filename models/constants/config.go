package constants

import (
	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	// Connection string; postgres:// URLs select PostgreSQL, anything else is a SQLite path.
	DatabaseURL = "DATABASE_URL"

	// Either "api" (X API v2) or "scraper".
	TwitterSource = "TWITTER_SOURCE"

	//nolint:gosec // False positive.
	// App-only bearer token for X API v2.
	TwitterBearerToken = "TWITTER_BEARER_TOKEN"

	// Consumer credentials, exchanged for a bearer token when TWITTER_BEARER_TOKEN is empty.
	TwitterConsumerKey = "TWITTER_CONSUMER_KEY"

	//nolint:gosec // False positive.
	TwitterConsumerSecret = "TWITTER_CONSUMER_SECRET"

	//nolint:gosec // False positive.
	// Auth token used when logged in to Twitter (scraper source).
	TwitterAuthToken = "TWITTER_AUTH_TOKEN"

	//nolint:gosec // False positive.
	// CSRF token used when logged in to Twitter (scraper source).
	TwitterCSRFToken = "TWITTER_CSRF_TOKEN"

	// Base URL of X API v2.
	TwitterAPIURL = "TWITTER_API_URL"

	// Requests per second allowed towards X API v2.
	TwitterAPIRPS = "TWITTER_API_RPS"

	// Account name stamped into raw_data provenance.
	TwitterAccount = "TWITTER_ACCOUNT"

	// Number of tweets retrieved per handle or keyword.
	TwitterTweetCount = "TWEET_COUNT"

	// Comma separated handles, without @.
	TrackedUsernames = "TRACKED_USERNAMES"

	// Comma separated search phrases.
	TrackedKeywords = "TRACKED_KEYWORDS"

	// Either "update" or "ignore".
	UpsertPolicy = "UPSERT_POLICY"

	// Cron tab of the fetch cycle. Empty means run once and exit.
	FetchCronTab = "FETCH_CRON_TAB"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	// Probe port.
	ProbePort = "PROBE_PORT"

	// TELEGRAM BOT
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	defaultDatabaseURL           = ""
	defaultTwitterSource         = "api"
	defaultTwitterBearerToken    = ""
	defaultTwitterConsumerKey    = ""
	defaultTwitterConsumerSecret = ""
	defaultTwitterAuthToken      = ""
	defaultTwitterCSRFToken      = ""
	defaultTwitterAPIURL         = "https://api.twitter.com/2"
	defaultTwitterAPIRPS         = 1.0
	defaultTwitterAccount        = ""
	defaultTwitterTweetCount     = 5
	defaultTrackedUsernames      = "MariaSTsehai"
	defaultTrackedKeywords       = "Samia Suluhu Hassan"
	defaultUpsertPolicy          = "update"
	defaultFetchCronTab          = ""
	defaultHealthCrontab         = "*/30 * * * *"
	defaultProbePort             = 9090
	defaultTelegramBotToken      = ""
	defaultLogLevel              = zerolog.InfoLevel
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		DatabaseURL:           defaultDatabaseURL,
		TwitterSource:         defaultTwitterSource,
		TwitterBearerToken:    defaultTwitterBearerToken,
		TwitterConsumerKey:    defaultTwitterConsumerKey,
		TwitterConsumerSecret: defaultTwitterConsumerSecret,
		TwitterAuthToken:      defaultTwitterAuthToken,
		TwitterCSRFToken:      defaultTwitterCSRFToken,
		TwitterAPIURL:         defaultTwitterAPIURL,
		TwitterAPIRPS:         defaultTwitterAPIRPS,
		TwitterAccount:        defaultTwitterAccount,
		TwitterTweetCount:     defaultTwitterTweetCount,
		TrackedUsernames:      defaultTrackedUsernames,
		TrackedKeywords:       defaultTrackedKeywords,
		UpsertPolicy:          defaultUpsertPolicy,
		FetchCronTab:          defaultFetchCronTab,
		HealthCronTab:         defaultHealthCrontab,
		ProbePort:             defaultProbePort,
		TelegramBotToken:      defaultTelegramBotToken,
		LogLevel:              defaultLogLevel.String(),
	}
}
