package application

import (
	"errors"
	"fmt"
	"strings"

	"tweet-collector/models/constants"
	"tweet-collector/models/entities"
	repo "tweet-collector/repositories/twitter"

	"github.com/spf13/viper"
)

var (
	ErrMissingDatabaseURL        = errors.New("DATABASE_URL is not set")
	ErrMissingAPICredentials     = errors.New("TWITTER_BEARER_TOKEN or TWITTER_CONSUMER_KEY/TWITTER_CONSUMER_SECRET must be set")
	ErrMissingScraperCredentials = errors.New("TWITTER_AUTH_TOKEN and TWITTER_CSRF_TOKEN must be set")
	ErrUnknownSource             = errors.New("unknown tweet source")
	ErrNoQueries                 = errors.New("neither TRACKED_USERNAMES nor TRACKED_KEYWORDS yields a query")
)

type Config struct {
	DatabaseURL string

	Source         string
	BearerToken    string
	ConsumerKey    string
	ConsumerSecret string
	AuthToken      string
	CSRFToken      string
	APIURL         string
	APIRPS         float64
	Account        string

	Queries []entities.Query
	Policy  repo.Policy

	FetchCronTab  string
	HealthCronTab string
	ProbePort     int

	TelegramBotToken string
}

// Daemon reports whether the process keeps running on a schedule.
func (config Config) Daemon() bool {
	return config.FetchCronTab != ""
}

// LoadConfig reads the viper state and fails on the first missing or
// inconsistent setting.
func LoadConfig() (Config, error) {
	config := Config{
		DatabaseURL:      strings.TrimSpace(viper.GetString(constants.DatabaseURL)),
		Source:           strings.ToLower(strings.TrimSpace(viper.GetString(constants.TwitterSource))),
		BearerToken:      viper.GetString(constants.TwitterBearerToken),
		ConsumerKey:      viper.GetString(constants.TwitterConsumerKey),
		ConsumerSecret:   viper.GetString(constants.TwitterConsumerSecret),
		AuthToken:        viper.GetString(constants.TwitterAuthToken),
		CSRFToken:        viper.GetString(constants.TwitterCSRFToken),
		APIURL:           viper.GetString(constants.TwitterAPIURL),
		APIRPS:           viper.GetFloat64(constants.TwitterAPIRPS),
		Account:          viper.GetString(constants.TwitterAccount),
		FetchCronTab:     strings.TrimSpace(viper.GetString(constants.FetchCronTab)),
		HealthCronTab:    strings.TrimSpace(viper.GetString(constants.HealthCronTab)),
		ProbePort:        viper.GetInt(constants.ProbePort),
		TelegramBotToken: viper.GetString(constants.TelegramBotToken),
	}

	if config.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}

	switch config.Source {
	case constants.SourceAPI:
		if config.BearerToken == "" && (config.ConsumerKey == "" || config.ConsumerSecret == "") {
			return Config{}, ErrMissingAPICredentials
		}
	case constants.SourceScraper:
		if config.AuthToken == "" || config.CSRFToken == "" {
			return Config{}, ErrMissingScraperCredentials
		}
	default:
		return Config{}, fmt.Errorf("%q: %w", config.Source, ErrUnknownSource)
	}

	policy, err := repo.ParsePolicy(viper.GetString(constants.UpsertPolicy))
	if err != nil {
		return Config{}, err
	}
	config.Policy = policy

	config.Queries = buildQueries(
		viper.GetString(constants.TrackedUsernames),
		viper.GetString(constants.TrackedKeywords),
		viper.GetInt(constants.TwitterTweetCount),
	)
	if len(config.Queries) == 0 {
		return Config{}, ErrNoQueries
	}

	return config, nil
}

// buildQueries lists handles first, then keywords, each in configured order.
func buildQueries(usernames, keywords string, limit int) []entities.Query {
	queries := make([]entities.Query, 0)
	for _, username := range splitList(usernames) {
		username = strings.TrimPrefix(username, "@")
		if username == "" {
			continue
		}
		queries = append(queries, entities.Query{Kind: entities.QueryByHandle, Value: username, Limit: limit})
	}

	for _, keyword := range splitList(keywords) {
		queries = append(queries, entities.Query{Kind: entities.QueryByKeyword, Value: keyword, Limit: limit})
	}

	return queries
}

func splitList(value string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
