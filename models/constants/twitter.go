package constants

const (
	ExternalName = "Tweet Collector"
	Version      = "1.0.0"

	SourceAPI     = "api"
	SourceScraper = "scraper"

	// Prefix of the placeholder username used when no author is resolvable.
	UnknownUserPrefix = "user_"
)
