package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogTwitterName   = "twitterName"
	LogTwitterID     = "twitterID"
	LogTweetID       = "tweetID"
	LogTweetNumber   = "tweetNumber"
	LogQuery         = "query"
	LogQueryKind     = "queryKind"
	LogInserted      = "inserted"
	LogUpdated       = "updated"
	LogIgnored       = "ignored"
	LogFailed        = "failed"
	LogDuration      = "duration"
	LogDialect       = "dialect"
	LogSource        = "source"
	LogChatID        = "chatID"
	LogUsername      = "username"
	LogCommand       = "cmd"
	LogProbeAddr     = "probeAddr"
	LogJob           = "job"
	LogLevelFallback = zerolog.InfoLevel
)
