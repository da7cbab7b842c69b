package telegram

import (
	"fmt"
	"strings"
	"time"

	"tweet-collector/models/constants"
	"tweet-collector/models/entities"
	"tweet-collector/utils/dates"

	"github.com/dustin/go-humanize"
)

func formatRunReport(report entities.RunReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📢 *%s run report*\n\n", constants.ExternalName))
	sb.WriteString(fmt.Sprintf("🕒 Finished: `%s`\n", dates.ToISO8601(report.FinishedAt)))
	sb.WriteString(fmt.Sprintf("⏱ Duration: `%s`\n\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)))

	sb.WriteString(fmt.Sprintf("🐦 Collected: `%s`\n", humanize.Comma(int64(report.Collected))))
	sb.WriteString(fmt.Sprintf("🆕 Inserted: `%s`\n", humanize.Comma(int64(report.Saved.Inserted))))
	sb.WriteString(fmt.Sprintf("♻️ Updated: `%s`\n", humanize.Comma(int64(report.Saved.Updated))))
	if report.Saved.Ignored > 0 {
		sb.WriteString(fmt.Sprintf("⏭ Ignored: `%s`\n", humanize.Comma(int64(report.Saved.Ignored))))
	}
	if report.Saved.Failed > 0 {
		sb.WriteString(fmt.Sprintf("❌ Failed: `%s`\n", humanize.Comma(int64(report.Saved.Failed))))
	}

	if failed := report.FailedQueries(); failed > 0 {
		sb.WriteString(fmt.Sprintf("\n⚠️ *%d of %d queries failed*\n", failed, len(report.Outcomes)))
		for _, outcome := range report.Outcomes {
			if outcome.Err != nil {
				sb.WriteString(fmt.Sprintf("🔸 `%s`\n", strings.ReplaceAll(outcome.Query.String(), "`", "'")))
			}
		}
	}

	return sb.String()
}

func getMessageFromMessageType(messageType MessageType) string {
	switch messageType {
	case MessageTypeWelcome:
		msg := fmt.Sprintf("👋 Hi! I'm *%s* 🤖\n\n", constants.ExternalName)
		msg += "I collect tweets from tracked accounts and keywords and store them for analysis.\n\n"
		msg += "✅ Type `/subscribe` to receive a report after every fetch cycle.\n"
		msg += "❌ Type `/unsubscribe` at any time to stop.\n\n"
		msg += "💬 Type `/help` for a list of commands."
		return msg

	case MessageTypeHelp:
		msg := fmt.Sprintf("🤖 *%s* help 📢\n\n", constants.ExternalName)
		msg += "📝 *Commands available:*\n"
		msg += "✅ `/subscribe` – Receive a report after every fetch cycle.\n"
		msg += "❌ `/unsubscribe` – Stop receiving reports.\n"
		msg += "📊 `/report` – Get the latest run report.\n"
		msg += "💡 `/help` – Show this help message.\n"
		return msg

	case MessageTypeNoReport:
		return "📭 *No report yet*\n\nNo fetch cycle has completed since I started. Try again later!"

	case MessageTypeSubscribe:
		msg := "🎉 *Subscription Confirmed!* ✅\n\n"
		msg += "I'll send you a report after every fetch cycle. Type `/unsubscribe` to stop.\n"
		return msg

	case MessageTypeUnsubscribe:
		msg := "👋 *You've Unsubscribed* ❌\n\n"
		msg += "Type `/subscribe` anytime to receive reports again! 🚀\n"
		return msg

	default:
		msg := "😔 *Oops! Something Went Wrong*\n\n"
		msg += "I couldn't complete your request. Wait a moment and try again. 🤖"
		return msg
	}
}
