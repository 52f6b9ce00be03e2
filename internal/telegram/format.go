package telegram

import (
	"fmt"
	"strings"

	"github.com/Alias1177/TradeVault/internal/model"
)

// MaxMessageLength is Telegram's limit for one text message.
const MaxMessageLength = 4096

func formatBoard(market model.Market, listings []model.Listing, live bool) string {
	var b strings.Builder
	flag, name := "🇺🇸", "US"
	if market == model.MarketIndia {
		flag, name = "🇮🇳", "India"
	}
	mode := "simulated"
	if live {
		mode = "live + simulated"
	}
	fmt.Fprintf(&b, "%s %s screener (%s)\n", flag, name, mode)

	if len(listings) == 0 {
		b.WriteString("\nNo stocks match. Try a lower MIN_SCORE or another cap class.")
		return b.String()
	}
	for i, l := range listings {
		if i == boardRows {
			fmt.Fprintf(&b, "\n…and %d more", len(listings)-boardRows)
			break
		}
		a := l.Asset
		liveTag := ""
		if a.Live {
			liveTag = " ⚡"
		}
		fmt.Fprintf(&b, "\n%s%s · %s%.2f (%+.2f%%) RSI %s · Score %d\n", l.Symbol, liveTag, l.Currency, a.LastPrice, a.DayChangePercent, a.Snapshot.RSI, a.Score)
		if labels := a.Labels(); len(labels) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(labels, ", "))
		}
	}
	return b.String()
}

func formatNotes(notes []model.Note) string {
	if len(notes) == 0 {
		return "📚 Vault is empty."
	}
	var b strings.Builder
	b.WriteString("📚 Vault")
	for _, n := range notes {
		fmt.Fprintf(&b, "\n\n%s [%s] %s\n%s\nid: %s", n.Date, n.Category, n.Title, firstLine(n.Content), n.ID)
	}
	return b.String()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// SplitMessage cuts text into chunks of at most limit bytes, breaking at
// line ends where possible and never inside a UTF-8 sequence.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !isRuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
