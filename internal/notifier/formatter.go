package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"PoolSentinel/internal/model"
)

// FormatRSIAlert formats an oversold alert into a Telegram message.
func FormatRSIAlert(alert model.Alert) string {
	var b strings.Builder
	b.WriteString("📉 RSI Alert (REAL 1m)\n")
	b.WriteString(fmt.Sprintf("Chain: %s\n", alert.Pair.ChainLabel()))
	b.WriteString(fmt.Sprintf("RSI: %.2f\n", alert.RSI))
	b.WriteString(fmt.Sprintf("🔗 %s", alert.Pair.Link()))
	return b.String()
}

// FormatDigest summarises the latest reading of every pair.
func FormatDigest(readings []model.Reading, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 RSI digest | %s\n\n", at.Format("2006-01-02 15:04")))
	if len(readings) == 0 {
		b.WriteString("No readings yet.")
		return b.String()
	}

	for _, r := range readings {
		marker := ""
		if r.Oversold {
			marker = " 📉"
		}
		b.WriteString(fmt.Sprintf("%s RSI: %.2f%s\n", r.Pair.Short(), r.RSI, marker))
	}
	oversold := lo.CountBy(readings, func(r model.Reading) bool { return r.Oversold })
	b.WriteString(fmt.Sprintf("\nPairs: %d | Oversold: %d", len(readings), oversold))
	return b.String()
}
