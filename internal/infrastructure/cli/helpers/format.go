package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/doeshing/modelscout/internal/domain"
)

// FormatUSD renders an amount with a fixed number of decimals, e.g. $0.000152.
func FormatUSD(amount float64, places int32) string {
	d := decimal.NewFromFloat(amount)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(places)
	}
	return "$" + d.StringFixed(places)
}

// FormatMoney renders larger sums with thousands separators, e.g. $1,234.50.
func FormatMoney(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	f, _ := d.Abs().Float64()
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", f)
}

// FormatPercent renders a value already expressed in percent.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatSignedPercent renders a change with an explicit sign.
func FormatSignedPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// FormatFraction renders a 0..1 fraction as a whole percentage.
func FormatFraction(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// FormatLatency renders milliseconds.
func FormatLatency(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.1fs", ms/1000)
	}
	return fmt.Sprintf("%.0fms", ms)
}

// FormatHistoryDate prefers a relative time and falls back to the raw string.
func FormatHistoryDate(entry domain.HistoryEntry, now time.Time) string {
	t, ok := entry.ParsedDate()
	if !ok {
		return entry.Date
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// ModelLabel appends the knowledge cutoff to a model name when it is known.
func ModelLabel(model string) string {
	cutoff := domain.KnowledgeCutoff(model)
	if cutoff == "Unknown" {
		return model
	}
	return fmt.Sprintf("%s (knowledge: %s)", model, cutoff)
}

// Truncate shortens s to max runes with an ellipsis.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max || max < 2 {
		return s
	}
	return strings.TrimRight(string(r[:max-1]), " ") + "…"
}
