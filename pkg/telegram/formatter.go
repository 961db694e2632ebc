package telegram

import (
	"fmt"
	"math"
	"strings"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/pkg/utils"

	"github.com/Rhymond/go-money"
)

var (
	vndFormatter   = money.NewFormatter(0, ".", ",", "VNĐ", "1 $")
	plainFormatter = money.NewFormatter(2, ".", ",", "", "1")
)

// FormatMoney renders an amount in the market's currency, e.g. "85,000 VNĐ" or "$1,234.56".
func FormatMoney(amount float64, market entity.Market) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if market == entity.MarketForeign {
		cur := money.GetCurrency(money.USD)
		return sign + cur.Formatter().Format(int64(math.Round(amount*100)))
	}
	return sign + vndFormatter.Format(int64(math.Round(amount)))
}

// FormatAmount renders a number with thousands separators and two decimals.
func FormatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + plainFormatter.Format(int64(math.Round(amount*100)))
}

// FormatPercent always carries a sign, e.g. "+5.88%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// PnLEmoji highlights moves beyond the notable threshold.
func PnLEmoji(percent float64) string {
	switch dto.Classify(percent) {
	case dto.NotableGain:
		return "🎉"
	case dto.NotableLoss:
		return "⚠️"
	default:
		return "📊"
	}
}

// FormatTradeResult formats a completed buy or sell.
func FormatTradeResult(res *dto.TradeResult) string {
	var b strings.Builder
	trx := res.Transaction

	if trx.Type == entity.TransactionTypeBuy {
		b.WriteString("✅ *Buy recorded*\n\n")
	} else {
		b.WriteString("✅ *Sell recorded*\n\n")
	}
	b.WriteString(fmt.Sprintf("📈 *Ticker:* `%s` (%s)\n", trx.Ticker, trx.Market))
	b.WriteString(fmt.Sprintf("🔢 *Quantity:* %d\n", trx.Quantity))
	b.WriteString(fmt.Sprintf("💵 *Price:* %s\n", FormatMoney(trx.Price, trx.Market)))
	b.WriteString(fmt.Sprintf("💰 *Total:* %s\n", FormatMoney(trx.Total(), trx.Market)))

	if res.Realized != nil {
		r := res.Realized
		b.WriteString(fmt.Sprintf("\n*Realized P&L:* %s %s (%s)\n",
			PnLEmoji(r.PnLPercent), FormatMoney(r.PnL, trx.Market), FormatPercent(r.PnLPercent)))
		b.WriteString(fmt.Sprintf("Avg buy price: %s\n", FormatMoney(r.BuyPrice, trx.Market)))
	}

	switch {
	case res.PositionClosed:
		b.WriteString("\n📭 Position closed.\n")
	case res.Position != nil:
		p := res.Position
		b.WriteString(fmt.Sprintf("\n*Position:* %d @ %s\n", p.Quantity, FormatMoney(p.AvgBuyPrice, p.Market)))
	}

	if trx.Notes != "" {
		b.WriteString(fmt.Sprintf("📝 %s\n", trx.Notes))
	}
	return b.String()
}

// FormatPortfolioReport formats open positions with unrealized P&L.
func FormatPortfolioReport(report *dto.PortfolioReport) string {
	if len(report.Rows) == 0 {
		return "📭 The portfolio is empty."
	}

	var b strings.Builder
	b.WriteString("💼 *Portfolio*\n")
	b.WriteString(fmt.Sprintf("_As of %s_\n\n", utils.PrettyDate(report.AsOf)))

	for _, row := range report.Rows {
		b.WriteString(fmt.Sprintf("*%s* (%s) | %d @ %s\n", row.Ticker, row.Market, row.Quantity, FormatMoney(row.AvgBuyPrice, row.Market)))
		if row.Pending {
			b.WriteString("   ⏳ Price pending\n")
			continue
		}
		b.WriteString(fmt.Sprintf("   Now %s | %s %s (%s)\n",
			FormatMoney(row.CurrentPrice, row.Market),
			PnLEmoji(row.UnrealizedPnLPercent),
			FormatMoney(row.UnrealizedPnL, row.Market),
			FormatPercent(row.UnrealizedPnLPercent)))
	}

	for _, market := range []entity.Market{entity.MarketDomestic, entity.MarketForeign} {
		t, ok := report.ByMarket[market]
		if !ok || t.PricedCount == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n*Total %s:*\n", market))
		b.WriteString(fmt.Sprintf("- Invested: %s\n", FormatMoney(t.Invested, market)))
		b.WriteString(fmt.Sprintf("- Current value: %s\n", FormatMoney(t.CurrentValue, market)))
		b.WriteString(fmt.Sprintf("- P&L: %s %s (%s)\n", PnLEmoji(t.PnLPercent), FormatMoney(t.PnL, market), FormatPercent(t.PnLPercent)))
	}

	if report.Totals.PendingCount > 0 {
		b.WriteString(fmt.Sprintf("\n⏳ %d position(s) excluded from totals, price pending.\n", report.Totals.PendingCount))
	}
	return b.String()
}

// FormatHistory formats transactions newest first.
func FormatHistory(trxs []entity.Transaction, ticker string) string {
	if len(trxs) == 0 {
		if ticker != "" {
			return fmt.Sprintf("📭 No transactions for %s.", ticker)
		}
		return "📭 No transactions yet."
	}

	var b strings.Builder
	if ticker != "" {
		b.WriteString(fmt.Sprintf("📜 *Transaction history - %s*\n\n", ticker))
	} else {
		b.WriteString("📜 *Transaction history*\n\n")
	}

	for _, trx := range trxs {
		icon := "🟢"
		if trx.Type == entity.TransactionTypeSell {
			icon = "🔴"
		}
		b.WriteString(fmt.Sprintf("%s %s %s `%s` %d @ %s",
			icon, trx.TradeDate, trx.TradeTime, trx.Ticker, trx.Quantity, FormatMoney(trx.Price, trx.Market)))
		if trx.Notes != "" {
			b.WriteString(" - " + utils.Truncate(trx.Notes, 20))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatPerformance formats realized performance with a win rate assessment.
func FormatPerformance(s *dto.PerformanceSummary) string {
	if s.TotalTrades == 0 {
		if s.Ticker != "" {
			return fmt.Sprintf("📭 No closed trades for %s yet.", s.Ticker)
		}
		return "📭 No closed trades yet."
	}

	var b strings.Builder
	if s.Ticker != "" {
		b.WriteString(fmt.Sprintf("📈 *Performance - %s*\n\n", s.Ticker))
	} else {
		b.WriteString("📈 *Performance*\n\n")
	}
	b.WriteString(fmt.Sprintf("- Trades: %d\n", s.TotalTrades))
	b.WriteString(fmt.Sprintf("- Wins: 🟢 %d (%.1f%%)\n", s.WinningTrades, s.WinRate))
	b.WriteString(fmt.Sprintf("- Losses: 🔴 %d (%.1f%%)\n", s.LosingTrades, s.LoseRate()))
	b.WriteString(fmt.Sprintf("- Total P&L: %s\n", FormatAmount(s.TotalPnL)))
	b.WriteString(fmt.Sprintf("\n*Assessment:* %s", Assessment(s.WinRate)))
	return b.String()
}

// Assessment grades a win rate.
func Assessment(winRate float64) string {
	switch {
	case winRate >= 60:
		return "🎉 Excellent, high win rate"
	case winRate >= 50:
		return "👍 Good, steady win rate"
	case winRate >= 40:
		return "⚠️ Strategy needs work"
	default:
		return "🚨 Reconsider the approach"
	}
}

// FormatAlertTriggered formats a fired price alert.
func FormatAlertTriggered(alert entity.PriceAlert, price float64) string {
	var b strings.Builder
	b.WriteString("🔔 *Price alert*\n\n")
	b.WriteString(fmt.Sprintf("📈 `%s` is %s %s\n", alert.Ticker, conditionText(alert.Condition), FormatMoney(alert.TargetPrice, alert.Market)))
	b.WriteString(fmt.Sprintf("💵 Current price: %s\n", FormatMoney(price, alert.Market)))
	return b.String()
}

// FormatAlerts lists alerts.
func FormatAlerts(alerts []entity.PriceAlert) string {
	if len(alerts) == 0 {
		return "📭 No price alerts."
	}
	var b strings.Builder
	b.WriteString("🔔 *Price alerts*\n\n")
	for _, a := range alerts {
		state := "active"
		if !a.Active {
			state = "triggered"
		}
		b.WriteString(fmt.Sprintf("#%d `%s` %s %s (%s)\n", a.ID, a.Ticker, conditionText(a.Condition), FormatMoney(a.TargetPrice, a.Market), state))
	}
	return b.String()
}

func conditionText(c entity.AlertCondition) string {
	if c == entity.AlertConditionBelow {
		return "at or below"
	}
	return "at or above"
}

// FormatPrice formats a price lookup.
func FormatPrice(p *dto.PriceResponse) string {
	if !p.Available {
		return fmt.Sprintf("⏳ No price available for `%s` right now.", p.Ticker)
	}
	return fmt.Sprintf("💵 `%s` (%s): %s", p.Ticker, p.Market, FormatMoney(p.Price, p.Market))
}

// FormatReset confirms a portfolio reset.
func FormatReset() string {
	return "🗑️ *Portfolio reset*\n\nAll transactions, positions, realized P&L and cached prices were deleted."
}
