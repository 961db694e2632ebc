package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/internal/ledger/service"
	"golang-stock-ledger/pkg/logger"
	"golang-stock-ledger/pkg/telegram"
	"golang-stock-ledger/pkg/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `📒 *Portfolio commands*

/portfolio - holdings with current prices
/history [TICKER] [LIMIT] - recent transactions
/performance [TICKER] - realized win rate
/buy TICKER QTY PRICE [VN|US] [note]
/sell TICKER QTY PRICE [VN|US] [note]
/price TICKER [MARKET]
/alert TICKER ABOVE|BELOW PRICE [MARKET]
/alerts [TICKER]
/clearalerts [TICKER]
/reset confirm - delete everything`

// Messenger is the part of the Telegram client the bot needs.
type Messenger interface {
	Updates(timeoutSeconds int) tgbotapi.UpdatesChannel
	StopUpdates()
	SendMessageTo(chatID int64, text string) error
	ChatID() int64
}

// Bot answers portfolio commands sent to the configured chat.
type Bot struct {
	messenger      Messenger
	portfolio      service.PortfolioService
	alerts         service.AlertService
	pollTimeout    int
	commandTimeout time.Duration
	logger         *logger.Logger
	wg             sync.WaitGroup
}

// NewBot creates a new Bot.
func NewBot(messenger Messenger, portfolio service.PortfolioService, alerts service.AlertService, pollTimeout int, commandTimeout time.Duration, log *logger.Logger) *Bot {
	if commandTimeout <= 0 {
		commandTimeout = 30 * time.Second
	}
	return &Bot{
		messenger:      messenger,
		portfolio:      portfolio,
		alerts:         alerts,
		pollTimeout:    pollTimeout,
		commandTimeout: commandTimeout,
		logger:         log,
	}
}

// Start polls for updates until ctx is canceled.
func (b *Bot) Start(ctx context.Context) {
	updates := b.messenger.Updates(b.pollTimeout)
	b.logger.Info("Telegram bot started", logger.Int64Field("chat_id", b.messenger.ChatID()))

	b.wg.Add(1)
	utils.GoSafe(func() {
		defer b.wg.Done()
		for {
			select {
			case <-ctx.Done():
				b.messenger.StopUpdates()
				b.logger.Info("Telegram bot stopping")
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				b.handleUpdate(ctx, update)
			}
		}
	})
}

// Wait blocks until the polling loop has exited.
func (b *Bot) Wait() {
	b.wg.Wait()
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}
	if msg.Chat.ID != b.messenger.ChatID() {
		b.logger.Warn("Ignoring command from unknown chat", logger.Int64Field("chat_id", msg.Chat.ID))
		return
	}

	cmdCtx, cancel := context.WithTimeout(ctx, b.commandTimeout)
	defer cancel()
	reply := b.HandleCommand(cmdCtx, msg.Text)
	if err := b.messenger.SendMessageTo(msg.Chat.ID, reply); err != nil {
		b.logger.Error("Failed to send reply", logger.ErrorField(err), logger.StringField("command", msg.Command()))
	}
}

// HandleCommand runs one command line and returns the Markdown reply.
func (b *Bot) HandleCommand(ctx context.Context, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return helpText
	}
	command := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	if i := strings.Index(command, "@"); i >= 0 {
		command = command[:i]
	}
	args := fields[1:]

	var (
		reply string
		err   error
	)
	switch command {
	case "portfolio":
		reply, err = b.portfolioCmd(ctx)
	case "history":
		reply, err = b.historyCmd(ctx, args)
	case "performance":
		reply, err = b.performanceCmd(ctx, args)
	case "buy":
		reply, err = b.buyCmd(ctx, args)
	case "sell":
		reply, err = b.sellCmd(ctx, args)
	case "price":
		reply, err = b.priceCmd(ctx, args)
	case "alert":
		reply, err = b.alertCmd(ctx, args)
	case "alerts":
		reply, err = b.alertsCmd(ctx, args)
	case "clearalerts":
		reply, err = b.clearAlertsCmd(ctx, args)
	case "reset":
		reply, err = b.resetCmd(ctx, args)
	default:
		return helpText
	}
	if err != nil {
		b.logger.Debug("Command failed", logger.StringField("command", command), logger.ErrorField(err))
		return errorText(err)
	}
	return reply
}

func errorText(err error) string {
	var insufficient *service.InsufficientQuantityError
	switch {
	case errors.As(err, &insufficient):
		return fmt.Sprintf("❌ Not enough %s: holding %d, tried to sell %d.", insufficient.Ticker, insufficient.Available, insufficient.Requested)
	case errors.Is(err, service.ErrPositionNotFound):
		return "❌ You do not hold that ticker."
	case errors.Is(err, service.ErrStorageFailure):
		return "❌ Storage error, please try again."
	default:
		return "❌ " + err.Error()
	}
}

func (b *Bot) portfolioCmd(ctx context.Context) (string, error) {
	report, err := b.portfolio.ViewPortfolio(ctx)
	if err != nil {
		return "", err
	}
	return telegram.FormatPortfolioReport(report), nil
}

func (b *Bot) historyCmd(ctx context.Context, args []string) (string, error) {
	var param dto.HistoryParam
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			param.Limit = n
			continue
		}
		param.Ticker = arg
	}
	trxs, err := b.portfolio.ViewHistory(ctx, param)
	if err != nil {
		return "", err
	}
	return telegram.FormatHistory(trxs, entity.NormalizeTicker(param.Ticker)), nil
}

func (b *Bot) performanceCmd(ctx context.Context, args []string) (string, error) {
	ticker := ""
	if len(args) > 0 {
		ticker = args[0]
	}
	summary, err := b.portfolio.ViewPerformance(ctx, ticker)
	if err != nil {
		return "", err
	}
	return telegram.FormatPerformance(summary), nil
}

type tradeArgs struct {
	ticker   string
	quantity int64
	price    float64
	market   string
	note     string
}

// parseTrade reads TICKER QTY PRICE [MARKET] [note...]. MARKET must be upper
// case so a note such as "us listing" is not read as a market.
func parseTrade(args []string) (tradeArgs, error) {
	if len(args) < 3 {
		return tradeArgs{}, errors.New("usage: TICKER QTY PRICE [MARKET] [note]")
	}
	qty, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return tradeArgs{}, fmt.Errorf("invalid quantity %q", args[1])
	}
	price, err := parseNumber(args[2])
	if err != nil {
		return tradeArgs{}, fmt.Errorf("invalid price %q", args[2])
	}

	t := tradeArgs{ticker: args[0], quantity: qty, price: price}
	rest := args[3:]
	if len(rest) > 0 {
		if isMarketToken(rest[0]) {
			t.market = rest[0]
			rest = rest[1:]
		}
	}
	t.note = strings.Join(rest, " ")
	return t, nil
}

func isMarketToken(s string) bool {
	if s != strings.ToUpper(s) {
		return false
	}
	_, err := entity.ParseMarket(s)
	return err == nil
}

func parseNumber(s string) (float64, error) {
	s = strings.NewReplacer(",", "", "_", "").Replace(s)
	return strconv.ParseFloat(s, 64)
}

func (b *Bot) buyCmd(ctx context.Context, args []string) (string, error) {
	t, err := parseTrade(args)
	if err != nil {
		return "", err
	}
	res, err := b.portfolio.Buy(ctx, dto.BuyRequest{Ticker: t.ticker, Quantity: t.quantity, Price: t.price, Market: t.market, Note: t.note})
	if err != nil {
		return "", err
	}
	return telegram.FormatTradeResult(res), nil
}

func (b *Bot) sellCmd(ctx context.Context, args []string) (string, error) {
	t, err := parseTrade(args)
	if err != nil {
		return "", err
	}
	res, err := b.portfolio.Sell(ctx, dto.SellRequest{Ticker: t.ticker, Quantity: t.quantity, Price: t.price, Market: t.market, Note: t.note})
	if err != nil {
		return "", err
	}
	return telegram.FormatTradeResult(res), nil
}

func (b *Bot) priceCmd(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("usage: /price TICKER [MARKET]")
	}
	market := ""
	if len(args) > 1 {
		market = args[1]
	}
	resp, err := b.portfolio.CurrentPrice(ctx, args[0], market)
	if err != nil {
		return "", err
	}
	return telegram.FormatPrice(resp), nil
}

func (b *Bot) alertCmd(ctx context.Context, args []string) (string, error) {
	if len(args) < 3 {
		return "", errors.New("usage: /alert TICKER ABOVE|BELOW PRICE [MARKET]")
	}
	target, err := parseNumber(args[2])
	if err != nil {
		return "", fmt.Errorf("invalid price %q", args[2])
	}
	req := dto.CreateAlertRequest{Ticker: args[0], Condition: args[1], TargetPrice: target}
	if len(args) > 3 {
		req.Market = args[3]
	}
	alert, err := b.alerts.Create(ctx, req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🔔 Alert #%d set for `%s`.", alert.ID, alert.Ticker), nil
}

func (b *Bot) alertsCmd(ctx context.Context, args []string) (string, error) {
	ticker := ""
	if len(args) > 0 {
		ticker = args[0]
	}
	alerts, err := b.alerts.List(ctx, ticker, false)
	if err != nil {
		return "", err
	}
	return telegram.FormatAlerts(alerts), nil
}

func (b *Bot) clearAlertsCmd(ctx context.Context, args []string) (string, error) {
	ticker := ""
	if len(args) > 0 {
		ticker = args[0]
	}
	n, err := b.alerts.Clear(ctx, ticker)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🗑️ Deleted %d alert(s).", n), nil
}

func (b *Bot) resetCmd(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 || !strings.EqualFold(args[0], "confirm") {
		return "⚠️ This deletes every transaction, position and realized P&L row.\nSend `/reset confirm` to continue.", nil
	}
	if err := b.portfolio.ResetPortfolio(ctx); err != nil {
		return "", err
	}
	b.logger.Warn("Portfolio reset via Telegram")
	return telegram.FormatReset(), nil
}
