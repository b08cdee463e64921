package ui

import (
	"context"
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	decimal "github.com/sdcoffey/big"
	"gitlab.com/aoterocom/AOOptionsTicket/helpers"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"gitlab.com/aoterocom/AOOptionsTicket/services"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"math/big"
	"time"
)

const maxAdvisories = 8

// UserInterface is the terminal trade ticket: it requotes the ticket every second and shows
// the book, the fee inputs and the current fill plan
type UserInterface struct {
	TicketService    *services.TicketService
	OrderBookService *services.OrderBookService
	MarketService    *services.MarketService
	instrument       common.Address
	side             models.OrderSide
	amount           *big.Int
	advisories       []string
}

func NewUserInterface(ticket *services.TicketService, orderBooks *services.OrderBookService, market *services.MarketService,
	instrument common.Address, side models.OrderSide, amount *big.Int) *UserInterface {
	return &UserInterface{
		TicketService:    ticket,
		OrderBookService: orderBooks,
		MarketService:    market,
		instrument:       instrument,
		side:             side,
		amount:           amount,
	}
}

func (ui *UserInterface) Run(ctx context.Context) {
	if err := termui.Init(); err != nil {
		helpers.Logger.Errorln(fmt.Sprintf("failed to initialize termui: %v", err))
		return
	}
	defer termui.Close()

	uiEvents := termui.PollEvents()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-uiEvents:
			switch e.ID {
			case "q", "<C-c>":
				helpers.Logger.Infoln("Exited by keyboard interrupt")
				return
			}
		case <-ticker.C:
			ui.UpdateUI(ctx)
		}
	}
}

func (ui *UserInterface) UpdateUI(ctx context.Context) {
	quote, err := ui.TicketService.Quote(ctx, services.QuoteRequest{Instrument: ui.instrument, Side: ui.side, Amount: ui.amount})
	if err != nil {
		helpers.Logger.Errorln("ui: " + err.Error())
		ui.addAdvisory(time.Now(), err.Error())
	} else if quote.Advisory() != models.NoError {
		ui.addAdvisory(quote.CreatedAt, string(quote.Advisory()))
	}
	latest, hasQuote := ui.TicketService.LatestQuote(ui.instrument, ui.side)
	pair := ui.OrderBookService.Pair()

	bookParagraph := widgets.NewParagraph()
	bookParagraph.BorderStyle.Fg = termui.ColorYellow
	bookParagraph.TitleStyle.Fg = termui.ColorYellow
	bookParagraph.Block.Title = "Order Book " + ui.instrument.Hex()[:10]
	bookParagraph.Text = DepthText(ui.OrderBookService.Depth(ui.instrument))
	bookParagraph.SetRect(0, 0, 50, 9)

	feesParagraph := widgets.NewParagraph()
	feesParagraph.Block.Title = "Fees"
	feesParagraph.Text = FeesText(ui.MarketService.GasPrice(), ui.MarketService.GasPriceSMA(10), ui.MarketService.NativePrice())
	feesParagraph.SetRect(50, 0, 100, 9)

	ticketParagraph := widgets.NewParagraph()
	ticketParagraph.Block.Title = "Ticket"
	if hasQuote {
		ticketParagraph.Text = QuoteText(latest, pair)
	} else {
		ticketParagraph.Text = "Waiting for the first quote"
	}
	ticketParagraph.SetRect(0, 9, 100, 18)

	advisoriesList := widgets.NewList()
	advisoriesList.Block.Title = "Advisories"
	advisoriesList.Rows = ui.advisories
	advisoriesList.SetRect(0, 18, 100, 28)
	advisoriesList.ScrollBottom()

	termui.Render(bookParagraph, feesParagraph, ticketParagraph, advisoriesList)
}

func (ui *UserInterface) addAdvisory(at time.Time, message string) {
	ui.advisories = append(ui.advisories, fmt.Sprintf("%s %s", at.Format("15:04:05"), message))
	if len(ui.advisories) > maxAdvisories {
		ui.advisories = ui.advisories[len(ui.advisories)-maxAdvisories:]
	}
}

func DepthText(depth models.MarketDepth) string {
	text := fmt.Sprintf("Lower Ask: %s (%d orders)\n", depth.LowerAskPrice.FormattedString(4), depth.Asks.OrderCount)
	text += fmt.Sprintf("[Center Price: %s](fg:blue)\n", depth.CenterPrice.FormattedString(4))
	text += fmt.Sprintf("Higher Bid: %s (%d orders)\n", depth.HigherBidPrice.FormattedString(4), depth.Bids.OrderCount)
	text += fmt.Sprintf("Spread: %s (%s%%)\n", depth.Spread.FormattedString(4), depth.SpreadPct.FormattedString(2))
	text += fmt.Sprintf("Ask Size: %s\n", depth.Asks.TotalSize.FormattedString(4))
	text += fmt.Sprintf("Bid Size: %s\n", depth.Bids.TotalSize.FormattedString(4))
	return text
}

func FeesText(gasPrice decimal.Decimal, gasSMA decimal.Decimal, nativePrice decimal.Decimal) string {
	text := fmt.Sprintf("Gas Price: %s gwei\n", gasPrice.FormattedString(1))
	text += fmt.Sprintf("Gas SMA(10): %s gwei\n", gasSMA.FormattedString(1))
	text += fmt.Sprintf("Native Price: %s\n", nativePrice.FormattedString(2))
	text += fmt.Sprintf("Fee per Order: %s\n", zeroex.ProtocolFeeInQuoteCurrency(1, gasPrice, nativePrice).FormattedString(4))
	return text
}

func QuoteText(quote models.Quote, pair zeroex.Pair) string {
	verb := "Cost"
	if quote.Side == models.SELL {
		verb = "Proceeds"
	}
	text := fmt.Sprintf("%s %s (book v%d)\n", quote.Side, zeroex.Humanize(quote.Amount, pair.BaseDecimals).FormattedString(4), quote.BookVersion)
	text += fmt.Sprintf("%s: %s\n", verb, zeroex.Humanize(quote.Total(), pair.QuoteDecimals).FormattedString(pair.QuoteDecimals))
	text += fmt.Sprintf("Orders: %d\n", quote.Plan.OrderCount())
	text += fmt.Sprintf("Protocol Fee: %s\n", quote.Plan.EstimatedProtocolFeeUSD.FormattedString(4))
	impact := fmt.Sprintf("Market Impact: %s%%", quote.Impact.Percent.FormattedString(2))
	if quote.Impact.Error == models.LargeMarketImpact {
		impact = "[" + impact + "](fg:red)"
	}
	text += impact + "\n"
	if quote.Plan.Error == models.InsufficientLiquidity {
		text += "[Insufficient liquidity](fg:red)\n"
	}
	return text
}
