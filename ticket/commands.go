package ticket

import (
	"context"
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"
	"gitlab.com/aoterocom/AOOptionsTicket/api"
	"gitlab.com/aoterocom/AOOptionsTicket/collateral"
	"gitlab.com/aoterocom/AOOptionsTicket/helpers"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"gitlab.com/aoterocom/AOOptionsTicket/services"
	"gitlab.com/aoterocom/AOOptionsTicket/ui"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"io"
	"math/big"
	"os"
	"strings"
)

type Ticket struct {
	cfg helpers.Config
	out io.Writer
}

func NewTicket(cfg helpers.Config) *Ticket {
	return &Ticket{cfg: cfg, out: os.Stdout}
}

func (tk *Ticket) Commands() []*cli.Command {
	paperFlag := &cli.BoolFlag{Name: "paper", Usage: "use the fixed offline order book and prices", EnvVars: []string{"PAPER"}}
	instrumentFlag := &cli.StringFlag{Name: "instrument", Aliases: []string{"i"}, Usage: "oToken address", Required: true}
	sideFlag := &cli.StringFlag{Name: "side", Aliases: []string{"s"}, Value: string(models.BUY), Usage: "BUY or SELL"}
	amountFlag := &cli.StringFlag{Name: "amount", Aliases: []string{"a"}, Usage: "oTokens to trade", Required: true}

	return []*cli.Command{
		{
			Name:   "quote",
			Usage:  "price one ticket against the current order book",
			Flags:  []cli.Flag{paperFlag, instrumentFlag, sideFlag, amountFlag},
			Action: tk.Quote,
		},
		{
			Name:   "watch",
			Usage:  "open the terminal trade ticket",
			Flags:  []cli.Flag{paperFlag, instrumentFlag, sideFlag, amountFlag},
			Action: tk.Watch,
		},
		{
			Name:  "serve",
			Usage: "serve the JSON API",
			Flags: []cli.Flag{
				paperFlag,
				&cli.StringSliceFlag{Name: "instrument", Aliases: []string{"i"}, Usage: "oToken addresses to keep fresh"},
				&cli.StringFlag{Name: "address", Value: tk.cfg.APIAddress, EnvVars: []string{"apiAddress"}},
			},
			Action: tk.Serve,
		},
		{
			Name:  "collateral",
			Usage: "size the collateral of a short or a spread",
			Flags: []cli.Flag{
				paperFlag,
				&cli.StringFlag{Name: "strike", Usage: "strike price of the short oToken", Required: true},
				&cli.BoolFlag{Name: "put", Usage: "the oTokens are puts"},
				&cli.StringFlag{Name: "size", Usage: "oTokens to short", Required: true},
				&cli.IntFlag{Name: "collateral-decimals", Value: -1, Usage: "defaults to the quote token for puts and 18 for calls"},
				&cli.StringFlag{Name: "long-strike", Usage: "strike price of the long oToken of a spread"},
				&cli.StringFlag{Name: "underlying-price", Usage: "ask the margin calculator for a partially collateralized short"},
				&cli.Int64Flag{Name: "expiry", Usage: "short oToken expiry, unix seconds"},
			},
			Action: tk.Collateral,
		},
		{
			Name:  "history",
			Usage: "list recorded quotes",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "limit", Value: 20},
				&cli.StringFlag{Name: "csv", Usage: "write the quotes to this file instead of stdout"},
			},
			Action: tk.History,
		},
	}
}

func (tk *Ticket) Quote(c *cli.Context) error {
	s, err := newStack(tk.cfg, c.Bool("paper"))
	if err != nil {
		return err
	}
	defer s.close()

	request, err := tk.quoteRequest(c)
	if err != nil {
		return err
	}
	quote, err := s.ticket.Quote(c.Context, request)
	if err != nil {
		return err
	}
	return WriteQuote(tk.out, quote, s.pair)
}

func (tk *Ticket) Watch(c *cli.Context) error {
	s, err := newStack(tk.cfg, c.Bool("paper"))
	if err != nil {
		return err
	}
	defer s.close()

	request, err := tk.quoteRequest(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	s.orderBooks.StartMonitor(ctx, request.Instrument, tk.cfg.OrderBookInterval)
	s.market.StartMonitor(ctx, tk.cfg.GasInterval, tk.cfg.PriceInterval)

	ui.NewUserInterface(s.ticket, s.orderBooks, s.market, request.Instrument, request.Side, request.Amount).Run(ctx)
	return nil
}

func (tk *Ticket) Serve(c *cli.Context) error {
	s, err := newStack(tk.cfg, c.Bool("paper"))
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	for _, raw := range c.StringSlice("instrument") {
		instrument, err := parseInstrument(raw)
		if err != nil {
			return err
		}
		s.orderBooks.StartMonitor(ctx, instrument, tk.cfg.OrderBookInterval)
	}
	s.market.StartMonitor(ctx, tk.cfg.GasInterval, tk.cfg.PriceInterval)

	return api.NewServer(s.ticket, s.orderBooks).Start(c.String("address"))
}

func (tk *Ticket) Collateral(c *cli.Context) error {
	s, err := newStack(tk.cfg, c.Bool("paper"))
	if err != nil {
		return err
	}
	defer s.close()

	isPut := c.Bool("put")
	decimals := c.Int("collateral-decimals")
	if decimals < 0 {
		decimals = 18
		if isPut {
			decimals = tk.cfg.QuoteDecimals
		}
	}
	short, err := newOToken(c.String("strike"), isPut, decimals)
	if err != nil {
		return err
	}
	size, err := zeroex.ToBaseUnits(c.String("size"), models.OTokenDecimals)
	if err != nil {
		return err
	}

	var amount *big.Int
	switch {
	case c.String("long-strike") != "":
		long, err := newOToken(c.String("long-strike"), isPut, decimals)
		if err != nil {
			return err
		}
		amount, err = collateral.SpreadCollateralRequired(long, short, size)
		if err != nil {
			return err
		}
	case c.String("underlying-price") != "":
		underlyingPrice, err := zeroex.ToBaseUnits(c.String("underlying-price"), models.OTokenDecimals)
		if err != nil {
			return err
		}
		calculator, err := s.marginCalculator(c.Context, c.Bool("paper"))
		if err != nil {
			return err
		}
		amount, err = calculator.NakedMarginRequired(c.Context, short, size, underlyingPrice, c.Int64("expiry"), decimals)
		if err != nil {
			return err
		}
	default:
		amount, err = collateral.SimpleCollateralRequired(short, size)
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(tk.out, "Collateral required: %s (%s base units)\n",
		zeroex.Humanize(amount, decimals).FormattedString(decimals), amount.String())
	return err
}

func (tk *Ticket) History(c *cli.Context) error {
	s, err := newStack(tk.cfg, false)
	if err != nil {
		return err
	}
	defer s.close()

	db, err := s.database()
	if err != nil {
		return err
	}
	quotes, err := db.RecentQuotes(c.Int("limit"))
	if err != nil {
		return err
	}

	if path := c.String("csv"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := WriteQuotesCSV(f, quotes); err != nil {
			return err
		}
		helpers.Logger.Infoln(fmt.Sprintf("%d quotes written to %s", len(quotes), path))
		return nil
	}
	return WriteQuotesCSV(tk.out, quotes)
}

func (tk *Ticket) quoteRequest(c *cli.Context) (services.QuoteRequest, error) {
	instrument, err := parseInstrument(c.String("instrument"))
	if err != nil {
		return services.QuoteRequest{}, err
	}
	amount, err := zeroex.ToBaseUnits(c.String("amount"), tk.cfg.BaseDecimals)
	if err != nil {
		return services.QuoteRequest{}, err
	}
	return services.QuoteRequest{
		Instrument: instrument,
		Side:       models.OrderSide(strings.ToUpper(c.String("side"))),
		Amount:     amount,
	}, nil
}

func parseInstrument(raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("error: %q is not an address", raw)
	}
	return common.HexToAddress(raw), nil
}

func newOToken(strike string, isPut bool, collateralDecimals int) (models.OToken, error) {
	strikePrice, err := zeroex.ToBaseUnits(strike, models.OTokenDecimals)
	if err != nil {
		return models.OToken{}, err
	}
	return models.OToken{
		StrikePrice: strikePrice,
		IsPut:       isPut,
		Collateral:  models.Token{Decimals: collateralDecimals},
	}, nil
}

var plainText = strings.NewReplacer("[", "", "](fg:red)", "", "](fg:blue)", "")

// WriteQuote prints a quote the way the ticket shows it
func WriteQuote(out io.Writer, quote models.Quote, pair zeroex.Pair) error {
	_, err := fmt.Fprintf(out, "Quote %s\n%s", quote.ID, plainText.Replace(ui.QuoteText(quote, pair)))
	return err
}

func WriteQuotesCSV(out io.Writer, quotes []models.Quote) error {
	summaries := make([]models.QuoteSummary, 0, len(quotes))
	for _, quote := range quotes {
		summaries = append(summaries, quote.Summary())
	}
	return gocsv.Marshal(&summaries, out)
}
