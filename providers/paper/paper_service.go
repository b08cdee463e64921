package paper

import (
	"context"
	"crypto/sha256"
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	decimal "github.com/sdcoffey/big"
	"gitlab.com/aoterocom/AOOptionsTicket/collateral"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"math/big"
	"time"
)

type level struct {
	price string
	size  string
}

var (
	paperBids = []level{{"9.5", "2"}, {"9", "5"}, {"8", "10"}}
	paperAsks = []level{{"10", "1.5"}, {"10.5", "4"}, {"12", "10"}}
)

// PaperService serves a fixed book, gas price and native price so the ticket can run offline
type PaperService struct {
	quoteToken  common.Address
	pair        zeroex.Pair
	GasPrice    decimal.Decimal
	NativePrice decimal.Decimal
}

func NewPaperService(quoteToken common.Address, pair zeroex.Pair) *PaperService {
	return &PaperService{
		quoteToken:  quoteToken,
		pair:        pair,
		GasPrice:    decimal.NewFromInt(50),
		NativePrice: decimal.NewFromInt(2000),
	}
}

func (paperService *PaperService) GetOrderBook(ctx context.Context, instrument common.Address) (models.OrderBook, error) {
	book := models.NewOrderBook(instrument)
	now := time.Now()

	for i, l := range paperBids {
		size, price, err := paperService.parse(l)
		if err != nil {
			return models.OrderBook{}, err
		}
		entry := paperService.entry(paperService.quoteToken, instrument, notional(size, price, paperService.pair), size, int64(i), now)
		book.Bids = append(book.Bids, entry)
	}
	for i, l := range paperAsks {
		size, price, err := paperService.parse(l)
		if err != nil {
			return models.OrderBook{}, err
		}
		entry := paperService.entry(instrument, paperService.quoteToken, size, notional(size, price, paperService.pair), int64(len(paperBids)+i), now)
		book.Asks = append(book.Asks, entry)
	}

	book.FetchedAt = now
	return book, nil
}

func (paperService *PaperService) GetGasPrice(ctx context.Context) (decimal.Decimal, error) {
	return paperService.GasPrice, nil
}

func (paperService *PaperService) GetNativePrice(ctx context.Context) (decimal.Decimal, error) {
	return paperService.NativePrice, nil
}

// NakedMarginRequired asks for full collateral, as a calculator without partial collateralization would
func (paperService *PaperService) NakedMarginRequired(ctx context.Context, otoken models.OToken, shortAmount *big.Int,
	underlyingPrice *big.Int, shortExpiry int64, collateralDecimals int) (*big.Int, error) {
	otoken.Collateral.Decimals = collateralDecimals
	return collateral.SimpleCollateralRequired(otoken, shortAmount)
}

func (paperService *PaperService) parse(l level) (*big.Int, *big.Int, error) {
	size, err := zeroex.ToBaseUnits(l.size, paperService.pair.BaseDecimals)
	if err != nil {
		return nil, nil, err
	}
	price, err := zeroex.ToBaseUnits(l.price, paperService.pair.QuoteDecimals)
	if err != nil {
		return nil, nil, err
	}
	return size, price, nil
}

func (paperService *PaperService) entry(makerToken common.Address, takerToken common.Address, makerAmount *big.Int,
	takerAmount *big.Int, salt int64, now time.Time) models.OrderBookEntry {
	order := models.Order{
		Maker:               common.HexToAddress("0x000000000000000000000000000000000000dead"),
		Taker:               models.NullAddress,
		MakerToken:          makerToken,
		TakerToken:          takerToken,
		MakerAmount:         makerAmount,
		TakerAmount:         takerAmount,
		TakerTokenFeeAmount: new(big.Int),
		Salt:                big.NewInt(salt),
		Expiry:              now.Add(24 * time.Hour).Unix(),
	}
	return models.OrderBookEntry{
		Order: order,
		MetaData: models.OrderMetaData{
			OrderHash:                    sha256.Sum256([]byte(fmt.Sprintf("%s%s%d", makerToken.Hex(), takerToken.Hex(), salt))),
			RemainingFillableTakerAmount: new(big.Int).Set(takerAmount),
			CreatedAt:                    now,
		},
	}
}

// notional is size × price in quote base units
func notional(size *big.Int, price *big.Int, pair zeroex.Pair) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(pair.BaseDecimals)), nil)
	return zeroex.MulDivFloor(size, price, scale)
}
