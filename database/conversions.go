package database

import (
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	decimal "github.com/sdcoffey/big"
	database "gitlab.com/aoterocom/AOOptionsTicket/database/models"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"math/big"
)

func toDBQuote(quote models.Quote) database.Quote {
	dbQuote := database.Quote{
		QuoteID:       quote.ID,
		Instrument:    quote.Instrument.Hex(),
		Side:          string(quote.Side),
		Amount:        intString(quote.Amount),
		SumInput:      intString(quote.Plan.SumInput),
		SumOutput:     intString(quote.Plan.SumOutput),
		ProtocolFee:   decimalString(quote.Plan.EstimatedProtocolFeeUSD),
		PlanError:     string(quote.Plan.Error),
		ImpactPercent: decimalString(quote.Impact.Percent),
		ImpactError:   string(quote.Impact.Error),
		GasPrice:      decimalString(quote.GasPrice),
		NativePrice:   decimalString(quote.NativePrice),
		BookVersion:   quote.BookVersion,
		QuotedAt:      quote.CreatedAt,
	}

	for i, order := range quote.Plan.OrdersToFill {
		var fillAmount *big.Int
		if i < len(quote.Plan.Amounts) {
			fillAmount = quote.Plan.Amounts[i]
		}
		dbQuote.Orders = append(dbQuote.Orders, database.FillOrder{
			Position:    i,
			Maker:       order.Maker.Hex(),
			MakerToken:  order.MakerToken.Hex(),
			TakerToken:  order.TakerToken.Hex(),
			MakerAmount: intString(order.MakerAmount),
			TakerAmount: intString(order.TakerAmount),
			FillAmount:  intString(fillAmount),
			Salt:        intString(order.Salt),
			Expiry:      order.Expiry,
		})
	}
	return dbQuote
}

func fromDBQuote(dbQuote database.Quote) (models.Quote, error) {
	var err error
	quote := models.Quote{
		ID:          dbQuote.QuoteID,
		Instrument:  common.HexToAddress(dbQuote.Instrument),
		Side:        models.OrderSide(dbQuote.Side),
		GasPrice:    decimal.NewFromString(dbQuote.GasPrice),
		NativePrice: decimal.NewFromString(dbQuote.NativePrice),
		BookVersion: dbQuote.BookVersion,
		CreatedAt:   dbQuote.QuotedAt,
		Impact: models.MarketImpact{
			Percent: decimal.NewFromString(dbQuote.ImpactPercent),
			Error:   models.TradeError(dbQuote.ImpactError),
		},
	}

	plan := models.NewEmptyFillPlan(models.TradeError(dbQuote.PlanError))
	plan.EstimatedProtocolFeeUSD = decimal.NewFromString(dbQuote.ProtocolFee)
	if quote.Amount, err = parseInt(dbQuote.Amount); err != nil {
		return models.Quote{}, err
	}
	if plan.SumInput, err = parseInt(dbQuote.SumInput); err != nil {
		return models.Quote{}, err
	}
	if plan.SumOutput, err = parseInt(dbQuote.SumOutput); err != nil {
		return models.Quote{}, err
	}

	for _, dbOrder := range dbQuote.Orders {
		order := models.Order{
			Maker:      common.HexToAddress(dbOrder.Maker),
			Taker:      models.NullAddress,
			MakerToken: common.HexToAddress(dbOrder.MakerToken),
			TakerToken: common.HexToAddress(dbOrder.TakerToken),
			Expiry:     dbOrder.Expiry,
		}
		if order.MakerAmount, err = parseInt(dbOrder.MakerAmount); err != nil {
			return models.Quote{}, err
		}
		if order.TakerAmount, err = parseInt(dbOrder.TakerAmount); err != nil {
			return models.Quote{}, err
		}
		if order.Salt, err = parseInt(dbOrder.Salt); err != nil {
			return models.Quote{}, err
		}
		fillAmount, err := parseInt(dbOrder.FillAmount)
		if err != nil {
			return models.Quote{}, err
		}
		plan.OrdersToFill = append(plan.OrdersToFill, order)
		plan.Amounts = append(plan.Amounts, fillAmount)
	}

	quote.Plan = plan
	return quote, nil
}

func parseInt(value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("error: invalid stored amount %q", value)
	}
	return amount, nil
}

func intString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

func decimalString(d decimal.Decimal) string {
	if d == (decimal.Decimal{}) {
		return "0"
	}
	return d.String()
}
