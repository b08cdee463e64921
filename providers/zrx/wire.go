package zrx

import (
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"math/big"
	"strconv"
	"time"
)

type orderBookResponse struct {
	Bids page `json:"bids"`
	Asks page `json:"asks"`
}

type page struct {
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	PerPage int      `json:"perPage"`
	Records []record `json:"records"`
}

type record struct {
	Order    signedOrder `json:"order"`
	MetaData metaData    `json:"metaData"`
}

type signature struct {
	SignatureType uint8  `json:"signatureType"`
	V             uint8  `json:"v"`
	R             string `json:"r"`
	S             string `json:"s"`
}

type signedOrder struct {
	Maker               string    `json:"maker"`
	Taker               string    `json:"taker"`
	MakerToken          string    `json:"makerToken"`
	TakerToken          string    `json:"takerToken"`
	MakerAmount         string    `json:"makerAmount"`
	TakerAmount         string    `json:"takerAmount"`
	TakerTokenFeeAmount string    `json:"takerTokenFeeAmount"`
	Sender              string    `json:"sender"`
	FeeRecipient        string    `json:"feeRecipient"`
	Pool                string    `json:"pool"`
	Expiry              string    `json:"expiry"`
	Salt                string    `json:"salt"`
	ChainID             int64     `json:"chainId"`
	VerifyingContract   string    `json:"verifyingContract"`
	Signature           signature `json:"signature"`
}

type metaData struct {
	OrderHash                    string `json:"orderHash"`
	RemainingFillableTakerAmount string `json:"remainingFillableTakerAmount"`
	CreatedAt                    string `json:"createdAt"`
}

func parseAmount(field string, value string) (*big.Int, error) {
	if value == "" {
		return new(big.Int), nil
	}
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("error: invalid %s %q", field, value)
	}
	return amount, nil
}

func (r record) toEntry() (models.OrderBookEntry, error) {
	var err error
	order := models.Order{
		Maker:             common.HexToAddress(r.Order.Maker),
		Taker:             common.HexToAddress(r.Order.Taker),
		MakerToken:        common.HexToAddress(r.Order.MakerToken),
		TakerToken:        common.HexToAddress(r.Order.TakerToken),
		Sender:            common.HexToAddress(r.Order.Sender),
		FeeRecipient:      common.HexToAddress(r.Order.FeeRecipient),
		Pool:              common.HexToHash(r.Order.Pool),
		ChainID:           r.Order.ChainID,
		VerifyingContract: common.HexToAddress(r.Order.VerifyingContract),
		Signature: models.Signature{
			SignatureType: r.Order.Signature.SignatureType,
			V:             r.Order.Signature.V,
			R:             common.HexToHash(r.Order.Signature.R),
			S:             common.HexToHash(r.Order.Signature.S),
		},
	}

	if order.MakerAmount, err = parseAmount("makerAmount", r.Order.MakerAmount); err != nil {
		return models.OrderBookEntry{}, err
	}
	if order.TakerAmount, err = parseAmount("takerAmount", r.Order.TakerAmount); err != nil {
		return models.OrderBookEntry{}, err
	}
	if order.TakerTokenFeeAmount, err = parseAmount("takerTokenFeeAmount", r.Order.TakerTokenFeeAmount); err != nil {
		return models.OrderBookEntry{}, err
	}
	if order.Salt, err = parseAmount("salt", r.Order.Salt); err != nil {
		return models.OrderBookEntry{}, err
	}
	if order.Expiry, err = strconv.ParseInt(r.Order.Expiry, 10, 64); err != nil {
		return models.OrderBookEntry{}, fmt.Errorf("error: invalid expiry %q", r.Order.Expiry)
	}

	remaining, err := parseAmount("remainingFillableTakerAmount", r.MetaData.RemainingFillableTakerAmount)
	if err != nil {
		return models.OrderBookEntry{}, err
	}

	var createdAt time.Time
	if r.MetaData.CreatedAt != "" {
		createdAt, _ = time.Parse(time.RFC3339, r.MetaData.CreatedAt)
	}

	return models.OrderBookEntry{
		Order: order,
		MetaData: models.OrderMetaData{
			OrderHash:                    common.HexToHash(r.MetaData.OrderHash),
			RemainingFillableTakerAmount: remaining,
			CreatedAt:                    createdAt,
		},
	}, nil
}

func (p page) toEntries() ([]models.OrderBookEntry, error) {
	entries := make([]models.OrderBookEntry, 0, len(p.Records))
	for _, r := range p.Records {
		entry, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
