package models

import (
	"github.com/ethereum/go-ethereum/common"
	"math/big"
)

// Order is a signed 0x v4 limit order as served by the orderbook API.
type Order struct {
	Maker               common.Address `json:"maker"`
	Taker               common.Address `json:"taker"`
	MakerToken          common.Address `json:"makerToken"`
	TakerToken          common.Address `json:"takerToken"`
	MakerAmount         *big.Int       `json:"makerAmount"`
	TakerAmount         *big.Int       `json:"takerAmount"`
	TakerTokenFeeAmount *big.Int       `json:"takerTokenFeeAmount"`
	Sender              common.Address `json:"sender"`
	FeeRecipient        common.Address `json:"feeRecipient"`
	Pool                common.Hash    `json:"pool"`
	Expiry              int64          `json:"expiry"`
	Salt                *big.Int       `json:"salt"`
	ChainID             int64          `json:"chainId"`
	VerifyingContract   common.Address `json:"verifyingContract"`
	Signature           Signature      `json:"signature"`
}

type Signature struct {
	SignatureType uint8       `json:"signatureType"`
	V             uint8       `json:"v"`
	R             common.Hash `json:"r"`
	S             common.Hash `json:"s"`
}

// OrderSide define the side of the ticket from the taker's point of view
type OrderSide string

const (
	BUY  OrderSide = "BUY"
	SELL OrderSide = "SELL"
)

// NullAddress is the taker of an open order, fillable by anyone
var NullAddress = common.Address{}

// IsOpen returns true if the order is not restricted to a designated taker
func (o Order) IsOpen() bool {
	return o.Taker == NullAddress
}
