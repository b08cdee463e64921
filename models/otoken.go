package models

import (
	"github.com/ethereum/go-ethereum/common"
	"math/big"
)

// OTokenDecimals is the fixed precision of oToken amounts and strike prices
const OTokenDecimals = 8

type Token struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals int            `json:"decimals"`
}

// OToken describes an option series. StrikePrice carries OTokenDecimals decimals.
type OToken struct {
	Address     common.Address `json:"address"`
	Underlying  Token          `json:"underlying"`
	Strike      Token          `json:"strike"`
	Collateral  Token          `json:"collateral"`
	StrikePrice *big.Int       `json:"strikePrice"`
	Expiry      int64          `json:"expiry"`
	IsPut       bool           `json:"isPut"`
}
