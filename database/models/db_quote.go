package database

import (
	"gorm.io/gorm"
	"time"
)

// Quote is a computed ticket and the orders of its fill plan. Amounts are base unit strings.
type Quote struct {
	gorm.Model
	QuoteID       string      `gorm:"uniqueIndex;size:36" json:"quoteId"`
	Instrument    string      `gorm:"index;size:42" json:"instrument"`
	Side          string      `gorm:"size:4" json:"side"`
	Amount        string      `json:"amount"`
	SumInput      string      `json:"sumInput"`
	SumOutput     string      `json:"sumOutput"`
	ProtocolFee   string      `json:"protocolFee"`
	PlanError     string      `json:"planError"`
	ImpactPercent string      `json:"impactPercent"`
	ImpactError   string      `json:"impactError"`
	GasPrice      string      `json:"gasPrice"`
	NativePrice   string      `json:"nativePrice"`
	BookVersion   uint64      `json:"bookVersion"`
	QuotedAt      time.Time   `gorm:"index" json:"quotedAt"`
	Orders        []FillOrder `gorm:"foreignKey:QuoteID"`
}

// FillOrder is one order of a stored fill plan with the taker amount filled on it
type FillOrder struct {
	gorm.Model
	QuoteID     uint
	Position    int
	Maker       string `gorm:"size:42"`
	MakerToken  string `gorm:"size:42"`
	TakerToken  string `gorm:"size:42"`
	MakerAmount string
	TakerAmount string
	FillAmount  string
	Salt        string
	Expiry      int64
}
