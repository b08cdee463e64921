package ethereum

import (
	"context"
	"fmt"
	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"math/big"
	"strings"
)

const nakedMarginMethod = "getNakedMarginRequired"

const marginCalculatorABI = `[{
  "name": "getNakedMarginRequired",
  "type": "function",
  "stateMutability": "view",
  "inputs": [
    {"name": "_underlying", "type": "address"},
    {"name": "_strike", "type": "address"},
    {"name": "_collateral", "type": "address"},
    {"name": "_shortAmount", "type": "uint256"},
    {"name": "_strikePrice", "type": "uint256"},
    {"name": "_underlyingPrice", "type": "uint256"},
    {"name": "_shortExpiryTimestamp", "type": "uint256"},
    {"name": "_collateralDecimals", "type": "uint256"},
    {"name": "_isPut", "type": "bool"}
  ],
  "outputs": [{"name": "", "type": "uint256"}]
}]`

// MarginCalculatorService asks the on-chain margin calculator for the collateral a partially
// collateralized short needs
type MarginCalculatorService struct {
	caller  geth.ContractCaller
	address common.Address
	abi     abi.ABI
}

func NewMarginCalculatorService(ctx context.Context, rpcURL string, address common.Address) (*MarginCalculatorService, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s: %w", rpcURL, err)
	}
	return NewMarginCalculatorServiceWithCaller(client, address)
}

func NewMarginCalculatorServiceWithCaller(caller geth.ContractCaller, address common.Address) (*MarginCalculatorService, error) {
	parsed, err := abi.JSON(strings.NewReader(marginCalculatorABI))
	if err != nil {
		return nil, err
	}
	return &MarginCalculatorService{caller: caller, address: address, abi: parsed}, nil
}

func (s *MarginCalculatorService) NakedMarginRequired(ctx context.Context, otoken models.OToken, shortAmount *big.Int,
	underlyingPrice *big.Int, shortExpiry int64, collateralDecimals int) (*big.Int, error) {
	if otoken.StrikePrice == nil || shortAmount == nil || underlyingPrice == nil {
		return nil, fmt.Errorf("error: strike price, short amount and underlying price are required")
	}

	data, err := s.abi.Pack(nakedMarginMethod, otoken.Underlying.Address, otoken.Strike.Address, otoken.Collateral.Address,
		shortAmount, otoken.StrikePrice, underlyingPrice, big.NewInt(shortExpiry), big.NewInt(int64(collateralDecimals)), otoken.IsPut)
	if err != nil {
		return nil, err
	}

	out, err := s.caller.CallContract(ctx, geth.CallMsg{To: &s.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("error calling %s: %w", nakedMarginMethod, err)
	}

	values, err := s.abi.Unpack(nakedMarginMethod, out)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("error: %s returned %d values", nakedMarginMethod, len(values))
	}
	margin, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("error: unexpected %s result type %T", nakedMarginMethod, values[0])
	}
	return margin, nil
}
