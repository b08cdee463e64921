package zeroex

import (
	"encoding/binary"
	"fmt"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"math/big"
	"sort"
)

// MaxDepth bounds the exclusion search: at most MaxDepth orders are ever left out of a plan
// by the search itself. Deeper books are only partially explored.
const MaxDepth = 5

// leg is the fillable part of one order seen from the ticket's side.
// size is in base units, value in quote units. limit is a lower bound of value on buys and an
// upper bound on sells, taken at the order's own price.
type leg struct {
	size   *big.Int
	amount *big.Int
	value  *big.Int
	limit  *big.Int
}

type selector struct {
	entries []models.OrderBookEntry
	legs    []leg
	side    models.OrderSide
	opts    FeeOptions
	amount  *big.Int

	// fees[k] is the fee of a k order plan in quote base units
	fees      []*big.Int
	byPrice   []int
	minOrders int
	best      *big.Int
	memo      map[string]models.FillPlan
}

// SelectOrdersForTargetInput picks the asks to fill to buy makerAmountWanted base units at the
// lowest fee inclusive cost. Asks are expected best price first.
func SelectOrdersForTargetInput(orders []models.OrderBookEntry, makerAmountWanted *big.Int, opts FeeOptions) (models.FillPlan, error) {
	return selectOrders(orders, makerAmountWanted, models.BUY, opts)
}

// SelectOrdersForTargetOutput picks the bids to fill to sell takerAmountWanted base units for the
// highest fee inclusive proceeds. Bids are expected best price first.
func SelectOrdersForTargetOutput(orders []models.OrderBookEntry, takerAmountWanted *big.Int, opts FeeOptions) (models.FillPlan, error) {
	return selectOrders(orders, takerAmountWanted, models.SELL, opts)
}

func selectOrders(orders []models.OrderBookEntry, amount *big.Int, side models.OrderSide, opts FeeOptions) (models.FillPlan, error) {
	if amount == nil {
		return models.FillPlan{}, ErrNilAmount
	}
	if amount.Sign() < 0 {
		return models.FillPlan{}, ErrNegativeAmount
	}
	s := newSelector(orders, side, opts)
	if amount.Sign() == 0 {
		return s.empty(models.NoError), nil
	}
	if err := validateEntries(orders); err != nil {
		return models.FillPlan{}, err
	}
	s.amount = amount
	s.buildLegs()
	s.buildBounds()
	return s.search(newExclusionMask(len(s.legs)), s.liquidity(), 0), nil
}

func validateEntries(orders []models.OrderBookEntry) error {
	for i, entry := range orders {
		order := entry.Order
		if order.MakerAmount == nil || order.MakerAmount.Sign() <= 0 || order.TakerAmount == nil || order.TakerAmount.Sign() <= 0 {
			return fmt.Errorf("%w: order %d has no maker or taker amount", ErrInvalidOrder, i)
		}
		remaining := entry.MetaData.RemainingFillableTakerAmount
		if remaining == nil || remaining.Sign() < 0 || remaining.Cmp(order.TakerAmount) > 0 {
			return fmt.Errorf("%w: order %d remaining fillable amount out of range", ErrInvalidOrder, i)
		}
	}
	return nil
}

func newSelector(orders []models.OrderBookEntry, side models.OrderSide, opts FeeOptions) *selector {
	return &selector{
		entries: orders,
		side:    side,
		opts:    opts,
		memo:    make(map[string]models.FillPlan),
	}
}

func (s *selector) buildLegs() {
	s.legs = make([]leg, len(s.entries))
	for i, entry := range s.entries {
		remainingMaker, remainingTaker := RemainingMakerAndTaker(entry)
		if s.side == models.BUY {
			s.legs[i] = leg{size: remainingMaker, amount: remainingTaker, value: remainingTaker}
		} else {
			s.legs[i] = leg{size: remainingTaker, amount: remainingTaker, value: remainingMaker}
		}
		s.legs[i].limit = s.valueBound(i, s.legs[i].size)
	}
}

// buildBounds prepares the plan fees, the legs ordered by price and the fewest orders any plan
// needs, which together bound what a search branch can still reach.
func (s *selector) buildBounds() {
	s.fees = make([]*big.Int, len(s.legs)+1)
	for k := range s.fees {
		s.fees[k] = ProtocolFeeInQuoteUnits(k, s.opts, s.side == models.BUY)
	}

	for i, l := range s.legs {
		if l.size.Sign() > 0 {
			s.byPrice = append(s.byPrice, i)
		}
	}
	sort.SliceStable(s.byPrice, func(a, b int) bool {
		return s.cheaper(s.byPrice[a], s.byPrice[b])
	})

	bySize := append([]int(nil), s.byPrice...)
	sort.SliceStable(bySize, func(a, b int) bool {
		return s.legs[bySize[a]].size.Cmp(s.legs[bySize[b]].size) > 0
	})
	covered := new(big.Int)
	for _, i := range bySize {
		if covered.Cmp(s.amount) >= 0 {
			break
		}
		covered.Add(covered, s.legs[i].size)
		s.minOrders++
	}
}

// cheaper reports whether order a trades at a better price than order b for the ticket.
// A lower taker to maker ratio is a cheaper ask and a richer bid alike.
func (s *selector) cheaper(a, b int) bool {
	orderA, orderB := s.entries[a].Order, s.entries[b].Order
	left := new(big.Int).Mul(orderA.TakerAmount, orderB.MakerAmount)
	right := new(big.Int).Mul(orderB.TakerAmount, orderA.MakerAmount)
	return left.Cmp(right) < 0
}

// valueBound prices size base units of order i at its exact rate, rounded in the ticket's favour
func (s *selector) valueBound(i int, size *big.Int) *big.Int {
	order := s.entries[i].Order
	if s.side == models.BUY {
		return MulDivFloor(size, order.TakerAmount, order.MakerAmount)
	}
	return MulDivCeil(size, order.MakerAmount, order.TakerAmount)
}

// search returns the best plan for the wanted amount using every order but the excluded ones
func (s *selector) search(excluded exclusionMask, liquidity *big.Int, depth int) models.FillPlan {
	if depth > MaxDepth || liquidity.Cmp(s.amount) < 0 {
		return s.empty(models.InsufficientLiquidity)
	}

	key := excluded.key()
	if plan, ok := s.memo[key]; ok {
		return plan
	}
	// a branch that cannot beat the best plan so far is not walked and offers no alternative
	plan := s.empty(models.InsufficientLiquidity)
	if depth == 0 || s.canImprove(excluded) {
		plan = s.walk(excluded, liquidity, depth)
	}
	s.memo[key] = plan
	return plan
}

func (s *selector) walk(excluded exclusionMask, liquidity *big.Int, depth int) models.FillPlan {
	ordersToFill := []models.Order{}
	amounts := []*big.Int{}
	visited := []int{}
	sum := new(big.Int)
	needed := new(big.Int).Set(s.amount)

	for i := range s.legs {
		if needed.Sign() == 0 {
			break
		}
		if excluded.has(i) || s.legs[i].size.Sign() == 0 {
			continue
		}
		visited = append(visited, i)

		if s.side == models.BUY && s.worthSkipping(i, needed, excluded) {
			continue
		}

		fillAmount, value := s.fill(i, needed)
		ordersToFill = append(ordersToFill, s.entries[i].Order)
		amounts = append(amounts, fillAmount)
		sum.Add(sum, value)
		if s.legs[i].size.Cmp(needed) <= 0 {
			needed.Sub(needed, s.legs[i].size)
		} else {
			needed.SetInt64(0)
		}
	}

	if needed.Sign() > 0 {
		return s.empty(models.InsufficientLiquidity)
	}

	plan := models.FillPlan{
		OrdersToFill:            ordersToFill,
		Amounts:                 amounts,
		SumInput:                new(big.Int),
		SumOutput:               new(big.Int),
		EstimatedProtocolFeeUSD: s.opts.planFee(len(ordersToFill)),
		Error:                   models.NoError,
	}
	if s.side == models.BUY {
		plan.SumInput = sum
	} else {
		plan.SumOutput = sum
	}
	if net := s.net(plan); s.best == nil || s.improves(net, s.best) {
		s.best = net
	}

	var alternative *models.FillPlan
	for _, i := range visited {
		remaining := new(big.Int).Sub(liquidity, s.legs[i].size)
		skipped := s.search(excluded.with(i), remaining, depth+1)
		if skipped.Error == models.NoError && (alternative == nil || s.better(skipped, *alternative)) {
			alternative = &skipped
		}
	}

	if alternative != nil && s.better(*alternative, plan) {
		return *alternative
	}
	return plan
}

// canImprove reports whether some plan without the excluded orders could still strictly beat the
// best plan found so far. It fills the wanted amount at exact prices from the best orders left and
// charges the fee of the fewest orders any plan needs.
func (s *selector) canImprove(excluded exclusionMask) bool {
	if s.best == nil {
		return true
	}
	bound := new(big.Int)
	needed := new(big.Int).Set(s.amount)
	for _, i := range s.byPrice {
		if needed.Sign() == 0 {
			break
		}
		if excluded.has(i) {
			continue
		}
		l := s.legs[i]
		if l.size.Cmp(needed) <= 0 {
			bound.Add(bound, l.limit)
			needed.Sub(needed, l.size)
		} else {
			bound.Add(bound, s.valueBound(i, needed))
			needed.SetInt64(0)
		}
	}
	if s.side == models.BUY {
		bound.Add(bound, s.fees[s.minOrders])
	} else {
		bound.Sub(bound, s.fees[s.minOrders])
	}
	return s.improves(bound, s.best)
}

// fill returns the taker amount and quote value of taking up to needed base units from order i.
// Orders that fit are taken whole; the closing order is rounded up on buys and down on sells.
func (s *selector) fill(i int, needed *big.Int) (*big.Int, *big.Int) {
	l := s.legs[i]
	if l.size.Cmp(needed) <= 0 {
		return new(big.Int).Set(l.amount), new(big.Int).Set(l.value)
	}
	order := s.entries[i].Order
	if s.side == models.BUY {
		takerAmount := minInt(MulDivCeil(needed, order.TakerAmount, order.MakerAmount), l.amount)
		return takerAmount, new(big.Int).Set(takerAmount)
	}
	return new(big.Int).Set(needed), MulDivFloor(needed, order.MakerAmount, order.TakerAmount)
}

// worthSkipping reports whether order i should be passed over because the next order can close
// the ticket alone and paying its worse price costs less than the fee of one more order.
func (s *selector) worthSkipping(i int, needed *big.Int, excluded exclusionMask) bool {
	current := s.legs[i]
	if current.size.Cmp(needed) >= 0 {
		return false
	}
	j := s.nextLeg(i, excluded)
	if j < 0 || s.legs[j].size.Cmp(needed) < 0 {
		return false
	}

	_, nextOnly := s.fill(j, needed)
	_, rest := s.fill(j, new(big.Int).Sub(needed, current.size))
	both := new(big.Int).Add(current.value, rest)
	extra := new(big.Int).Sub(nextOnly, both)
	return extra.Cmp(s.fees[1]) < 0
}

func (s *selector) nextLeg(i int, excluded exclusionMask) int {
	for j := i + 1; j < len(s.legs); j++ {
		if !excluded.has(j) && s.legs[j].size.Sign() > 0 {
			return j
		}
	}
	return -1
}

func (s *selector) liquidity() *big.Int {
	total := new(big.Int)
	for _, l := range s.legs {
		total.Add(total, l.size)
	}
	return total
}

// net is the fee inclusive cost of a buy plan or the fee inclusive proceeds of a sell plan,
// in quote base units
func (s *selector) net(plan models.FillPlan) *big.Int {
	fee := s.fees[len(plan.OrdersToFill)]
	if s.side == models.BUY {
		return new(big.Int).Add(plan.SumInput, fee)
	}
	return new(big.Int).Sub(plan.SumOutput, fee)
}

// improves reports whether net amount a is strictly better than b for the ticket
func (s *selector) improves(a, b *big.Int) bool {
	if s.side == models.BUY {
		return a.Cmp(b) < 0
	}
	return a.Cmp(b) > 0
}

// better reports whether plan a strictly beats plan b
func (s *selector) better(a, b models.FillPlan) bool {
	return s.improves(s.net(a), s.net(b))
}

func (s *selector) empty(tradeError models.TradeError) models.FillPlan {
	plan := models.NewEmptyFillPlan(tradeError)
	plan.EstimatedProtocolFeeUSD = s.opts.planFee(0)
	return plan
}

// exclusionMask holds one bit per order index
type exclusionMask []uint64

func newExclusionMask(orders int) exclusionMask {
	return make(exclusionMask, (orders+63)/64)
}

func (m exclusionMask) has(i int) bool {
	return m[i/64]&(1<<uint(i%64)) != 0
}

func (m exclusionMask) with(i int) exclusionMask {
	next := make(exclusionMask, len(m))
	copy(next, m)
	next[i/64] |= 1 << uint(i%64)
	return next
}

func (m exclusionMask) key() string {
	buf := make([]byte, 8*len(m))
	for i, word := range m {
		binary.LittleEndian.PutUint64(buf[8*i:], word)
	}
	return string(buf)
}
