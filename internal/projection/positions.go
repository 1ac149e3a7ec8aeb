package projection

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/wealthflow-projection/internal/domain"
)

// quantityEpsilon absorbs float noise when a position is fully sold
const quantityEpsilon = 1e-9

// SortTransactions returns a copy of txs ordered by date.
// The sort is stable so same-day transactions keep insertion order.
func SortTransactions(txs []*domain.Transaction) []*domain.Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b *domain.Transaction) int {
		return Day(a.Date).Compare(Day(b.Date))
	})
	return sorted
}

// NetQuantity returns Σ BUY - Σ SELL of assetID over transactions dated on or before asOf.
// The result may be negative for an over-sold ledger.
func NetQuantity(assetID uuid.UUID, asOf time.Time, txs []*domain.Transaction) float64 {
	asOf = Day(asOf)

	var qty float64
	for _, tx := range txs {
		if tx.AssetID != assetID || Day(tx.Date).After(asOf) {
			continue
		}
		qty += tx.SignedQuantity().InexactFloat64()
	}
	return qty
}

// WealthAt values every asset's net quantity at asOf with its current price.
// Quantities are floored at 0 so a fully sold (or over-sold) position contributes nothing.
func WealthAt(asOf time.Time, assets []*domain.Asset, txs []*domain.Transaction) float64 {
	var wealth float64
	for _, asset := range assets {
		qty := math.Max(NetQuantity(asset.ID, asOf, txs), 0)
		wealth += qty * asset.CurrentPrice.InexactFloat64()
	}
	return floor(wealth)
}

// HistoricalSeries samples WealthAt once per calendar month from start to end.
// Each sample is dated on the month's last day, except the month containing today,
// which is dated today. Nothing is sampled after today.
func HistoricalSeries(assets []*domain.Asset, txs []*domain.Transaction, start, end, today time.Time) []domain.ChartPoint {
	series := []domain.ChartPoint{}
	if len(txs) == 0 {
		return series
	}

	start, end, today = Day(start), Day(end), Day(today)
	if start.After(end) {
		return series
	}

	todayIdx := monthIndex(today)
	for idx := monthIndex(start); idx <= monthIndex(end); idx++ {
		date := EndOfMonth(monthFromIndex(idx))
		if idx == todayIdx {
			date = today
		}
		if date.After(today) {
			break
		}
		series = append(series, domain.ChartPoint{
			Date:  date,
			Value: WealthAt(date, assets, txs),
		})
	}

	return series
}

// Position is the state of one asset at a point in time
type Position struct {
	AssetID        uuid.UUID
	Quantity       float64
	AverageCost    float64 // weighted average unit cost, fees included
	Invested       float64 // remaining cost basis: Quantity * AverageCost
	MarketValue    float64
	UnrealizedGain float64
}

// CostBasis computes the weighted-average cost basis of assetID at asOf.
// Buys add quantity*price+fee to the basis; sells remove basis in proportion to the
// quantity sold and leave the average cost unchanged. Market fields are left empty.
func CostBasis(assetID uuid.UUID, asOf time.Time, txs []*domain.Transaction) Position {
	asOf = Day(asOf)
	pos := Position{AssetID: assetID}

	for _, tx := range SortTransactions(txs) {
		if tx.AssetID != assetID || Day(tx.Date).After(asOf) {
			continue
		}

		qty := tx.Quantity.InexactFloat64()
		switch tx.Type {
		case domain.TransactionTypeBuy:
			pos.Invested += tx.Cost().InexactFloat64()
			pos.Quantity += qty
		case domain.TransactionTypeSell:
			if pos.Quantity > 0 {
				sold := math.Min(qty, pos.Quantity)
				pos.Invested -= pos.Invested * sold / pos.Quantity
			}
			pos.Quantity -= qty
		}

		if pos.Quantity <= quantityEpsilon {
			pos.Quantity = 0
			pos.Invested = 0
		}
	}

	if pos.Quantity > 0 {
		pos.AverageCost = pos.Invested / pos.Quantity
	}
	return pos
}

// Holdings returns the position of every asset that has at least one transaction,
// valued at its current price.
func Holdings(asOf time.Time, assets []*domain.Asset, txs []*domain.Transaction) []Position {
	traded := make(map[uuid.UUID]bool, len(assets))
	for _, tx := range txs {
		traded[tx.AssetID] = true
	}

	holdings := make([]Position, 0, len(assets))
	for _, asset := range assets {
		if !traded[asset.ID] {
			continue
		}
		pos := CostBasis(asset.ID, asOf, txs)
		pos.MarketValue = pos.Quantity * asset.CurrentPrice.InexactFloat64()
		pos.UnrealizedGain = pos.MarketValue - pos.Invested
		holdings = append(holdings, pos)
	}
	return holdings
}

// OversoldAssets lists, in order of first occurrence, the assets whose running
// net quantity drops below zero. Reconstruction tolerates these ledgers; this is
// for callers that want to flag them.
func OversoldAssets(txs []*domain.Transaction) []uuid.UUID {
	running := make(map[uuid.UUID]float64)
	flagged := make(map[uuid.UUID]bool)
	var oversold []uuid.UUID

	for _, tx := range SortTransactions(txs) {
		running[tx.AssetID] += tx.SignedQuantity().InexactFloat64()
		if running[tx.AssetID] < -quantityEpsilon && !flagged[tx.AssetID] {
			flagged[tx.AssetID] = true
			oversold = append(oversold, tx.AssetID)
		}
	}
	return oversold
}

// LowestQuantitySince replays txs in ledger order and returns the lowest running net
// quantity of assetID reached by a transaction dated on or after from. When no such
// transaction exists it returns the final net quantity.
func LowestQuantitySince(assetID uuid.UUID, from time.Time, txs []*domain.Transaction) float64 {
	from = Day(from)

	var running float64
	lowest := math.Inf(1)
	for _, tx := range SortTransactions(txs) {
		if tx.AssetID != assetID {
			continue
		}
		running += tx.SignedQuantity().InexactFloat64()
		if !Day(tx.Date).Before(from) {
			lowest = math.Min(lowest, running)
		}
	}

	if math.IsInf(lowest, 1) {
		return running
	}
	return lowest
}
