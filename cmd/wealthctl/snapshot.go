package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-projection/internal/domain"
	"github.com/simaogato/wealthflow-projection/internal/projection"
)

type assetJSON struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Ticker       string          `json:"ticker"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

type transactionJSON struct {
	ID        uuid.UUID       `json:"id"`
	AssetID   uuid.UUID       `json:"asset_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Fee       decimal.Decimal `json:"fee"`
	Date      string          `json:"date"`
}

type objectiveJSON struct {
	Name                string          `json:"name"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	TargetYears         float64         `json:"target_years"`
	InterestRatePercent float64         `json:"interest_rate_percent"`
	StartDate           string          `json:"start_date"`
}

type snapshotJSON struct {
	Assets       []assetJSON       `json:"assets"`
	Transactions []transactionJSON `json:"transactions"`
	Objective    *objectiveJSON    `json:"objective"`
}

// decodeSnapshot reads and validates a snapshot document
func decodeSnapshot(r io.Reader) (*projection.Snapshot, error) {
	var doc snapshotJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	snap := &projection.Snapshot{
		Assets:       make([]*domain.Asset, 0, len(doc.Assets)),
		Transactions: make([]*domain.Transaction, 0, len(doc.Transactions)),
	}

	known := make(map[uuid.UUID]bool)
	for i, a := range doc.Assets {
		asset := &domain.Asset{ID: a.ID, Name: a.Name, Ticker: a.Ticker, CurrentPrice: a.CurrentPrice}
		if asset.ID == uuid.Nil {
			return nil, fmt.Errorf("asset %d: missing id", i)
		}
		if err := asset.Validate(); err != nil {
			return nil, fmt.Errorf("asset %s: %w", asset.ID, err)
		}
		known[asset.ID] = true
		snap.Assets = append(snap.Assets, asset)
	}

	for i, t := range doc.Transactions {
		txType, err := domain.ParseTransactionType(t.Type)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		date, err := parseDate(t.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}

		tx := &domain.Transaction{
			ID:        t.ID,
			AssetID:   t.AssetID,
			Type:      txType,
			Quantity:  t.Quantity,
			UnitPrice: t.UnitPrice,
			Fee:       t.Fee,
			Date:      date,
		}
		if tx.ID == uuid.Nil {
			tx.ID = uuid.New()
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		if !known[tx.AssetID] {
			return nil, fmt.Errorf("transaction %d: unknown asset %s", i, tx.AssetID)
		}
		snap.Transactions = append(snap.Transactions, tx)
	}

	if doc.Objective == nil {
		return nil, errors.New("snapshot has no objective")
	}
	objective := &domain.Objective{
		Name:                doc.Objective.Name,
		TargetAmount:        doc.Objective.TargetAmount,
		TargetYears:         doc.Objective.TargetYears,
		InterestRatePercent: doc.Objective.InterestRatePercent,
	}
	if doc.Objective.StartDate != "" {
		start, err := parseDate(doc.Objective.StartDate)
		if err != nil {
			return nil, fmt.Errorf("objective: %w", err)
		}
		objective.StartDate = &start
	}
	if err := objective.Validate(); err != nil {
		return nil, fmt.Errorf("objective: %w", err)
	}
	snap.Objective = objective

	return snap, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.TimeKeyFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// snapshotFlags are shared by every report command
type snapshotFlags struct {
	file     string
	today    string
	currency string
}

func (s *snapshotFlags) register(f *flag.FlagSet) {
	f.StringVar(&s.file, "snapshot", "snapshot.json", "Path to the JSON snapshot (assets, transactions, objective)")
	f.StringVar(&s.today, "today", "", "Evaluation date YYYY-MM-DD (defaults to today)")
	f.StringVar(&s.currency, "currency", "EUR", "ISO currency code used to display amounts")
}

// load decodes the snapshot file and resolves the evaluation date
func (s *snapshotFlags) load() (*projection.Snapshot, time.Time, error) {
	today := projection.Day(time.Now())
	if s.today != "" {
		d, err := parseDate(s.today)
		if err != nil {
			return nil, time.Time{}, err
		}
		today = d
	}

	f, err := os.Open(s.file)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer f.Close()

	snap, err := decodeSnapshot(f)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%s: %w", s.file, err)
	}

	if oversold := projection.OversoldAssets(snap.Transactions); len(oversold) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d asset(s) sold beyond their holdings, positions floored at zero\n", len(oversold))
	}
	return snap, today, nil
}
