package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-projection/internal/projection"
)

const scenarioSnapshot = `{
  "assets": [
    {"id": "6f1c1f0e-2f55-4c47-a2a4-0d0f4c1e9b11", "name": "World ETF", "ticker": "IWDA", "current_price": "250"}
  ],
  "transactions": [
    {"asset_id": "6f1c1f0e-2f55-4c47-a2a4-0d0f4c1e9b11", "type": "BUY", "quantity": "10", "unit_price": "200", "fee": "5", "date": "2023-01-27"},
    {"asset_id": "6f1c1f0e-2f55-4c47-a2a4-0d0f4c1e9b11", "type": "BUY", "quantity": 1, "unit_price": 285, "fee": 5, "date": "2024-06-15"}
  ],
  "objective": {"name": "House deposit", "target_amount": "10000", "target_years": 2, "interest_rate_percent": 5, "start_date": "2025-11-01"}
}`

func TestDecodeSnapshot(t *testing.T) {
	snap, err := decodeSnapshot(strings.NewReader(scenarioSnapshot))
	require.NoError(t, err)

	require.Len(t, snap.Assets, 1)
	require.Len(t, snap.Transactions, 2)
	assert.Equal(t, "IWDA", snap.Assets[0].Ticker)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), snap.Transactions[1].Date)
	assert.NotEqual(t, snap.Transactions[0].ID, snap.Transactions[1].ID, "missing ids are generated")
	require.NotNil(t, snap.Objective.StartDate)

	today := time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 2750.0, projection.WealthAt(today, snap.Assets, snap.Transactions), 1e-9)
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	const asset = `{"id": "6f1c1f0e-2f55-4c47-a2a4-0d0f4c1e9b11", "name": "World ETF", "current_price": "250"}`
	const objective = `{"target_amount": "10000", "target_years": 2}`

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "Malformed JSON",
			doc:     `{"assets": [`,
			wantErr: "invalid snapshot",
		},
		{
			name:    "Unknown Field",
			doc:     `{"portfolio": []}`,
			wantErr: "invalid snapshot",
		},
		{
			name:    "Missing Objective",
			doc:     `{"assets": [` + asset + `]}`,
			wantErr: "snapshot has no objective",
		},
		{
			name:    "Unknown Asset",
			doc:     `{"assets": [` + asset + `], "transactions": [{"asset_id": "00000000-0000-0000-0000-0000000000aa", "type": "BUY", "quantity": "1", "unit_price": "1", "date": "2024-01-01"}], "objective": ` + objective + `}`,
			wantErr: "unknown asset",
		},
		{
			name:    "Bad Date",
			doc:     `{"assets": [` + asset + `], "transactions": [{"asset_id": "6f1c1f0e-2f55-4c47-a2a4-0d0f4c1e9b11", "type": "BUY", "quantity": "1", "unit_price": "1", "date": "01/01/2024"}], "objective": ` + objective + `}`,
			wantErr: "expected YYYY-MM-DD",
		},
		{
			name:    "Bad Type",
			doc:     `{"assets": [` + asset + `], "transactions": [{"asset_id": "6f1c1f0e-2f55-4c47-a2a4-0d0f4c1e9b11", "type": "GIFT", "quantity": "1", "unit_price": "1", "date": "2024-01-01"}], "objective": ` + objective + `}`,
			wantErr: "invalid transaction type",
		},
		{
			name:    "Invalid Objective",
			doc:     `{"assets": [` + asset + `], "objective": {"target_amount": "0", "target_years": 2}}`,
			wantErr: "objective: target amount must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeSnapshot(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRenderProgress(t *testing.T) {
	snap, err := decodeSnapshot(strings.NewReader(scenarioSnapshot))
	require.NoError(t, err)

	report := snap.Progress(time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, report)

	var out bytes.Buffer
	renderProgress(&out, report, "USD")

	assert.Contains(t, out.String(), "warning")
	assert.Contains(t, out.String(), "$2,750.00")
}

func TestRenderHoldings(t *testing.T) {
	snap, err := decodeSnapshot(strings.NewReader(scenarioSnapshot))
	require.NoError(t, err)

	var out bytes.Buffer
	renderHoldings(&out, snap, time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC), "USD")

	assert.Contains(t, out.String(), "World ETF")
	assert.Contains(t, out.String(), "$2,295.00") // cost basis incl. fees
	assert.Contains(t, out.String(), "$455.00")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.57", formatMoney(1234.567, "usd"))
	assert.Equal(t, "12.50 XYZ", formatMoney(12.5, "XYZ"))
}
