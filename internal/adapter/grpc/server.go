package grpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthflow-projection/internal/domain"
	"github.com/simaogato/wealthflow-projection/internal/projection"
	"github.com/simaogato/wealthflow-projection/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-projection/internal/usecase/investment"
	"github.com/simaogato/wealthflow-projection/internal/usecase/ledger"
	"github.com/simaogato/wealthflow-projection/internal/usecase/progress"
)

// Server implements ProjectionServer
type Server struct {
	ProgressService   *progress.ProgressService
	DashboardService  *dashboard.DashboardService
	InvestmentService *investment.InvestmentService
	LedgerService     *ledger.LedgerService

	// Now supplies the default for requests without a "today" field
	Now func() time.Time
}

// NewServer creates a new gRPC server instance
func NewServer(
	progressService *progress.ProgressService,
	dashboardService *dashboard.DashboardService,
	investmentService *investment.InvestmentService,
	ledgerService *ledger.LedgerService,
) *Server {
	return &Server{
		ProgressService:   progressService,
		DashboardService:  dashboardService,
		InvestmentService: investmentService,
		LedgerService:     ledgerService,
		Now:               time.Now,
	}
}

// GetProgress handles the GetProgress RPC
func (s *Server) GetProgress(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	objectiveID, err := objectiveField(req)
	if err != nil {
		return nil, err
	}
	today, err := s.today(req)
	if err != nil {
		return nil, err
	}

	report, err := s.ProgressService.GetProgress(ctx, objectiveID, today)
	if err != nil {
		return nil, mapError(err)
	}

	// Empty ledger: no report
	if report == nil {
		return newStruct(map[string]interface{}{"has_data": false})
	}

	return newStruct(map[string]interface{}{
		"has_data":                      true,
		"current_wealth":                report.CurrentWealth,
		"theoretical_wealth":            report.TheoreticalWealth,
		"delta_percent":                 report.DeltaPercent,
		"required_monthly_investment":   report.RequiredMonthlyInvestment,
		"historical_monthly_investment": report.HistoricalMonthlyInvestment,
		"realized_cagr":                 report.RealizedCAGR,
		"status": map[string]interface{}{
			"level":   string(report.Status.Level),
			"message": report.Status.Message,
		},
	})
}

// GetChart handles the GetChart RPC
func (s *Server) GetChart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	objectiveID, err := objectiveField(req)
	if err != nil {
		return nil, err
	}
	today, err := s.today(req)
	if err != nil {
		return nil, err
	}

	rangeKey := stringField(req, "range")
	if rangeKey == "" {
		return nil, status.Error(codes.InvalidArgument, "range is required")
	}

	chart, err := s.ProgressService.GetChart(ctx, objectiveID, rangeKey, stringField(req, "granularity"), today)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"historical": chartPointsToList(chart.Historical),
		"objective":  chartPointsToList(chart.Objective),
		"capital":    chartPointsToList(chart.Capital),
		"interest":   chartPointsToList(chart.Interest),
	})
}

// GetNetWorth handles the GetNetWorth RPC
func (s *Server) GetNetWorth(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	today, err := s.today(req)
	if err != nil {
		return nil, err
	}

	result, err := s.DashboardService.GetNetWorth(ctx, today)
	if err != nil {
		return nil, mapError(err)
	}

	holdings := make([]interface{}, 0, len(result.Holdings))
	for _, pos := range result.Holdings {
		holdings = append(holdings, map[string]interface{}{
			"asset_id":        pos.AssetID.String(),
			"quantity":        pos.Quantity,
			"average_cost":    pos.AverageCost,
			"invested":        pos.Invested,
			"market_value":    pos.MarketValue,
			"unrealized_gain": pos.UnrealizedGain,
		})
	}

	return newStruct(map[string]interface{}{
		"total":           result.Total.String(),
		"invested":        result.Invested.String(),
		"unrealized_gain": result.UnrealizedGain.String(),
		"holdings":        holdings,
	})
}

// GetAssetProfit handles the GetAssetProfit RPC
func (s *Server) GetAssetProfit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	assetID, err := uuidField(req, "asset_id")
	if err != nil {
		return nil, err
	}
	today, err := s.today(req)
	if err != nil {
		return nil, err
	}

	profit, err := s.InvestmentService.CalculateProfit(ctx, assetID, today)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"asset_id": assetID.String(),
		"profit":   profit.String(),
	})
}

// RegisterAsset handles the RegisterAsset RPC
func (s *Server) RegisterAsset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	price, err := decimalField(req, "current_price", false)
	if err != nil {
		return nil, err
	}

	asset, err := s.LedgerService.RegisterAsset(ctx, ledger.RegisterAssetInput{
		Name:         stringField(req, "name"),
		Ticker:       stringField(req, "ticker"),
		CurrentPrice: price,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"asset_id":      asset.ID.String(),
		"current_price": asset.CurrentPrice.String(),
	})
}

// RecordTransaction handles the RecordTransaction RPC
func (s *Server) RecordTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	assetID, err := uuidField(req, "asset_id")
	if err != nil {
		return nil, err
	}

	txType, err := domain.ParseTransactionType(strings.ToUpper(stringField(req, "type")))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	quantity, err := decimalField(req, "quantity", true)
	if err != nil {
		return nil, err
	}
	unitPrice, err := decimalField(req, "unit_price", true)
	if err != nil {
		return nil, err
	}
	fee, err := decimalField(req, "fee", false)
	if err != nil {
		return nil, err
	}

	// Date is optional, defaults to today
	date, err := s.dateField(req, "date")
	if err != nil {
		return nil, err
	}

	tx, err := s.LedgerService.RecordTransaction(ctx, ledger.RecordTransactionInput{
		AssetID:   assetID,
		Type:      txType,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Fee:       fee,
		Date:      date,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"transaction_id": tx.ID.String(),
		"date":           tx.Date.Format(domain.TimeKeyFormat),
	})
}

// UpdateAssetPrice handles the UpdateAssetPrice RPC
func (s *Server) UpdateAssetPrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	assetID, err := uuidField(req, "asset_id")
	if err != nil {
		return nil, err
	}
	price, err := decimalField(req, "current_price", true)
	if err != nil {
		return nil, err
	}

	asset, err := s.InvestmentService.UpdateCurrentPrice(ctx, assetID, price)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"asset_id":      asset.ID.String(),
		"current_price": asset.CurrentPrice.String(),
	})
}

// SetObjective handles the SetObjective RPC
func (s *Server) SetObjective(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	targetYears, err := numberField(req, "target_years")
	if err != nil {
		return nil, err
	}
	rate, err := numberField(req, "interest_rate_percent")
	if err != nil {
		return nil, err
	}

	input := ledger.SetObjectiveInput{
		Name:                stringField(req, "name"),
		TargetYears:         targetYears,
		InterestRatePercent: rate,
	}

	// Parse optional objective ID (replace instead of create)
	if raw := stringField(req, "objective_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid objective_id format: %v", err)
		}
		input.ID = &id
	}

	target, err := decimalField(req, "target_amount", true)
	if err != nil {
		return nil, err
	}
	input.TargetAmount = target

	if raw := stringField(req, "start_date"); raw != "" {
		start, err := parseDate("start_date", raw)
		if err != nil {
			return nil, err
		}
		input.StartDate = &start
	}

	objective, err := s.LedgerService.SetObjective(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	fields := map[string]interface{}{
		"objective_id": objective.ID.String(),
	}
	if objective.StartDate != nil {
		fields["start_date"] = objective.StartDate.Format(domain.TimeKeyFormat)
	}
	return newStruct(fields)
}

// today reads the optional "today" field, falling back to the server clock
func (s *Server) today(req *structpb.Struct) (time.Time, error) {
	return s.dateField(req, "today")
}

// dateField parses an optional YYYY-MM-DD field, defaulting to the current day
func (s *Server) dateField(req *structpb.Struct, name string) (time.Time, error) {
	raw := stringField(req, name)
	if raw == "" {
		return projection.Day(s.Now()), nil
	}
	return parseDate(name, raw)
}

func parseDate(field, raw string) (time.Time, error) {
	d, err := time.Parse(domain.TimeKeyFormat, raw)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	return d, nil
}

func stringField(req *structpb.Struct, name string) string {
	return strings.TrimSpace(req.GetFields()[name].GetStringValue())
}

// numberField reads an optional float field sent as a JSON number or a numeric string.
// Absent fields read as 0. Non-finite values are rejected.
func numberField(req *structpb.Struct, name string) (float64, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, nil
	}

	var n float64
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n = kind.NumberValue
	case *structpb.Value_StringValue:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(kind.StringValue), 64)
		if err != nil {
			return 0, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", name, err)
		}
		n = parsed
	default:
		return 0, status.Errorf(codes.InvalidArgument, "invalid %s format: expected string or number", name)
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, status.Errorf(codes.InvalidArgument, "invalid %s: must be a finite number", name)
	}
	return n, nil
}

// objectiveField reads "objective_id", an absent id selects the default objective
func objectiveField(req *structpb.Struct) (uuid.UUID, error) {
	if stringField(req, "objective_id") == "" {
		return domain.DefaultObjectiveID, nil
	}
	return uuidField(req, "objective_id")
}

func uuidField(req *structpb.Struct, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(stringField(req, name))
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", name, err)
	}
	return id, nil
}

// decimalField accepts a decimal string or a JSON number.
// Strings are preferred, numbers lose precision beyond float64.
func decimalField(req *structpb.Struct, name string, required bool) (decimal.Decimal, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		if required {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s is required", name)
		}
		return decimal.Zero, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if math.IsNaN(kind.NumberValue) || math.IsInf(kind.NumberValue, 0) {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s: must be a finite number", name)
		}
		return decimal.NewFromFloat(kind.NumberValue), nil
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(strings.TrimSpace(kind.StringValue))
		if err != nil {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", name, err)
		}
		return d, nil
	default:
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s format: expected string or number", name)
	}
}

func chartPointsToList(points []domain.ChartPoint) []interface{} {
	list := make([]interface{}, 0, len(points))
	for _, p := range points {
		list = append(list, map[string]interface{}{
			"time":  p.TimeKey(),
			"value": p.Value,
		})
	}
	return list
}

func newStruct(fields map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrNotFound) {
		return status.Errorf(codes.NotFound, "%s", err.Error())
	}

	errorMsg := err.Error()

	// Map validation errors to InvalidArgument
	if strings.Contains(errorMsg, "must be positive") ||
		strings.Contains(errorMsg, "must not be negative") ||
		strings.Contains(errorMsg, "cannot be empty") ||
		strings.HasPrefix(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "must reference") ||
		strings.Contains(errorMsg, "must have") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Error(codes.Internal, fmt.Sprintf("internal error: %s", errorMsg))
}
