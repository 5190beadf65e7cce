// Package alerts serves the expiry and restock alert pages: both feeds come
// from the upstream, classification and window filtering happen here.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
	"github.com/dogarmed/storefront/internal/domain/urgency"
	"github.com/dogarmed/storefront/internal/service/handoff"
)

// DefaultUnitCost prices auto-order lines and handed-off restock items when
// the prediction feed carries no price.
const DefaultUnitCost = 100.0

// Handoff kinds produced by this package.
const (
	KindExpirySelection  = "expiryProducts"
	KindRestockSelection = "restockProducts"
)

// BackendAPI is the slice of the upstream client the alert pages need.
type BackendAPI interface {
	ExpiryAlerts(ctx context.Context) ([]models.ExpiryAlert, error)
	PredictRestocks(ctx context.Context) ([]models.RestockPrediction, error)
	SaveAutoOrder(ctx context.Context, lines []models.AutoOrderLine) (int64, error)
}

// ValidationError marks a locally rejected payload; handlers map it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ExpiryFilter narrows the expiry alert list. Window is one of "", "all",
// "expired", "day", "week", "month".
type ExpiryFilter struct {
	Window string
	Search string
}

// Service owns the alert pages' logic.
type Service struct {
	backend BackendAPI
	handoff *handoff.Service
	logger  *zap.Logger
}

// NewService wires an alerts service instance.
func NewService(backend BackendAPI, hs *handoff.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, handoff: hs, logger: logger}
}

// ExpiryAlerts fetches the expiry feed, classifies every row and applies the
// window/search filter. Expired rows always sort ahead of expiring ones.
func (s *Service) ExpiryAlerts(ctx context.Context, filter ExpiryFilter) ([]models.ExpiryAlert, error) {
	alerts, err := s.backend.ExpiryAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expiry alerts: %w", err)
	}

	for i := range alerts {
		alerts[i].WarningBand = string(urgency.ClassifyExpiry(alerts[i].TimeToExpiry))
		alerts[i].ExpiryText = urgency.ExpiryText(alerts[i].TimeToExpiry)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].TimeToExpiry < 0 && alerts[j].TimeToExpiry >= 0
	})

	return FilterExpiry(alerts, filter), nil
}

// FilterExpiry applies a window and search filter to classified alerts. The
// day/week/month windows are upper bounds only, so expired stock shows up in
// every one of them.
func FilterExpiry(alerts []models.ExpiryAlert, filter ExpiryFilter) []models.ExpiryAlert {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.ExpiryAlert, 0, len(alerts))
	for _, a := range alerts {
		if !inWindow(a.TimeToExpiry, filter.Window) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.ProductName), search) &&
			!strings.Contains(strings.ToLower(a.Demand), search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func inWindow(days float64, window string) bool {
	switch window {
	case "", "all":
		return true
	case "expired":
		return days < 0
	case "day":
		return days <= 1
	case "week":
		return days <= 7
	case "month":
		return days <= 30
	default:
		return true
	}
}

// RestockPredictions fetches the forecast, sorts it most-urgent first and
// attaches a RestockLevel to every row.
func (s *Service) RestockPredictions(ctx context.Context) ([]models.RestockPrediction, error) {
	predictions, err := s.backend.PredictRestocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load restock predictions: %w", err)
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].PredictedDays < predictions[j].PredictedDays
	})
	for i := range predictions {
		predictions[i].Urgency = string(urgency.ClassifyRestock(predictions[i].PredictedDays))
	}
	return predictions, nil
}

// SaveAutoOrder persists the given predictions upstream as an automatic
// purchase order and returns the upstream order id.
func (s *Service) SaveAutoOrder(ctx context.Context, predictions []models.RestockPrediction) (int64, error) {
	if len(predictions) == 0 {
		return 0, &ValidationError{Reason: "no predictions selected"}
	}

	lines := make([]models.AutoOrderLine, 0, len(predictions))
	for _, p := range predictions {
		lines = append(lines, models.AutoOrderLine{
			ProductID:           p.ProductID,
			PredictionID:        p.ProductID,
			RecommendedQuantity: p.RecommendedQuantity,
			EstimatedCost:       float64(p.RecommendedQuantity) * DefaultUnitCost,
		})
	}

	id, err := s.backend.SaveAutoOrder(ctx, lines)
	if err != nil {
		return 0, err
	}

	s.logger.Info("auto order saved",
		zap.Int64("auto_order_id", id),
		zap.Int("lines", len(lines)))
	return id, nil
}

// StashRestockSelection hands selected predictions to the order page as
// cart-ready lines and returns the handoff key.
func (s *Service) StashRestockSelection(ctx context.Context, predictions []models.RestockPrediction) (string, error) {
	if len(predictions) == 0 {
		return "", &ValidationError{Reason: "no predictions selected"}
	}

	lines := make([]models.CartLine, 0, len(predictions))
	for _, p := range predictions {
		qty := p.RecommendedQuantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, models.CartLine{
			ProductID: p.ProductID,
			Name:      p.ProductName,
			Price:     DefaultUnitCost,
			Quantity:  qty,
		})
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode restock selection: %w", err)
	}
	return s.handoff.Stash(ctx, KindRestockSelection, payload)
}

// StashExpirySelection hands selected expiry alerts to the order page as
// cart-ready lines and returns the handoff key.
func (s *Service) StashExpirySelection(ctx context.Context, alerts []models.ExpiryAlert) (string, error) {
	if len(alerts) == 0 {
		return "", &ValidationError{Reason: "no products selected"}
	}

	lines := make([]models.CartLine, 0, len(alerts))
	for _, a := range alerts {
		lines = append(lines, models.CartLine{
			ProductID: a.ProductID,
			Name:      a.ProductName,
			Price:     DefaultUnitCost,
			Quantity:  1,
		})
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode expiry selection: %w", err)
	}
	return s.handoff.Stash(ctx, KindExpirySelection, payload)
}

// Digest summarizes both feeds for the scheduled digest log.
func (s *Service) Digest(ctx context.Context) (models.AlertDigest, error) {
	alerts, err := s.backend.ExpiryAlerts(ctx)
	if err != nil {
		return models.AlertDigest{}, fmt.Errorf("load expiry alerts: %w", err)
	}
	predictions, err := s.backend.PredictRestocks(ctx)
	if err != nil {
		return models.AlertDigest{}, fmt.Errorf("load restock predictions: %w", err)
	}

	digest := models.AlertDigest{
		TotalExpiring:  len(alerts),
		TotalPredicted: len(predictions),
	}
	for _, a := range alerts {
		switch urgency.ClassifyExpiry(a.TimeToExpiry) {
		case urgency.BandExpired:
			digest.ExpiredCount++
		case urgency.BandDay:
			digest.DayCount++
		case urgency.BandWeek:
			digest.WeekCount++
		case urgency.BandMonth:
			digest.MonthCount++
		}
	}
	for _, p := range predictions {
		switch urgency.ClassifyRestock(p.PredictedDays) {
		case urgency.RestockUrgent:
			digest.UrgentRestocks++
		case urgency.RestockHigh:
			digest.HighRestocks++
		}
	}
	return digest, nil
}
