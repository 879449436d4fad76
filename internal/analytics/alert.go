package analytics

import (
	"fmt"

	"folio/internal/models"

	"github.com/shopspring/decimal"
)

var (
	GainAlertThreshold = decimal.NewFromInt(20)
	LossAlertThreshold = decimal.NewFromInt(-10)
)

// AlertRule pairs a threshold predicate with the message it raises.
type AlertRule struct {
	Kind    models.AlertKind
	Matches func(h models.Holding) bool
	Message func(h models.Holding) string
}

// DefaultAlertRules are in priority order: a large gain anywhere in the
// portfolio outranks any loss.
var DefaultAlertRules = []AlertRule{
	{
		Kind:    models.AlertGain,
		Matches: func(h models.Holding) bool { return h.GainLossPercent.GreaterThan(GainAlertThreshold) },
		Message: func(h models.Holding) string {
			return fmt.Sprintf("Alert: Holding %s gained over %s%% (%s%%)", h.Symbol, GainAlertThreshold, h.GainLossPercent.StringFixed(1))
		},
	},
	{
		Kind:    models.AlertLoss,
		Matches: func(h models.Holding) bool { return h.GainLossPercent.LessThan(LossAlertThreshold) },
		Message: func(h models.Holding) string {
			return fmt.Sprintf("Alert: Holding %s lost over %s%% (%s%%)", h.Symbol, LossAlertThreshold.Abs(), h.GainLossPercent.StringFixed(1))
		},
	},
}

// EvaluateAlert scans the holdings once per rule, in rule order, and
// returns the alert for the first holding matching the first rule that
// matches at all. It returns nil when no rule matches.
func EvaluateAlert(holdings []models.Holding, rules []AlertRule) *models.Alert {
	for _, rule := range rules {
		for _, h := range holdings {
			if !rule.Matches(h) {
				continue
			}
			return &models.Alert{
				Kind:            rule.Kind,
				HoldingSymbol:   h.Symbol,
				GainLossPercent: h.GainLossPercent,
				Message:         rule.Message(h),
			}
		}
	}
	return nil
}
