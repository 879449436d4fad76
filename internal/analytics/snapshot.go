package analytics

import (
	"context"
	"fmt"

	"folio/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SheetSource supplies raw sheets by name. Sheets it does not have are
// left out of the result rather than reported as errors.
type SheetSource interface {
	LoadSheets(ctx context.Context, names []string) (models.Sheets, error)
}

// allocationTolerance is how far, in percentage points, a bucket set may
// drift from 100 before a warning is logged.
var allocationTolerance = decimal.NewFromInt(1)

// Snapshot is the normalized portfolio. It is built once and never
// modified, so it is safe for concurrent readers. Accessors return copies.
type Snapshot struct {
	holdings   []models.Holding
	allocation models.Allocation
	timeline   []models.TimelinePoint
	returns    models.ReturnsTable
	summary    models.Summary
}

// LoadSnapshot reads the required sheets from src and normalizes them.
func LoadSnapshot(ctx context.Context, src SheetSource, log *logrus.Logger) (*Snapshot, error) {
	sheets, err := src.LoadSheets(ctx, RequiredSheets)
	if err != nil {
		return nil, fmt.Errorf("load sheets: %w", err)
	}
	return NewSnapshot(sheets, log)
}

// NewSnapshot normalizes raw sheets. Any ingestion error is returned and
// no partial snapshot is produced.
func NewSnapshot(sheets models.Sheets, log *logrus.Logger) (*Snapshot, error) {
	raw := make(map[string][]models.Row, len(RequiredSheets))
	for _, name := range RequiredSheets {
		rows, err := requireSheet(sheets, name)
		if err != nil {
			return nil, err
		}
		raw[name] = rows
	}

	holdings, err := NormalizeHoldings(raw[SheetHoldings])
	if err != nil {
		return nil, err
	}
	bySector, err := NormalizeAllocation(SheetSectorAllocation, colSector, raw[SheetSectorAllocation])
	if err != nil {
		return nil, err
	}
	byMarketCap, err := NormalizeAllocation(SheetMarketCap, colMarketCap, raw[SheetMarketCap])
	if err != nil {
		return nil, err
	}
	timeline, err := NormalizeTimeline(raw[SheetPerformance])
	if err != nil {
		return nil, err
	}
	returns, err := CalculateReturns(timeline)
	if err != nil {
		return nil, err
	}
	summary, err := BuildSummary(raw[SheetSummary], raw[SheetTopPerformers])
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		holdings:   holdings,
		allocation: models.Allocation{BySector: bySector, ByMarketCap: byMarketCap},
		timeline:   timeline,
		returns:    returns,
		summary:    summary,
	}
	s.logDrift(log)
	return s, nil
}

func (s *Snapshot) logDrift(log *logrus.Logger) {
	if log == nil {
		return
	}
	for name, bucket := range map[string]models.AllocationBucket{
		SheetSectorAllocation: s.allocation.BySector,
		SheetMarketCap:        s.allocation.ByMarketCap,
	} {
		total := decimal.Zero
		for _, e := range bucket {
			total = total.Add(e.Percentage)
		}
		if len(bucket) > 0 && total.Sub(hundred).Abs().GreaterThan(allocationTolerance) {
			log.WithFields(logrus.Fields{"sheet": name, "total": total.StringFixed(2)}).
				Warn("allocation percentages do not sum to 100")
		}
	}
	if s.summary.NumberOfHoldings != int64(len(s.holdings)) {
		log.WithFields(logrus.Fields{
			"summary":  s.summary.NumberOfHoldings,
			"holdings": len(s.holdings),
		}).Warn("summary holding count differs from holdings sheet")
	}
	log.WithFields(logrus.Fields{
		"holdings": len(s.holdings),
		"timeline": len(s.timeline),
	}).Info("portfolio snapshot loaded")
}

// Holdings returns every holding in ingestion order.
func (s *Snapshot) Holdings() []models.Holding {
	out := make([]models.Holding, len(s.holdings))
	copy(out, s.holdings)
	return out
}

func (s *Snapshot) Allocation() models.Allocation {
	return models.Allocation{
		BySector:    copyBucket(s.allocation.BySector),
		ByMarketCap: copyBucket(s.allocation.ByMarketCap),
	}
}

func copyBucket(b models.AllocationBucket) models.AllocationBucket {
	out := make(models.AllocationBucket, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func (s *Snapshot) Performance() models.Performance {
	returns := make(models.ReturnsTable, len(s.returns))
	for series, windows := range s.returns {
		w := make(map[models.Window]models.Return, len(windows))
		for k, v := range windows {
			w[k] = v
		}
		returns[series] = w
	}
	timeline := make([]models.TimelinePoint, len(s.timeline))
	copy(timeline, s.timeline)
	return models.Performance{
		Timeline: timeline,
		Returns:  returns,
	}
}

func (s *Snapshot) Summary() models.Summary {
	return s.summary
}

// Query returns the filtered, sorted view of the holdings.
func (s *Snapshot) Query(q models.QueryState) []models.Holding {
	return ApplyQuery(s.holdings, q)
}

// Alert evaluates the default alert rules against the holdings.
func (s *Snapshot) Alert() *models.Alert {
	return EvaluateAlert(s.holdings, DefaultAlertRules)
}

func (s *Snapshot) Filters() models.FilterOptions {
	return Filters(s.holdings)
}

// Export returns the export records for the view selected by q.
func (s *Snapshot) Export(q models.QueryState) []ExportRecord {
	return ExportRecords(ApplyQuery(s.holdings, q))
}
