package models

import "github.com/shopspring/decimal"

type Holding struct {
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	Quantity        int64           `json:"quantity"`
	AvgPrice        decimal.Decimal `json:"avgPrice"`
	CurrentPrice    decimal.Decimal `json:"currentPrice"`
	Sector          string          `json:"sector"`
	MarketCap       string          `json:"marketCap"`
	Exchange        string          `json:"exchange"`
	Value           decimal.Decimal `json:"value"`
	GainLoss        decimal.Decimal `json:"gainLoss"`
	GainLossPercent decimal.Decimal `json:"gainLossPercent"`
}

type AllocationEntry struct {
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AllocationBucket maps a category label to its share of the portfolio.
type AllocationBucket map[string]AllocationEntry

type Allocation struct {
	BySector    AllocationBucket `json:"bySector"`
	ByMarketCap AllocationBucket `json:"byMarketCap"`
}

type TimelinePoint struct {
	Date               string          `json:"date"`
	Portfolio          decimal.Decimal `json:"portfolio"`
	BenchmarkIndex     decimal.Decimal `json:"benchmarkIndex"`
	CommodityReference decimal.Decimal `json:"commodityReference"`
}

type Performer struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	GainPercent decimal.Decimal `json:"gainPercent"`
}

type Summary struct {
	TotalValue           decimal.Decimal `json:"totalValue"`
	TotalInvested        decimal.Decimal `json:"totalInvested"`
	TotalGainLoss        decimal.Decimal `json:"totalGainLoss"`
	TotalGainLossPercent decimal.Decimal `json:"totalGainLossPercent"`
	NumberOfHoldings     int64           `json:"numberOfHoldings"`
	DiversificationScore Label           `json:"diversificationScore"`
	RiskLevel            Label           `json:"riskLevel"`
	TopPerformer         Performer       `json:"topPerformer"`
	WorstPerformer       Performer       `json:"worstPerformer"`
}

type AlertKind string

const (
	AlertGain AlertKind = "gain"
	AlertLoss AlertKind = "loss"
)

type Alert struct {
	Kind            AlertKind       `json:"kind"`
	HoldingSymbol   string          `json:"holdingSymbol"`
	GainLossPercent decimal.Decimal `json:"gainLossPercent"`
	Message         string          `json:"message"`
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// QueryState is owned by the caller; the query engine only reads it.
type QueryState struct {
	SearchText      string        `form:"search" json:"search"`
	SectorFilter    string        `form:"sector" json:"sector"`
	MarketCapFilter string        `form:"marketCap" json:"marketCap"`
	SortKey         string        `form:"sort" json:"sort"`
	SortDirection   SortDirection `form:"direction" json:"direction"`
}

type FilterOptions struct {
	Sectors    []string `json:"sectors"`
	MarketCaps []string `json:"marketCaps"`
}
