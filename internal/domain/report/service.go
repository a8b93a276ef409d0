package report

import (
	"context"
	"time"

	"sic/internal/domain/record"
)

// RecordReader is the slice of the record store the reporting side needs.
type RecordReader interface {
	Fetch(ctx context.Context, f record.Filters) ([]record.ServiceRecord, error)
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]record.ServiceRecord, error)
}

// HistoryQuery holds the listing filters as received from the client.
type HistoryQuery struct {
	Period       Period
	CustomDate   *time.Time
	ServiceType  string
	Neighborhood string
	Operator     string
}

// HistoryResult is the record listing plus the filter option lists derived
// from the same filtered set.
type HistoryResult struct {
	Records       []record.ServiceRecord `json:"records"`
	Operators     []string               `json:"operators"`
	Neighborhoods []string               `json:"neighborhoods"`
}

// DashboardResult is the summary block shown on the landing view.
type DashboardResult struct {
	TotalRecords   int64                  `json:"total_records"`
	RecentRecords  []record.ServiceRecord `json:"recent_records"`
	Efficiency     float64                `json:"efficiency"`
	OperatorTotals []OperatorStat         `json:"operator_totals"`
}

type Service struct {
	records RecordReader
}

func NewService(records RecordReader) *Service {
	return &Service{records: records}
}

func (s *Service) filtersFor(q HistoryQuery, now time.Time) record.Filters {
	f := record.Filters{
		ServiceType:  q.ServiceType,
		Neighborhood: q.Neighborhood,
		Operator:     q.Operator,
	}
	if r := Resolve(q.Period, q.CustomDate, now); r != nil {
		f.Start = &r.Start
		f.End = &r.End
	}
	return f
}

// History returns the filtered records, duplicates marked, with the distinct
// operator and neighborhood lists for the same set.
func (s *Service) History(ctx context.Context, q HistoryQuery) (*HistoryResult, error) {
	records, err := s.records.Fetch(ctx, s.filtersFor(q, time.Now()))
	if err != nil {
		return nil, err
	}
	marked := MarkDuplicates(records)
	return &HistoryResult{
		Records:       marked,
		Operators:     DisplayOperators(marked),
		Neighborhoods: DistinctNeighborhoods(marked),
	}, nil
}

// OperatorStats aggregates per-operator totals over the period. Only the
// date range applies; other filters are ignored here.
func (s *Service) OperatorStats(ctx context.Context, period Period, customDate *time.Time) ([]OperatorStat, error) {
	var f record.Filters
	if r := Resolve(period, customDate, time.Now()); r != nil {
		f.Start = &r.Start
		f.End = &r.End
	}
	records, err := s.records.Fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	return AggregateByOperator(records, NominalDays(period)), nil
}

// DailyCounts buckets the period's records by calendar day.
func (s *Service) DailyCounts(ctx context.Context, period Period, customDate *time.Time) ([]DailyCount, error) {
	var f record.Filters
	if r := Resolve(period, customDate, time.Now()); r != nil {
		f.Start = &r.Start
		f.End = &r.End
	}
	records, err := s.records.Fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	return CountByDay(records), nil
}

const dashboardRecentLimit = 5

// Dashboard builds the summary block: overall total, the five most recent
// records, slot-reporting efficiency over the last 30 days, and all-time
// operator totals.
func (s *Service) Dashboard(ctx context.Context) (*DashboardResult, error) {
	total, err := s.records.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.records.Recent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	start := now.AddDate(0, 0, -30)
	monthly, err := s.records.Fetch(ctx, record.Filters{Start: &start, End: &now})
	if err != nil {
		return nil, err
	}

	withSlots := 0
	for i := range monthly {
		if monthly[i].SlotsCount() > 0 {
			withSlots++
		}
	}
	efficiency := 0.0
	if len(monthly) > 0 {
		efficiency = float64(withSlots) / float64(len(monthly)) * 100
	}

	all, err := s.records.Fetch(ctx, record.Filters{})
	if err != nil {
		return nil, err
	}

	return &DashboardResult{
		TotalRecords:   total,
		RecentRecords:  MarkDuplicates(recent),
		Efficiency:     efficiency,
		OperatorTotals: AggregateByOperator(all, 1),
	}, nil
}

// Export renders the filtered records as a spreadsheet.
func (s *Service) Export(ctx context.Context, q HistoryQuery) ([]byte, string, error) {
	now := time.Now()
	records, err := s.records.Fetch(ctx, s.filtersFor(q, now))
	if err != nil {
		return nil, "", err
	}
	data, err := WriteXLSX(records)
	if err != nil {
		return nil, "", err
	}
	return data, ExportFilename(now), nil
}
