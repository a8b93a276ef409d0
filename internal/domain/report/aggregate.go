package report

import (
	"sort"
	"strings"
	"unicode"

	"sic/internal/domain/record"
)

type OperatorStat struct {
	OperatorName  string  `json:"operator_name"`
	TotalServices int     `json:"total_services"`
	Percentage    float64 `json:"percentage"`
	DailyAverage  float64 `json:"daily_average"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AggregateByOperator tallies records per operator name (exact string match,
// no normalization) and computes percentage of the scope total and a daily
// average over the nominal period length. Records with an empty operator
// name are ignored. Sorted descending by total; ties keep encounter order.
func AggregateByOperator(records []record.ServiceRecord, daysInPeriod int) []OperatorStat {
	if daysInPeriod < 1 {
		daysInPeriod = 1
	}

	counts := make(map[string]int)
	var order []string
	total := 0
	for i := range records {
		name := records[i].OperatorName
		if name == "" {
			continue
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
		total++
	}

	stats := make([]OperatorStat, 0, len(order))
	for _, name := range order {
		n := counts[name]
		pct := 0.0
		if total > 0 {
			pct = float64(n) / float64(total) * 100
		}
		stats = append(stats, OperatorStat{
			OperatorName:  name,
			TotalServices: n,
			Percentage:    pct,
			DailyAverage:  float64(n) / float64(daysInPeriod),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalServices > stats[j].TotalServices
	})

	return stats
}

// DisplayOperators builds the distinct operator list for filter dropdowns.
// Names are lower-cased with the first rune capitalized. This casing is
// display-only and never applied to aggregation keys.
func DisplayOperators(records []record.ServiceRecord) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range records {
		if records[i].OperatorName == "" {
			continue
		}
		name := displayCase(records[i].OperatorName)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// DistinctNeighborhoods returns the sorted distinct neighborhood list for
// filter dropdowns, as stored.
func DistinctNeighborhoods(records []record.ServiceRecord) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range records {
		if records[i].Neighborhood == "" {
			continue
		}
		if !seen[records[i].Neighborhood] {
			seen[records[i].Neighborhood] = true
			names = append(names, records[i].Neighborhood)
		}
	}
	sort.Strings(names)
	return names
}

// CountByDay buckets records per calendar day (yyyy-MM-dd), sorted by date.
func CountByDay(records []record.ServiceRecord) []DailyCount {
	counts := make(map[string]int)
	for i := range records {
		counts[records[i].CreatedAt.Format("2006-01-02")]++
	}

	out := make([]DailyCount, 0, len(counts))
	for date, n := range counts {
		out = append(out, DailyCount{Date: date, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func displayCase(name string) string {
	lower := strings.ToLower(name)
	runes := []rune(lower)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}
