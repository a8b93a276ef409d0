package report

import (
	"testing"
	"time"

	"sic/internal/domain/record"

	"github.com/stretchr/testify/assert"
)

func opRec(operator string, at time.Time) record.ServiceRecord {
	return record.ServiceRecord{OperatorName: operator, CreatedAt: at}
}

func TestAggregateByOperator(t *testing.T) {
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	records := []record.ServiceRecord{
		opRec("Ana", base),
		opRec("Bob", base),
		opRec("Ana", base.Add(time.Hour)),
	}

	stats := AggregateByOperator(records, 7)

	assert.Len(t, stats, 2)
	assert.Equal(t, "Ana", stats[0].OperatorName)
	assert.Equal(t, 2, stats[0].TotalServices)
	assert.InDelta(t, 66.67, stats[0].Percentage, 0.01)
	assert.InDelta(t, 2.0/7.0, stats[0].DailyAverage, 0.001)
	assert.Equal(t, "Bob", stats[1].OperatorName)
	assert.Equal(t, 1, stats[1].TotalServices)
	assert.InDelta(t, 33.33, stats[1].Percentage, 0.01)
}

func TestAggregateByOperatorSkipsEmptyNames(t *testing.T) {
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	records := []record.ServiceRecord{
		opRec("", base),
		opRec("Ana", base),
	}

	stats := AggregateByOperator(records, 1)

	assert.Len(t, stats, 1)
	assert.Equal(t, "Ana", stats[0].OperatorName)
	assert.InDelta(t, 100.0, stats[0].Percentage, 0.001)
}

func TestAggregateByOperatorCaseSensitiveKeys(t *testing.T) {
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	records := []record.ServiceRecord{
		opRec("ana", base),
		opRec("ANA", base),
	}

	stats := AggregateByOperator(records, 1)

	assert.Len(t, stats, 2)
}

func TestAggregateByOperatorEmpty(t *testing.T) {
	stats := AggregateByOperator(nil, 7)
	assert.Empty(t, stats)
}

func TestDisplayOperators(t *testing.T) {
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	records := []record.ServiceRecord{
		opRec("ana", base),
		opRec("ANA", base),
		opRec("bob", base),
		opRec("", base),
	}

	names := DisplayOperators(records)

	assert.Equal(t, []string{"Ana", "Bob"}, names)
}

func TestDistinctNeighborhoods(t *testing.T) {
	records := []record.ServiceRecord{
		{Neighborhood: "Centro"},
		{Neighborhood: "Jardim"},
		{Neighborhood: "Centro"},
		{Neighborhood: ""},
	}

	names := DistinctNeighborhoods(records)

	assert.Equal(t, []string{"Centro", "Jardim"}, names)
}

func TestCountByDay(t *testing.T) {
	records := []record.ServiceRecord{
		opRec("Ana", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)),
		opRec("Ana", time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC)),
		opRec("Bob", time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)),
	}

	counts := CountByDay(records)

	assert.Equal(t, []DailyCount{
		{Date: "2024-03-14", Count: 1},
		{Date: "2024-03-15", Count: 2},
	}, counts)
}
