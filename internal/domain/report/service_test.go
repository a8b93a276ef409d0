package report

import (
	"context"
	"testing"
	"time"

	"sic/internal/domain/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockReader struct {
	mock.Mock
}

func (m *mockReader) Fetch(ctx context.Context, f record.Filters) ([]record.ServiceRecord, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]record.ServiceRecord), args.Error(1)
}

func (m *mockReader) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReader) Recent(ctx context.Context, limit int) ([]record.ServiceRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]record.ServiceRecord), args.Error(1)
}

func TestHistoryMarksDuplicatesAndBuildsFilterLists(t *testing.T) {
	reader := new(mockReader)
	svc := NewService(reader)

	base := time.Now().Add(-2 * time.Hour)
	reader.On("Fetch", mock.Anything, mock.MatchedBy(func(f record.Filters) bool {
		return f.Start == nil && f.End == nil && f.Operator == "ana"
	})).Return([]record.ServiceRecord{
		{ContractNumber: "C-1", OperatorName: "ana", Neighborhood: "Centro", CreatedAt: base},
		{ContractNumber: "C-1", OperatorName: "ANA", Neighborhood: "Aldeota", CreatedAt: base.Add(30 * time.Minute)},
	}, nil)

	result, err := svc.History(context.Background(), HistoryQuery{Period: PeriodAll, Operator: "ana"})

	assert.NoError(t, err)
	assert.Len(t, result.Records, 2)
	assert.True(t, result.Records[0].IsDuplicate)
	assert.True(t, result.Records[1].IsDuplicate)
	assert.Equal(t, []string{"Ana"}, result.Operators)
	assert.Equal(t, []string{"Aldeota", "Centro"}, result.Neighborhoods)
}

func TestHistoryAppliesDateRange(t *testing.T) {
	reader := new(mockReader)
	svc := NewService(reader)

	reader.On("Fetch", mock.Anything, mock.MatchedBy(func(f record.Filters) bool {
		return f.Start != nil && f.End != nil
	})).Return([]record.ServiceRecord{}, nil)

	_, err := svc.History(context.Background(), HistoryQuery{Period: PeriodToday})

	assert.NoError(t, err)
	reader.AssertExpectations(t)
}

func TestOperatorStatsUsesNominalDays(t *testing.T) {
	reader := new(mockReader)
	svc := NewService(reader)

	now := time.Now()
	reader.On("Fetch", mock.Anything, mock.Anything).Return([]record.ServiceRecord{
		{OperatorName: "Ana", CreatedAt: now},
		{OperatorName: "Ana", CreatedAt: now},
		{OperatorName: "Bob", CreatedAt: now},
	}, nil)

	stats, err := svc.OperatorStats(context.Background(), PeriodWeek, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Ana", stats[0].OperatorName)
	assert.InDelta(t, 2.0/7.0, stats[0].DailyAverage, 0.001)
}

func TestDashboard(t *testing.T) {
	reader := new(mockReader)
	svc := NewService(reader)

	now := time.Now()
	monthly := []record.ServiceRecord{
		{AvailableSlots: "3", CreatedAt: now},
		{AvailableSlots: "0", CreatedAt: now},
		{AvailableSlots: "", CreatedAt: now},
		{AvailableSlots: "5", CreatedAt: now},
	}
	reader.On("Count", mock.Anything).Return(int64(42), nil)
	reader.On("Recent", mock.Anything, dashboardRecentLimit).Return([]record.ServiceRecord{
		{ContractNumber: "C-9", CreatedAt: now},
	}, nil)
	reader.On("Fetch", mock.Anything, mock.MatchedBy(func(f record.Filters) bool {
		return f.Start != nil
	})).Return(monthly, nil).Once()
	reader.On("Fetch", mock.Anything, mock.MatchedBy(func(f record.Filters) bool {
		return f.Start == nil
	})).Return(monthly, nil).Once()

	result, err := svc.Dashboard(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), result.TotalRecords)
	assert.Len(t, result.RecentRecords, 1)
	assert.InDelta(t, 50.0, result.Efficiency, 0.001)
}
