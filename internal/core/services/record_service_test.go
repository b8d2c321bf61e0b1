package services_test

import (
	"context"
	"testing"

	"github.com/fxtrack/fxtrack/internal/apperrors"
	"github.com/fxtrack/fxtrack/internal/core/domain"
	portssvc "github.com/fxtrack/fxtrack/internal/core/ports/services"
	"github.com/fxtrack/fxtrack/internal/core/services"
	"github.com/fxtrack/fxtrack/internal/dto"
	"github.com/fxtrack/fxtrack/internal/utils/aggregation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RecordStore ---
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) LoadRecords(ctx context.Context) ([]domain.ExchangeRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRecord), args.Error(1)
}

func (m *MockRecordStore) SaveRecords(ctx context.Context, records []domain.ExchangeRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockRecordStore) ClearRecords(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) Rates(ctx context.Context, base string) (map[string]float64, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockRateService) Currencies(ctx context.Context, base string) ([]string, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRateService) ConversionRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

// --- Test Suite ---
type RecordServiceTestSuite struct {
	suite.Suite
	mockStore   *MockRecordStore
	mockRateSvc *MockRateService
	service     portssvc.RecordSvcFacade
}

func (suite *RecordServiceTestSuite) SetupTest() {
	suite.mockStore = new(MockRecordStore)
	suite.mockRateSvc = new(MockRateService)
	suite.service = services.NewRecordService(suite.mockStore, suite.mockRateSvc)
}

// --- Test Cases ---

func (suite *RecordServiceTestSuite) TestCreateRecord_Success() {
	ctx := context.Background()
	req := dto.CreateRecordRequest{
		Name:         "Groceries",
		Amount:       "100",
		FromCurrency: "USD",
		ToCurrency:   "PKR",
	}
	existing := []domain.ExchangeRecord{
		{RecordID: "1600000000000", Name: "older", FromCurrency: "EUR", ToCurrency: "USD"},
	}

	suite.mockRateSvc.On("ConversionRate", ctx, "USD", "PKR").Return(decimal.RequireFromString("277.5"), nil).Once()
	suite.mockStore.On("LoadRecords", ctx).Return(existing, nil).Once()
	suite.mockStore.On("SaveRecords", ctx, mock.MatchedBy(func(records []domain.ExchangeRecord) bool {
		// New record is prepended; the older one survives.
		return len(records) == 2 && records[0].Name == "Groceries" && records[1].Name == "older"
	})).Return(nil).Once()

	record, err := suite.service.CreateRecord(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.Equal("Groceries", record.Name)
	suite.Equal("USD", record.FromCurrency)
	suite.Equal("PKR", record.ToCurrency)
	suite.Equal("100", record.RealAmount.String())
	suite.Equal("277.5", record.Rate.String())
	suite.Equal("27750", record.Amount.String())
	suite.NotEmpty(record.RecordID.String())

	_, ok := aggregation.ParseRecordDate(record.Date)
	suite.True(ok, "stored date must round-trip through the record date parser")

	suite.mockStore.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestCreateRecord_ConvertedAmountRounding() {
	ctx := context.Background()
	req := dto.CreateRecordRequest{
		Name:         "Rent",
		Amount:       "33.33",
		FromCurrency: "USD",
		ToCurrency:   "EUR",
	}

	suite.mockRateSvc.On("ConversionRate", ctx, "USD", "EUR").Return(decimal.RequireFromString("0.9137"), nil).Once()
	suite.mockStore.On("LoadRecords", ctx).Return([]domain.ExchangeRecord{}, nil).Once()
	suite.mockStore.On("SaveRecords", ctx, mock.Anything).Return(nil).Once()

	record, err := suite.service.CreateRecord(ctx, req)

	suite.Require().NoError(err)
	// 33.33 * 0.9137 = 30.4536..., rounded to 2 places.
	suite.Equal("30.45", record.Amount.String())
}

func (suite *RecordServiceTestSuite) TestCreateRecord_MissingFields() {
	ctx := context.Background()
	req := dto.CreateRecordRequest{Name: "", Amount: "100", FromCurrency: "USD", ToCurrency: "PKR"}

	_, err := suite.service.CreateRecord(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Please fill all fields")
	suite.mockStore.AssertNotCalled(suite.T(), "SaveRecords", mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []string{"0", "-5", "abc"} {
		req := dto.CreateRecordRequest{Name: "x", Amount: amount, FromCurrency: "USD", ToCurrency: "PKR"}
		_, err := suite.service.CreateRecord(ctx, req)
		suite.Require().Error(err, "amount %q must be rejected", amount)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Contains(err.Error(), "positive")
	}
	suite.mockStore.AssertNotCalled(suite.T(), "SaveRecords", mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_SameCurrencies() {
	ctx := context.Background()
	req := dto.CreateRecordRequest{Name: "x", Amount: "100", FromCurrency: "USD", ToCurrency: "USD"}

	_, err := suite.service.CreateRecord(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cannot be the same")
	// The rate service is never consulted, so no record can be written.
	suite.mockRateSvc.AssertNotCalled(suite.T(), "ConversionRate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockStore.AssertNotCalled(suite.T(), "SaveRecords", mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_RateUnavailable() {
	ctx := context.Background()
	req := dto.CreateRecordRequest{Name: "x", Amount: "100", FromCurrency: "USD", ToCurrency: "XXX"}

	suite.mockRateSvc.On("ConversionRate", ctx, "USD", "XXX").Return(decimal.Zero, apperrors.ErrValidation).Once()

	_, err := suite.service.CreateRecord(ctx, req)

	suite.Require().Error(err)
	suite.mockStore.AssertNotCalled(suite.T(), "SaveRecords", mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestListRecords_NoFilter() {
	ctx := context.Background()
	records := []domain.ExchangeRecord{
		{RecordID: "2", Name: "b", FromCurrency: "USD", ToCurrency: "EUR", RealAmount: "250", Rate: "1.18", Amount: "295", Date: "6/16/2024, 1:00:00 PM"},
		{RecordID: "1", Name: "a", FromCurrency: "USD", ToCurrency: "PKR", RealAmount: "100", Rate: "277.5", Amount: "27750", Date: "6/15/2024, 3:04:05 PM"},
	}
	suite.mockStore.On("LoadRecords", ctx).Return(records, nil).Once()

	resp, err := suite.service.ListRecords(ctx, dto.ListRecordsParams{Page: 0, PageSize: 10})

	suite.Require().NoError(err)
	suite.Equal(domain.FilterNone, resp.FilterState)
	suite.Empty(resp.FilterError)
	suite.Len(resp.Records, 2)
	suite.Equal(2, resp.TotalCount)
	suite.True(decimal.NewFromInt(28045).Equal(resp.Totals.SumAmount))
}

func (suite *RecordServiceTestSuite) TestListRecords_AppliedFilter() {
	ctx := context.Background()
	records := []domain.ExchangeRecord{
		{RecordID: "2", Name: "b", FromCurrency: "USD", ToCurrency: "EUR", RealAmount: "250", Rate: "1.18", Amount: "295", Date: "6/16/2024, 1:00:00 PM"},
		{RecordID: "1", Name: "a", FromCurrency: "USD", ToCurrency: "PKR", RealAmount: "100", Rate: "277.5", Amount: "27750", Date: "6/15/2024, 3:04:05 PM"},
	}
	suite.mockStore.On("LoadRecords", ctx).Return(records, nil).Once()

	resp, err := suite.service.ListRecords(ctx, dto.ListRecordsParams{
		StartDate: "2024-06-15",
		EndDate:   "2024-06-15",
		Page:      0,
		PageSize:  10,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.FilterApplied, resp.FilterState)
	suite.Require().Len(resp.Records, 1)
	suite.Equal("a", resp.Records[0].Name)
	suite.Equal(1, resp.TotalCount)
	// Totals cover the filtered set, not the whole collection.
	suite.True(decimal.NewFromInt(27750).Equal(resp.Totals.SumAmount))
}

func (suite *RecordServiceTestSuite) TestListRecords_PairFilter() {
	ctx := context.Background()
	records := []domain.ExchangeRecord{
		{RecordID: "3", Name: "c", FromCurrency: "USD", ToCurrency: "PKR", RealAmount: "50", Rate: "278.1", Amount: "13905", Date: "6/18/2024, 9:30:00 AM"},
		{RecordID: "2", Name: "b", FromCurrency: "USD", ToCurrency: "EUR", RealAmount: "250", Rate: "1.18", Amount: "295", Date: "6/16/2024, 1:00:00 PM"},
		{RecordID: "1", Name: "a", FromCurrency: "USD", ToCurrency: "PKR", RealAmount: "100", Rate: "277.5", Amount: "27750", Date: "6/15/2024, 3:04:05 PM"},
	}
	suite.mockStore.On("LoadRecords", ctx).Return(records, nil).Once()

	resp, err := suite.service.ListRecords(ctx, dto.ListRecordsParams{
		FromCurrency: "usd",
		ToCurrency:   "pkr",
		Page:         0,
		PageSize:     10,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.FilterNone, resp.FilterState)
	suite.Require().Len(resp.Records, 2)
	suite.Equal("c", resp.Records[0].Name)
	suite.Equal("a", resp.Records[1].Name)
	suite.Equal(2, resp.TotalCount)
	// Totals cover only the pair-filtered set.
	suite.True(decimal.RequireFromString("41655").Equal(resp.Totals.SumAmount))
}

func (suite *RecordServiceTestSuite) TestListRecords_PairAndDateFilter() {
	ctx := context.Background()
	records := []domain.ExchangeRecord{
		{RecordID: "3", Name: "c", FromCurrency: "USD", ToCurrency: "PKR", RealAmount: "50", Rate: "278.1", Amount: "13905", Date: "6/18/2024, 9:30:00 AM"},
		{RecordID: "2", Name: "b", FromCurrency: "USD", ToCurrency: "EUR", RealAmount: "250", Rate: "1.18", Amount: "295", Date: "6/16/2024, 1:00:00 PM"},
		{RecordID: "1", Name: "a", FromCurrency: "USD", ToCurrency: "PKR", RealAmount: "100", Rate: "277.5", Amount: "27750", Date: "6/15/2024, 3:04:05 PM"},
	}
	suite.mockStore.On("LoadRecords", ctx).Return(records, nil).Once()

	resp, err := suite.service.ListRecords(ctx, dto.ListRecordsParams{
		StartDate:    "2024-06-17",
		EndDate:      "2024-06-18",
		FromCurrency: "USD",
		ToCurrency:   "PKR",
		Page:         0,
		PageSize:     10,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.FilterApplied, resp.FilterState)
	suite.Require().Len(resp.Records, 1)
	suite.Equal("c", resp.Records[0].Name)
	suite.Equal(1, resp.TotalCount)
}

func (suite *RecordServiceTestSuite) TestListRecords_SuspendedFilter() {
	ctx := context.Background()
	records := []domain.ExchangeRecord{
		{RecordID: "1", Name: "a", FromCurrency: "USD", ToCurrency: "PKR", RealAmount: "100", Rate: "277.5", Amount: "27750", Date: "6/15/2024, 3:04:05 PM"},
	}
	suite.mockStore.On("LoadRecords", ctx).Return(records, nil).Once()

	resp, err := suite.service.ListRecords(ctx, dto.ListRecordsParams{
		StartDate: "2024-06-20",
		EndDate:   "2024-06-15",
		Page:      0,
		PageSize:  10,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.FilterSuspended, resp.FilterState)
	suite.NotEmpty(resp.FilterError)
	// Suspended filter returns the full set untouched.
	suite.Len(resp.Records, 1)
	suite.Equal(1, resp.TotalCount)
}

func (suite *RecordServiceTestSuite) TestListRecords_OutOfRangePage() {
	ctx := context.Background()
	records := []domain.ExchangeRecord{
		{RecordID: "1", Name: "a", FromCurrency: "USD", ToCurrency: "PKR", RealAmount: "100", Rate: "277.5", Amount: "27750", Date: "6/15/2024, 3:04:05 PM"},
	}
	suite.mockStore.On("LoadRecords", ctx).Return(records, nil).Once()

	resp, err := suite.service.ListRecords(ctx, dto.ListRecordsParams{Page: 7, PageSize: 10})

	suite.Require().NoError(err)
	suite.Empty(resp.Records)
	suite.Equal(1, resp.TotalCount)
}

func (suite *RecordServiceTestSuite) TestClearRecords() {
	ctx := context.Background()
	suite.mockStore.On("ClearRecords", ctx).Return(nil).Once()

	err := suite.service.ClearRecords(ctx)

	suite.Require().NoError(err)
	suite.mockStore.AssertExpectations(suite.T())
}

func TestRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecordServiceTestSuite))
}
