package getlatestpfhrassessment

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"pfhr-workers/internal/common/errors"
	"pfhr-workers/internal/common/logger"
	"pfhr-workers/internal/models"
	"pfhr-workers/internal/pfhr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cacheKey = "pfhr:latest:user-123"
	cacheTTL = 30 * time.Minute
)

var columns = []string{"id", "user_id", "inputs", "score", "risk_level", "breakdown", "recommendations", "created_at"}

func createTestHandler(t *testing.T, db *sql.DB, redisClient *redis.Client) *Handler {
	t.Helper()
	return NewHandler(&Config{Enabled: true, Timeout: 5 * time.Second, CacheTTL: cacheTTL}, db, redisClient, logger.NewTestLogger(t))
}

func createAssessment() *models.Assessment {
	return &models.Assessment{
		ID:     "7f1c2a9e-0000-4000-8000-000000000001",
		UserID: "user-123",
		Inputs: pfhr.Inputs{
			MonthlyIncome:        500000,
			MonthlyExpenses:      400000,
			EmergencyFund:        100000,
			TotalDebt:            10000000,
			MonthlyDebtPayments:  200000,
			InvestmentExperience: pfhr.ExperienceBeginner,
			RiskTolerance:        pfhr.ToleranceConservative,
			Age:                  30,
		},
		Score:     21.43,
		RiskLevel: pfhr.RiskHigh,
		Breakdown: pfhr.Breakdown{
			EmergencyFundScore:      4.17,
			SavingsRateScore:        0,
			FinancialKnowledgeScore: 50,
		},
		Recommendations: []string{"Pay down high-interest debt first to lower your monthly debt payments"},
		CreatedAt:       time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}

func assessmentRow(a *models.Assessment) *sqlmock.Rows {
	inputs, _ := json.Marshal(a.Inputs)
	breakdown, _ := json.Marshal(a.Breakdown)
	recs, _ := json.Marshal(a.Recommendations)
	return sqlmock.NewRows(columns).
		AddRow(a.ID, a.UserID, inputs, a.Score, string(a.RiskLevel), breakdown, recs, a.CreatedAt)
}

func assertSameAssessment(t *testing.T, expected, actual *models.Assessment) {
	t.Helper()
	require.NotNil(t, actual)
	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.UserID, actual.UserID)
	assert.Equal(t, expected.Inputs, actual.Inputs)
	assert.Equal(t, expected.Score, actual.Score)
	assert.Equal(t, expected.RiskLevel, actual.RiskLevel)
	assert.Equal(t, expected.Breakdown, actual.Breakdown)
	assert.Equal(t, expected.Recommendations, actual.Recommendations)
	assert.True(t, expected.CreatedAt.Equal(actual.CreatedAt))
}

func TestHandler_Execute_CacheHit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	redisClient, redisMock := redismock.NewClientMock()

	expected := createAssessment()
	data, _ := json.Marshal(expected)
	redisMock.ExpectGet(cacheKey).SetVal(string(data))

	output, err := createTestHandler(t, db, redisClient).Execute(context.Background(), &Input{UserID: "user-123"})

	require.NoError(t, err)
	assert.True(t, output.Found)
	assert.Equal(t, SourceCache, output.Source)
	assertSameAssessment(t, expected, output.Assessment)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestHandler_Execute_CacheMissReadsThrough(t *testing.T) {
	tests := []struct {
		name       string
		setupCache func(m redismock.ClientMock)
	}{
		{
			name:       "key absent",
			setupCache: func(m redismock.ClientMock) { m.ExpectGet(cacheKey).RedisNil() },
		},
		{
			name:       "redis unavailable",
			setupCache: func(m redismock.ClientMock) { m.ExpectGet(cacheKey).SetErr(stderrors.New("connection refused")) },
		},
		{
			name:       "corrupt entry",
			setupCache: func(m redismock.ClientMock) { m.ExpectGet(cacheKey).SetVal("{not json") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			redisClient, redisMock := redismock.NewClientMock()

			expected := createAssessment()
			tt.setupCache(redisMock)
			mock.ExpectQuery(`SELECT id, user_id, inputs, score, risk_level, breakdown, recommendations, created_at\s+FROM pfhr_assessments`).
				WithArgs("user-123").
				WillReturnRows(assessmentRow(expected))
			data, _ := json.Marshal(expected)
			redisMock.ExpectSet(cacheKey, data, cacheTTL).SetVal("OK")

			output, err := createTestHandler(t, db, redisClient).Execute(context.Background(), &Input{UserID: "user-123"})

			require.NoError(t, err)
			assert.True(t, output.Found)
			assert.Equal(t, SourceDatabase, output.Source)
			assertSameAssessment(t, expected, output.Assessment)
			assert.NoError(t, mock.ExpectationsWereMet())
			assert.NoError(t, redisMock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	redisClient, redisMock := redismock.NewClientMock()

	redisMock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectQuery(`FROM pfhr_assessments`).
		WithArgs("user-123").
		WillReturnRows(sqlmock.NewRows(columns))

	output, err := createTestHandler(t, db, redisClient).Execute(context.Background(), &Input{UserID: "user-123"})

	require.NoError(t, err)
	assert.False(t, output.Found)
	assert.Nil(t, output.Assessment)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestHandler_Execute_DatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	redisClient, redisMock := redismock.NewClientMock()

	redisMock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectQuery(`FROM pfhr_assessments`).
		WithArgs("user-123").
		WillReturnError(stderrors.New("relation does not exist"))

	output, err := createTestHandler(t, db, redisClient).Execute(context.Background(), &Input{UserID: "user-123"})

	assert.Nil(t, output)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_Execute_WithoutCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expected := createAssessment()
	mock.ExpectQuery(`FROM pfhr_assessments`).
		WithArgs("user-123").
		WillReturnRows(assessmentRow(expected))

	output, err := createTestHandler(t, db, nil).Execute(context.Background(), &Input{UserID: "user-123"})

	require.NoError(t, err)
	assertSameAssessment(t, expected, output.Assessment)
}

func TestHandler_Execute_MissingUser(t *testing.T) {
	_, err := createTestHandler(t, nil, nil).Execute(context.Background(), &Input{})

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
}
