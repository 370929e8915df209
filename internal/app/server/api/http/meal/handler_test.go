package meal

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/server/api/http/middleware/auth"
	"weightloss/internal/domain/logbook"
	"weightloss/internal/domain/meal"
	"weightloss/internal/domain/user"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, uid string) ([]meal.CustomMeal, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).([]meal.CustomMeal), args.Error(1)
}

func (m *MockService) Find(ctx context.Context, uid, id string) (meal.CustomMeal, error) {
	args := m.Called(ctx, uid, id)
	return args.Get(0).(meal.CustomMeal), args.Error(1)
}

func (m *MockService) Save(ctx context.Context, uid string, cm meal.CustomMeal) (meal.CustomMeal, error) {
	args := m.Called(ctx, uid, cm)
	return args.Get(0).(meal.CustomMeal), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, uid, id string) error {
	return m.Called(ctx, uid, id).Error(0)
}

type MockLogService struct {
	mock.Mock
}

func (m *MockLogService) List(ctx context.Context, uid, date string) ([]logbook.Log, error) {
	args := m.Called(ctx, uid, date)
	return args.Get(0).([]logbook.Log), args.Error(1)
}

func (m *MockLogService) Find(ctx context.Context, uid, id string) (logbook.Log, error) {
	args := m.Called(ctx, uid, id)
	return args.Get(0).(logbook.Log), args.Error(1)
}

func (m *MockLogService) Save(ctx context.Context, uid string, l logbook.Log) (logbook.Log, error) {
	args := m.Called(ctx, uid, l)
	return args.Get(0).(logbook.Log), args.Error(1)
}

func (m *MockLogService) Delete(ctx context.Context, uid, id string) error {
	return m.Called(ctx, uid, id).Error(0)
}

func asUser(ctx huma.Context, next func(huma.Context)) {
	next(huma.WithContext(ctx, auth.WithSession(ctx.Context(), user.Session{UID: "u1"})))
}

func setup(t *testing.T) (humatest.TestAPI, *MockService, *MockLogService) {
	_, api := humatest.New(t)
	svc := new(MockService)
	logs := new(MockLogService)
	NewHandler(svc, logs, slog.Default(), huma.Middlewares{asUser}).SetupRoutes(api)
	return api, svc, logs
}

var oats = meal.CustomMeal{ID: "m1", UID: "u1", Name: "Oats", Calories: 150, Protein: 5, Carbs: 27, Fat: 3, Fiber: 4}

func TestHandler_CRUD(t *testing.T) {
	api, svc, _ := setup(t)

	svc.On("List", mock.Anything, "u1").Return([]meal.CustomMeal{oats}, nil)
	svc.On("Find", mock.Anything, "u1", "m1").Return(oats, nil)
	svc.On("Find", mock.Anything, "u1", "nope").Return(meal.CustomMeal{}, meal.ErrNotFound)
	svc.On("Save", mock.Anything, "u1", oats).Return(oats, nil)
	svc.On("Delete", mock.Anything, "u1", "m1").Return(nil)

	resp := api.Get("/customMeals")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"Oats"`)

	assert.Equal(t, http.StatusOK, api.Get("/customMeals/m1").Code)
	assert.Equal(t, http.StatusNotFound, api.Get("/customMeals/nope").Code)
	assert.Equal(t, http.StatusOK, api.Post("/customMeals", oats).Code)
	assert.Equal(t, http.StatusNoContent, api.Delete("/customMeals/m1").Code)

	svc.AssertExpectations(t)
}

func TestHandler_LogPortion(t *testing.T) {
	api, svc, logs := setup(t)

	svc.On("Find", mock.Anything, "u1", "m1").Return(oats, nil)
	logs.On("Save", mock.Anything, "u1", mock.MatchedBy(func(l logbook.Log) bool {
		return l.ID == "l1" && l.Date == "2024-05-01" && l.Meal == "Oats x2" && l.Totals().Calories == 300
	})).Return(logbook.Log{ID: "l1", UID: "u1", Date: "2024-05-01", Meal: "Oats x2"}, nil)

	resp := api.Post("/customMeals/m1/portions", map[string]any{
		"qty":   2,
		"date":  "2024-05-01",
		"logId": "l1",
	})

	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"meal":"Oats x2"`)
	logs.AssertExpectations(t)
}

func TestHandler_LogPortionUnknownMeal(t *testing.T) {
	api, svc, logs := setup(t)
	svc.On("Find", mock.Anything, "u1", "nope").Return(meal.CustomMeal{}, meal.ErrNotFound)

	resp := api.Post("/customMeals/nope/portions", map[string]any{"qty": 1, "date": "2024-05-01"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	logs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}
