package roundhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	roundservice "github.com/Black-And-White-Club/quiz-host/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/quiz-host/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/httpx"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type fakeRoundService struct {
	lastCreate  roundservice.CreateRoundRequest
	lastUpdate  roundservice.UpdateRoundRequest
	lastReorder []string
	deleted     string
	err         error
}

func (f *fakeRoundService) CreateRound(_ context.Context, req roundservice.CreateRoundRequest) (*rounddb.Round, error) {
	f.lastCreate = req
	if f.err != nil {
		return nil, f.err
	}
	return &rounddb.Round{ID: "r1", SetID: req.SetID, Name: req.Name}, nil
}

func (f *fakeRoundService) UpdateRound(_ context.Context, req roundservice.UpdateRoundRequest) (*rounddb.Round, error) {
	f.lastUpdate = req
	if f.err != nil {
		return nil, f.err
	}
	return &rounddb.Round{ID: req.ID}, nil
}

func (f *fakeRoundService) DeleteRound(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeRoundService) ReorderRounds(_ context.Context, setID string, ids []string) ([]rounddb.Round, error) {
	f.lastReorder = ids
	if f.err != nil {
		return nil, f.err
	}
	out := make([]rounddb.Round, len(ids))
	for i, id := range ids {
		out[i] = rounddb.Round{ID: id, SetID: setID, Position: i}
	}
	return out, nil
}

func (f *fakeRoundService) GetRound(_ context.Context, id string) (*rounddb.Round, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &rounddb.Round{ID: id}, nil
}

func (f *fakeRoundService) ListRounds(_ context.Context, setID string) ([]rounddb.Round, error) {
	return []rounddb.Round{{ID: "r1", SetID: setID}}, f.err
}

func (f *fakeRoundService) CheckPositions(context.Context, bool) ([]ordering.Report, error) {
	return nil, f.err
}

type fakeCategoryService struct {
	lastCreate roundservice.CreateCategoryRequest
	err        error
}

func (f *fakeCategoryService) ListRoundCategories(context.Context) ([]rounddb.RoundCategory, error) {
	return []rounddb.RoundCategory{{ID: "c1", Name: "General"}}, f.err
}

func (f *fakeCategoryService) GetRoundCategory(_ context.Context, id string) (*rounddb.RoundCategory, error) {
	return &rounddb.RoundCategory{ID: id}, f.err
}

func (f *fakeCategoryService) CreateRoundCategory(_ context.Context, req roundservice.CreateCategoryRequest) (*rounddb.RoundCategory, error) {
	f.lastCreate = req
	if f.err != nil {
		return nil, f.err
	}
	return &rounddb.RoundCategory{ID: "c2", Name: req.Name}, nil
}

func (f *fakeCategoryService) UpdateRoundCategory(_ context.Context, req roundservice.UpdateCategoryRequest) (*rounddb.RoundCategory, error) {
	return &rounddb.RoundCategory{ID: req.ID}, f.err
}

func (f *fakeCategoryService) DeleteRoundCategory(context.Context, string) error {
	return f.err
}

func (f *fakeCategoryService) SeedCategories(context.Context, []roundservice.SeedCategory) (int, error) {
	return 0, f.err
}

func newRouter(rounds roundservice.Service, categories roundservice.CategoryService) http.Handler {
	r := chi.NewRouter()
	NewRoundHandlers(rounds, categories, slog.Default(), noop.NewTracerProvider().Tracer("test")).Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpx.ErrorDetail {
	t.Helper()
	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHandleCreateRound(t *testing.T) {
	svc := &fakeRoundService{}
	rec := do(t, newRouter(svc, &fakeCategoryService{}), http.MethodPost, "/rounds/",
		`{"setId":"s1","categoryId":"c1","name":"Opening","configurationOverride":{"allowedLifelines":{}}}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "s1", svc.lastCreate.SetID)
	require.NotNil(t, svc.lastCreate.ConfigurationOverride)
	require.NotNil(t, svc.lastCreate.ConfigurationOverride.AllowedLifelines, "an explicit empty map survives decoding")
	assert.Empty(t, *svc.lastCreate.ConfigurationOverride.AllowedLifelines)
	assert.Nil(t, svc.lastCreate.ConfigurationOverride.TimePolicy)
}

func TestHandleRoundErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		method     string
		path       string
		body       string
		wantStatus int
		wantKind   apperr.Kind
	}{
		{
			name:       "malformed body",
			method:     http.MethodPost,
			path:       "/rounds/",
			body:       `{"setId":`,
			wantStatus: http.StatusBadRequest,
			wantKind:   apperr.KindValidation,
		},
		{
			name:       "validation",
			err:        apperr.Validation("name", "name is required"),
			method:     http.MethodPost,
			path:       "/rounds/",
			body:       `{"setId":"s1"}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   apperr.KindValidation,
		},
		{
			name:       "not found",
			err:        apperr.NotFound("round", "r9"),
			method:     http.MethodDelete,
			path:       "/rounds/r9",
			wantStatus: http.StatusNotFound,
			wantKind:   apperr.KindNotFound,
		},
		{
			name:       "ordering",
			err:        apperr.Ordering("id %q appears more than once", "r1"),
			method:     http.MethodPost,
			path:       "/sets/s1/rounds/reorder",
			body:       `{"roundIds":["r1","r1"]}`,
			wantStatus: http.StatusConflict,
			wantKind:   apperr.KindOrdering,
		},
		{
			name:       "gateway",
			err:        apperr.Persistence("get round", errors.New("database is locked")),
			method:     http.MethodGet,
			path:       "/rounds/r1",
			wantStatus: http.StatusInternalServerError,
			wantKind:   apperr.KindPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(&fakeRoundService{err: tt.err}, &fakeCategoryService{}), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantKind, decodeError(t, rec).Kind)
		})
	}
}

func TestHandleUpdateRoundUsesPathID(t *testing.T) {
	svc := &fakeRoundService{}
	rec := do(t, newRouter(svc, &fakeCategoryService{}), http.MethodPatch, "/rounds/r7", `{"id":"other","name":"Renamed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "r7", svc.lastUpdate.ID)
	require.NotNil(t, svc.lastUpdate.Name)
	assert.Equal(t, "Renamed", *svc.lastUpdate.Name)
}

func TestHandleDeleteRound(t *testing.T) {
	svc := &fakeRoundService{}
	rec := do(t, newRouter(svc, &fakeCategoryService{}), http.MethodDelete, "/rounds/r2", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "r2", svc.deleted)
}

func TestHandleReorderRounds(t *testing.T) {
	svc := &fakeRoundService{}
	rec := do(t, newRouter(svc, &fakeCategoryService{}), http.MethodPost, "/sets/s1/rounds/reorder", `{"roundIds":["r3","r1","r2"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"r3", "r1", "r2"}, svc.lastReorder)
	var got []rounddb.Round
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "r3", got[0].ID)
	assert.Equal(t, 0, got[0].Position)
}

func TestHandleListRounds(t *testing.T) {
	rec := do(t, newRouter(&fakeRoundService{}, &fakeCategoryService{}), http.MethodGet, "/sets/s9/rounds", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "s9", got[0]["setId"])
}

func TestHandleCategories(t *testing.T) {
	categories := &fakeCategoryService{}
	h := newRouter(&fakeRoundService{}, categories)

	rec := do(t, h, http.MethodGet, "/round-categories/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"General"`)

	rec = do(t, h, http.MethodPost, "/round-categories/", `{"name":"Music","defaultConfiguration":{"passPolicy":{"enabled":true}}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Music", categories.lastCreate.Name)
	assert.JSONEq(t, `{"passPolicy":{"enabled":true}}`, string(categories.lastCreate.DefaultConfiguration))

	categories.err = apperr.Validation("id", "category is used by 2 round(s)")
	rec = do(t, h, http.MethodDelete, "/round-categories/c1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPolicyHelpers(t *testing.T) {
	h := newRouter(&fakeRoundService{}, &fakeCategoryService{})

	t.Run("static to dynamic synthesizes decay levels", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/policies/time/mode",
			`{"timePolicy":{"baseTime":10,"afterPassTimeMode":"static","staticAfterPassTime":5},"mode":"dynamic"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			TimePolicy rounddomain.TimePolicy `json:"timePolicy"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, rounddomain.AfterPassTimeDynamic, got.TimePolicy.AfterPassTimeMode)
		assert.Equal(t, []int{8, 6, 4}, got.TimePolicy.AfterPassTime)
	})

	t.Run("scoring switch", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/policies/scoring/mode",
			`{"scoringPolicy":{"correct":10,"incorrect":0},"mode":"dynamic"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			ScoringPolicy rounddomain.ScoringPolicy `json:"scoringPolicy"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, []int{10, 8, 6}, got.ScoringPolicy.CorrectWhenPassedMultiple)
	})

	t.Run("removing the last level reverts to static", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/policies/time/levels/remove",
			`{"timePolicy":{"baseTime":10,"afterPassTimeMode":"dynamic","afterPassTime":[8]},"index":0}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			TimePolicy rounddomain.TimePolicy `json:"timePolicy"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, rounddomain.AfterPassTimeStatic, got.TimePolicy.AfterPassTimeMode)
		assert.Empty(t, got.TimePolicy.AfterPassTime)
	})

	t.Run("add score level", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/policies/scoring/levels/add",
			`{"scoringPolicy":{"correct":10,"incorrect":0,"correctWhenPassedMultiple":[10,8]},"points":5000}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"correctWhenPassedMultiple":[10,8,1000]`)
	})

	t.Run("missing argument", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/policies/time/levels/add", `{"timePolicy":{"baseTime":10,"afterPassTimeMode":"dynamic","afterPassTime":[8]}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "seconds", decodeError(t, rec).Field)
	})

	t.Run("unknown mode", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/policies/time/mode", `{"timePolicy":{"baseTime":10,"afterPassTimeMode":"static"},"mode":"sometimes"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
