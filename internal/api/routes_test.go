package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecopontos-backend-go/internal/config"
	"ecopontos-backend-go/internal/core"
	"ecopontos-backend-go/internal/db"
	"ecopontos-backend-go/internal/identity"
	"ecopontos-backend-go/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	store  *db.MemoryStore
}

func newTestServer(t *testing.T, enableFullDB bool) *testServer {
	t.Helper()
	store := db.NewMemoryStore()
	provider := identity.NewStatic(map[string]identity.Identity{
		"tok-ana": {UID: "u-ana", Email: "ana@token.example"},
	})
	points := db.NewCollectionPointRepository(store)
	logger := zap.NewNop()

	router := gin.New()
	SetupRoutes(router, &config.Config{EnableFullDB: enableFullDB}, logger, provider, Services{
		CollectionPoints: core.NewCollectionPointService(points, nil, logger),
		Ratings:          core.NewRatingService(points, nil),
		Suggestions:      core.NewSuggestionService(db.NewSuggestionRepository(store), points, nil, logger),
		Users:            core.NewUserService(db.NewUserRepository(store), provider, nil, logger),
		Diagnostics:      core.NewDiagnosticsService(store),
	})
	return &testServer{router: router, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, kind string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[models.ErrorResponse](t, rec)
	assert.Equal(t, kind, body.Error)
	assert.NotEmpty(t, body.Detail)
}

var pointBody = map[string]interface{}{
	"nome":      "A",
	"endereco":  "B",
	"cep":       "01000-000",
	"latitude":  -23.5,
	"longitude": 0,
	"criadoPor": "u1",
}

func TestCollectionPointLifecycle(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/ecopontos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/ecopontos", pointBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[MessageResponse](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Ecoponto criado com sucesso.", created.Message)

	rec = s.do(t, http.MethodPut, "/ecopontos/"+created.ID, map[string]interface{}{"nome": "C"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, created.ID, decode[MessageResponse](t, rec).ID)

	rec = s.do(t, http.MethodGet, "/ecopontos/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	point := decode[models.CollectionPoint](t, rec)
	assert.Equal(t, "C", point.Name)
	assert.Equal(t, "B", point.Address)
	assert.Equal(t, models.StatusActive, point.Status)
	assert.NotEmpty(t, point.CreatedAt)

	rec = s.do(t, http.MethodDelete, "/ecopontos/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assertError(t, s.do(t, http.MethodGet, "/ecopontos/"+created.ID, nil), http.StatusNotFound, models.ErrorKindNotFound)
	assertError(t, s.do(t, http.MethodDelete, "/ecopontos/"+created.ID, nil), http.StatusNotFound, models.ErrorKindNotFound)
	assertError(t, s.do(t, http.MethodPut, "/ecopontos/"+created.ID, map[string]interface{}{"nome": "D"}), http.StatusNotFound, models.ErrorKindNotFound)
}

func TestCreateCollectionPoint_Validation(t *testing.T) {
	s := newTestServer(t, true)

	missing := map[string]interface{}{"nome": "A"}
	rec := s.do(t, http.MethodPost, "/ecopontos", missing)
	assertError(t, rec, http.StatusBadRequest, models.ErrorKindValidation)
	assert.Contains(t, rec.Body.String(), "endereco")

	wrongType := map[string]interface{}{}
	for k, v := range pointBody {
		wrongType[k] = v
	}
	wrongType["latitude"] = "x"
	assertError(t, s.do(t, http.MethodPost, "/ecopontos", wrongType), http.StatusBadRequest, models.ErrorKindValidation)
	assertError(t, s.do(t, http.MethodPost, "/ecopontos", "{not json"), http.StatusBadRequest, models.ErrorKindValidation)
	assertError(t, s.do(t, http.MethodPost, "/ecopontos", ""), http.StatusBadRequest, models.ErrorKindValidation)

	var all map[string]interface{}
	found, err := s.store.Get(t.Context(), db.CollectionPointsCollection, &all)
	require.NoError(t, err)
	assert.False(t, found, "invalid payloads must not reach the store")
}

func TestUpdateCollectionPoint_EmptyBodyIsValidationError(t *testing.T) {
	s := newTestServer(t, true)
	id := decode[MessageResponse](t, s.do(t, http.MethodPost, "/ecopontos", pointBody)).ID

	assertError(t, s.do(t, http.MethodPut, "/ecopontos/"+id, map[string]interface{}{}), http.StatusBadRequest, models.ErrorKindValidation)
}

func TestInvalidIdentifier(t *testing.T) {
	s := newTestServer(t, true)
	assertError(t, s.do(t, http.MethodGet, "/ecopontos/a.b", nil), http.StatusBadRequest, models.ErrorKindValidation)
}

func TestRatings(t *testing.T) {
	s := newTestServer(t, true)

	assertError(t, s.do(t, http.MethodPost, "/avaliacoes/ghost", map[string]interface{}{"usuarioId": "u2", "nota": 5}),
		http.StatusNotFound, models.ErrorKindNotFound)

	id := decode[MessageResponse](t, s.do(t, http.MethodPost, "/ecopontos", pointBody)).ID
	assertError(t, s.do(t, http.MethodGet, "/ecopontos/"+id+"/avaliacoes", nil), http.StatusNotFound, models.ErrorKindNotFound)

	assertError(t, s.do(t, http.MethodPost, "/avaliacoes/"+id, map[string]interface{}{"usuarioId": "u2", "nota": 4.5}),
		http.StatusBadRequest, models.ErrorKindValidation)

	rec := s.do(t, http.MethodPost, "/avaliacoes/"+id, map[string]interface{}{"usuarioId": "u2", "nota": 0, "comentario": "ok"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ratingID := decode[MessageResponse](t, rec).ID

	rec = s.do(t, http.MethodGet, "/ecopontos/"+id+"/avaliacoes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ratings := decode[map[string]models.Rating](t, rec)
	require.Contains(t, ratings, ratingID)
	assert.Equal(t, 0, ratings[ratingID].Score)
	assert.Equal(t, "ok", ratings[ratingID].Comment)
}

var suggestionBody = map[string]interface{}{
	"usuarioId": "u7",
	"nome":      "Ponto Novo",
	"endereco":  "Rua X",
	"cep":       "02000-000",
	"latitude":  -23.5,
	"longitude": -46.6,
}

func TestSuggestionModeration(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodPost, "/sugestoes", suggestionBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[MessageResponse](t, rec).ID

	rec = s.do(t, http.MethodGet, "/sugestoes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.SuggestionPending, decode[map[string]models.Suggestion](t, rec)[id].Status)

	rec = s.do(t, http.MethodPost, "/sugestoes/aprovar/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approved := decode[ApproveResponse](t, rec)
	require.NotEmpty(t, approved.EcoID)

	rec = s.do(t, http.MethodGet, "/ecopontos/"+approved.EcoID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	point := decode[models.CollectionPoint](t, rec)
	assert.Equal(t, "Ponto Novo", point.Name)
	assert.Equal(t, "u7", point.CreatedBy)
	assert.Equal(t, models.StatusActive, point.Status)

	assertError(t, s.do(t, http.MethodPost, "/sugestoes/aprovar/"+id, nil), http.StatusConflict, models.ErrorKindConflict)
	assertError(t, s.do(t, http.MethodPost, "/sugestoes/rejeitar/"+id, nil), http.StatusConflict, models.ErrorKindConflict)

	points := decode[map[string]models.CollectionPoint](t, s.do(t, http.MethodGet, "/ecopontos", nil))
	assert.Len(t, points, 1)
}

func TestRejectSuggestion(t *testing.T) {
	s := newTestServer(t, true)
	id := decode[MessageResponse](t, s.do(t, http.MethodPost, "/sugestoes", suggestionBody)).ID

	rec := s.do(t, http.MethodPost, "/sugestoes/rejeitar/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Sugestão rejeitada."}`, rec.Body.String())

	assertError(t, s.do(t, http.MethodPost, "/sugestoes/aprovar/ghost", nil), http.StatusNotFound, models.ErrorKindNotFound)
	assertError(t, s.do(t, http.MethodPost, "/sugestoes/rejeitar/ghost", nil), http.StatusNotFound, models.ErrorKindNotFound)
}

func TestRegisterAndMe(t *testing.T) {
	s := newTestServer(t, true)
	body := map[string]interface{}{"email": "bia@example.com", "senha": "secret1", "nome": "Bia", "usuario": "bia"}

	rec := s.do(t, http.MethodPost, "/register", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[models.UserOut](t, rec)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "bia@example.com", user.Email)
	assert.Equal(t, "bia", user.Handle)

	assertError(t, s.do(t, http.MethodPost, "/register", body), http.StatusConflict, models.ErrorKindConflict)

	short := map[string]interface{}{"email": "c@example.com", "senha": "123", "nome": "C", "usuario": "c"}
	rec = s.do(t, http.MethodPost, "/register", short)
	assertError(t, rec, http.StatusBadRequest, models.ErrorKindValidation)
	assert.Contains(t, rec.Body.String(), "senha")

	badEmail := map[string]interface{}{"email": "nope", "senha": "secret1", "nome": "C", "usuario": "c"}
	assertError(t, s.do(t, http.MethodPost, "/register", badEmail), http.StatusBadRequest, models.ErrorKindValidation)
}

func TestUsersMe(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/users/me", nil)
	assertError(t, rec, http.StatusUnauthorized, models.ErrorKindUnauthorized)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assertError(t, s.do(t, http.MethodGet, "/users/me", nil, "Authorization", "Bearer nope"), http.StatusUnauthorized, models.ErrorKindUnauthorized)

	// Valid token, no stored profile.
	assertError(t, s.do(t, http.MethodGet, "/users/me", nil, "Authorization", "Bearer tok-ana"), http.StatusNotFound, models.ErrorKindNotFound)

	require.NoError(t, s.store.Set(t.Context(), "users/u-ana", models.UserProfile{Email: "old@example.com", Name: "Ana", Handle: "ana"}))

	for _, rec := range []*httptest.ResponseRecorder{
		s.do(t, http.MethodGet, "/users/me", nil, "Authorization", "Bearer tok-ana"),
		s.do(t, http.MethodGet, "/users/me?token=tok-ana", nil),
	} {
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, models.UserOut{ID: "u-ana", Email: "ana@token.example", Name: "Ana", Handle: "ana"}, decode[models.UserOut](t, rec))
	}
}

func TestFullDB(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/full-db", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())

	s.do(t, http.MethodPost, "/sugestoes", suggestionBody)
	dump := decode[map[string]interface{}](t, s.do(t, http.MethodGet, "/full-db", nil))
	assert.Contains(t, dump, db.SuggestionsCollection)

	disabled := newTestServer(t, false)
	assertError(t, disabled.do(t, http.MethodGet, "/full-db", nil), http.StatusNotFound, models.ErrorKindNotFound)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)
	rec := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "UP", decode[HealthResponse](t, rec).Status)
}

func TestReadsServeLegacyRecordsVerbatim(t *testing.T) {
	s := newTestServer(t, true)
	ctx := context.Background()

	rec := s.do(t, http.MethodPost, "/ecopontos", pointBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	createdID := decode[MessageResponse](t, rec).ID

	require.NoError(t, s.store.Set(ctx, "ecopontos/legacy1", map[string]interface{}{
		"nome": "L1", "latitude": "-23.5", "longitude": -46.6, "horario": "8-18",
	}))
	require.NoError(t, s.store.Set(ctx, "ecopontos/legacy2", map[string]interface{}{
		"nome": "L2",
		"avaliacoes": map[string]interface{}{
			"r1": map[string]interface{}{"usuarioId": "u2", "nota": 4.5},
		},
	}))

	rec = s.do(t, http.MethodGet, "/ecopontos", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	all := decode[map[string]map[string]interface{}](t, rec)
	assert.Len(t, all, 3)
	assert.Contains(t, all, createdID)
	assert.Equal(t, "-23.5", all["legacy1"]["latitude"])

	rec = s.do(t, http.MethodGet, "/ecopontos/legacy1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"nome":"L1","latitude":"-23.5","longitude":-46.6,"horario":"8-18"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/ecopontos/legacy2/avaliacoes", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"r1":{"usuarioId":"u2","nota":4.5}}`, rec.Body.String())
}
