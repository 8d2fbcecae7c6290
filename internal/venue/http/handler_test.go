package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID = "22222222-2222-2222-2222-222222222222"
	hallID  = "33333333-3333-3333-3333-333333333333"
)

type stubService struct {
	venues    map[string]*venue.Venue
	lastInput venue.CreateInput
}

func (s *stubService) Create(_ context.Context, actor auth.Principal, in venue.CreateInput) (*venue.Venue, error) {
	s.lastInput = in
	if in.Name == "" {
		return nil, venue.ErrInvalidVenue
	}
	v := &venue.Venue{ID: hallID, OwnerID: actor.UserID, Name: in.Name, OpenMinute: 540, CloseMinute: 1080, CreatedAt: time.Now()}
	s.venues[v.ID] = v
	return v, nil
}

func (s *stubService) GetByID(_ context.Context, id string) (*venue.Venue, error) {
	v, ok := s.venues[id]
	if !ok {
		return nil, venue.ErrNotFound
	}
	return v, nil
}

func (s *stubService) List(_ context.Context, f venue.Filter) ([]*venue.Venue, int, error) {
	var out []*venue.Venue
	for _, v := range s.venues {
		out = append(out, v)
	}
	return out, len(out), nil
}

func (s *stubService) Update(ctx context.Context, actor auth.Principal, id string, in venue.UpdateInput) (*venue.Venue, error) {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.ManagedBy(actor) {
		return nil, venue.ErrForbidden
	}
	if in.Name != nil {
		v.Name = *in.Name
	}
	return v, nil
}

func (s *stubService) Delete(ctx context.Context, actor auth.Principal, id string) error {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !v.ManagedBy(actor) {
		return venue.ErrForbidden
	}
	delete(s.venues, id)
	return nil
}

func (s *stubService) UploadCover(context.Context, auth.Principal, string, io.Reader) (*venue.Venue, error) {
	return nil, venue.ErrInvalidImage
}

func (s *stubService) OpenCover(context.Context, string, venue.CoverSize) (io.ReadCloser, error) {
	return nil, venue.ErrNoCover
}

func setup(t *testing.T) (*gin.Engine, *stubService, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenManager("test-secret", time.Minute)

	svc := &stubService{venues: map[string]*venue.Venue{}}
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), auth.AuthRequired(tokens))
	return r, svc, tokens
}

func bearer(t *testing.T, tokens *auth.TokenManager, userID string) string {
	t.Helper()
	tok, err := tokens.Issue(auth.Principal{UserID: userID})
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(r *gin.Engine, method, path, authz string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndGet(t *testing.T) {
	r, svc, tokens := setup(t)

	w := do(r, http.MethodPost, "/v1/venues", "", map[string]any{"name": "Hall"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/v1/venues", bearer(t, tokens, ownerID), map[string]any{
		"name":       "Hall",
		"open_time":  "09:00",
		"close_time": "18:00",
		"pricing":    map[string]any{"base_price": 1000},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "09:00", svc.lastInput.OpenTime)
	assert.Equal(t, 1000.0, svc.lastInput.Pricing.BasePrice)

	var created VenueResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, ownerID, created.OwnerID)
	assert.Equal(t, "09:00", created.OpenTime)
	assert.Equal(t, "18:00", created.CloseTime)
	assert.Nil(t, created.CoverURL)

	w = do(r, http.MethodGet, "/v1/venues/"+hallID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/v1/venues/44444444-4444-4444-4444-444444444444", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/v1/venues/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate_ServiceValidation(t *testing.T) {
	r, _, tokens := setup(t)

	w := do(r, http.MethodPost, "/v1/venues", bearer(t, tokens, ownerID), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, venue.ErrInvalidVenue.Error(), body.Error)
}

func TestUpdateAndDelete_Ownership(t *testing.T) {
	r, svc, tokens := setup(t)
	svc.venues[hallID] = &venue.Venue{ID: hallID, OwnerID: ownerID, Name: "Hall"}

	stranger := bearer(t, tokens, "55555555-5555-5555-5555-555555555555")

	w := do(r, http.MethodPatch, "/v1/venues/"+hallID, stranger, map[string]any{"name": "Mine now"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPatch, "/v1/venues/"+hallID, bearer(t, tokens, ownerID), map[string]any{"name": "Grand Hall"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Grand Hall", svc.venues[hallID].Name)

	w = do(r, http.MethodDelete, "/v1/venues/"+hallID, stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodDelete, "/v1/venues/"+hallID, bearer(t, tokens, ownerID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, svc.venues)
}

func TestList(t *testing.T) {
	r, svc, _ := setup(t)
	svc.venues[hallID] = &venue.Venue{ID: hallID, OwnerID: ownerID, Name: "Hall"}

	w := do(r, http.MethodGet, "/v1/venues?page=1&page_size=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page response.PageResponse[VenueResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 10, page.PageSize)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Hall", page.Items[0].Name)

	w = do(r, http.MethodGet, "/v1/venues?page_size=1000", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCover_Missing(t *testing.T) {
	r, _, _ := setup(t)

	w := do(r, http.MethodGet, "/v1/venues/"+hallID+"/cover", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
