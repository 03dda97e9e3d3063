package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

func TestCreateRecommendation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	env.createItem(t, userID, "tops", domain.WashAfterFewWears)
	env.createItem(t, userID, "pants", domain.WashAfterFewWears)

	rec := env.do(t, http.MethodPost, "/api/recommendations", RecommendRequest{
		UserID:   userID.String(),
		Occasion: "casual",
		Season:   "summer",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp RecommendResponse
	decode(t, rec, &resp)
	assert.NotEmpty(t, resp.RecommendationID)
	assert.Equal(t, 2, resp.TotalItems)
	assert.Len(t, resp.ItemsByCategory["tops"], 1)
	assert.Len(t, resp.ItemsByCategory["pants"], 1)
	assert.Nil(t, resp.Weather, "no coordinates were given")
	assert.Empty(t, resp.AISuggestion, "no generator is configured")
}

func TestCreateRecommendation_WithCoordinates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	env.createItem(t, userID, "tops", domain.WashAfterFewWears)

	lat, lon := 52.52, 13.4
	rec := env.do(t, http.MethodPost, "/api/recommendations", RecommendRequest{
		UserID:   userID.String(),
		Latitude: &lat, Longitude: &lon,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp RecommendResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.Weather)
	assert.Equal(t, "mild", resp.Weather.Band)
}

func TestCreateRecommendation_NoEligibleItems(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/recommendations", RecommendRequest{
		UserID: uuid.New().String(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRecommendation_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	lat := 123.0
	rec := env.do(t, http.MethodPost, "/api/recommendations", RecommendRequest{
		UserID:   uuid.New().String(),
		Latitude: &lat,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkRecommendationWorn(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	env.createItem(t, userID, "tops", domain.WashAfterEachWear)

	rec := env.do(t, http.MethodPost, "/api/recommendations", RecommendRequest{
		UserID: userID.String(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created RecommendResponse
	decode(t, rec, &created)

	rec = env.do(t, http.MethodPost, "/api/recommendations/"+created.RecommendationID+"/worn",
		map[string]string{"userId": userID.String()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Items        []ItemResponse `json:"items"`
		ItemsUpdated int            `json:"itemsUpdated"`
	}
	decode(t, rec, &resp)
	require.Equal(t, 1, resp.ItemsUpdated)
	assert.Equal(t, 1, resp.Items[0].WearCount)
}

func TestMarkRecommendationWorn_Errors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	env.createItem(t, userID, "tops", domain.WashAfterFewWears)

	rec := env.do(t, http.MethodPost, "/api/recommendations", RecommendRequest{
		UserID: userID.String(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created RecommendResponse
	decode(t, rec, &created)

	rec = env.do(t, http.MethodPost, "/api/recommendations/"+uuid.NewString()+"/worn",
		map[string]string{"userId": userID.String()})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/recommendations/"+created.RecommendationID+"/worn",
		map[string]string{"userId": uuid.NewString()})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSubmitFeedback(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	env.createItem(t, userID, "tops", domain.WashAfterFewWears)

	rec := env.do(t, http.MethodPost, "/api/recommendations", RecommendRequest{
		UserID: userID.String(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created RecommendResponse
	decode(t, rec, &created)

	path := "/api/recommendations/" + created.RecommendationID + "/feedback"
	rec = env.do(t, http.MethodPost, path, FeedbackRequest{
		UserID:         userID.String(),
		Rating:         4,
		Comment:        "nice mix",
		WouldWearAgain: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp FeedbackResponse
	decode(t, rec, &resp)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, created.RecommendationID, resp.RecommendationID)

	// A second submission for the same recommendation conflicts.
	rec = env.do(t, http.MethodPost, path, FeedbackRequest{
		UserID: userID.String(),
		Rating: 1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitFeedback_InvalidRating(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/recommendations/"+uuid.NewString()+"/feedback",
		FeedbackRequest{UserID: uuid.NewString(), Rating: 6})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
