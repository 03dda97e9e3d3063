package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

func TestCreateItem(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()

	resp := env.createItem(t, userID, "tops", domain.WashAfterFewWears)

	assert.Equal(t, userID.String(), resp.UserID)
	assert.Equal(t, "tops", resp.Attributes.Category)
	assert.Equal(t, string(domain.StatusFresh), resp.CleanlinessStatus)
	assert.Equal(t, domain.MaxFreshnessScore, resp.FreshnessScore)
	assert.Nil(t, resp.LastWornAt)
}

func TestCreateItem_InvalidPayload(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	// Missing category.
	rec := env.do(t, http.MethodPost, "/api/items", CreateItemRequest{
		UserID:         uuid.New().String(),
		WashPreference: string(domain.WashManual),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown wash preference reaches the domain validator.
	rec = env.do(t, http.MethodPost, "/api/items", CreateItemRequest{
		UserID:         uuid.New().String(),
		Attributes:     ItemAttributesPayload{Category: "tops"},
		WashPreference: "weekly",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed JSON.
	req := env.do(t, http.MethodPost, "/api/items", "{not json")
	assert.Equal(t, http.StatusBadRequest, req.Code)
}

func TestListItems(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	env.createItem(t, userID, "tops", domain.WashAfterFewWears)
	env.createItem(t, userID, "pants", domain.WashAfterFewWears)
	env.createItem(t, uuid.New(), "shoes", domain.WashManual)

	rec := env.do(t, http.MethodGet, "/api/items?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []ItemResponse `json:"items"`
		Count int            `json:"count"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Items, 2)
}

func TestListItems_MissingUserID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/items", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordWear(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	item := env.createItem(t, userID, "tops", domain.WashAfterEachWear)

	rec := env.do(t, http.MethodPost, "/api/items/"+item.ID+"/worn",
		map[string]string{"userId": userID.String()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ItemResponse
	decode(t, rec, &resp)
	assert.Equal(t, 1, resp.WearCount)
	assert.Equal(t, string(domain.StatusNeedsWash), resp.CleanlinessStatus)
	assert.NotNil(t, resp.LastWornAt)
}

func TestRecordWear_NotOwned(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	item := env.createItem(t, uuid.New(), "tops", domain.WashAfterFewWears)

	rec := env.do(t, http.MethodPost, "/api/items/"+item.ID+"/worn",
		map[string]string{"userId": uuid.New().String()})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecordWear_UnknownItem(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/items/"+uuid.NewString()+"/worn",
		map[string]string{"userId": uuid.New().String()})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLaundryEndpoints_FullTrip(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	item := env.createItem(t, userID, "pants", domain.WashAfterFewWears)
	body := map[string]string{"userId": userID.String()}

	rec := env.do(t, http.MethodPost, "/api/items/"+item.ID+"/laundry", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp ItemResponse
	decode(t, rec, &resp)
	assert.Equal(t, string(domain.StatusInLaundry), resp.CleanlinessStatus)

	// Wearing an item in the laundry pipeline conflicts with its state.
	rec = env.do(t, http.MethodPost, "/api/items/"+item.ID+"/worn", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/items/"+item.ID+"/washed", body)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Equal(t, string(domain.StatusWashed), resp.CleanlinessStatus)

	rec = env.do(t, http.MethodPost, "/api/items/"+item.ID+"/ready", body)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Equal(t, string(domain.StatusReadyToWear), resp.CleanlinessStatus)
	assert.Equal(t, domain.MaxFreshnessScore, resp.FreshnessScore)
	assert.Equal(t, 0, resp.WearCount)
}

func TestRemoveFromLaundry(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	item := env.createItem(t, userID, "sweaters", domain.WashAfterFewWears)

	rec := env.do(t, http.MethodPost, "/api/items/"+item.ID+"/laundry",
		map[string]string{"userId": userID.String()})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete,
		"/api/items/"+item.ID+"/laundry?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ItemResponse
	decode(t, rec, &resp)
	assert.Equal(t, string(domain.StatusFresh), resp.CleanlinessStatus)
}

func TestUpdateWashPreference(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	item := env.createItem(t, userID, "tops", domain.WashAfterEachWear)

	rec := env.do(t, http.MethodPut, "/api/items/"+item.ID+"/wash-preference",
		UpdateWashPreferenceRequest{UserID: userID.String(), Preference: string(domain.WashManual)})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ItemResponse
	decode(t, rec, &resp)
	assert.Equal(t, string(domain.WashManual), resp.WashPreference)

	rec = env.do(t, http.MethodPut, "/api/items/"+item.ID+"/wash-preference",
		UpdateWashPreferenceRequest{UserID: userID.String(), Preference: "weekly"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteItem(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	item := env.createItem(t, userID, "tops", domain.WashAfterFewWears)

	rec := env.do(t, http.MethodDelete,
		"/api/items/"+item.ID+"?user_id="+uuid.NewString(), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete,
		"/api/items/"+item.ID+"?user_id="+userID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete,
		"/api/items/"+item.ID+"?user_id="+userID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItemEndpoints_InvalidID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/items/not-a-uuid/worn",
		map[string]string{"userId": uuid.New().String()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
