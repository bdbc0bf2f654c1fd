package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hanuiwon/clinic-api/middleware"
	"github.com/hanuiwon/clinic-api/models"
)

func newReservationRouter(repo *fakeReservationRepo) *gin.Engine {
	ctrl := NewReservationController(repo)
	r := gin.New()
	checkID := middleware.CheckObjectID()
	r.GET("/reservations", ctrl.List)
	r.GET("/reservations/:id", checkID, ctrl.Read)
	r.POST("/reservations", ctrl.Create)
	r.PATCH("/reservations/:id", checkID, ctrl.Update)
	r.DELETE("/reservations/:id", checkID, ctrl.Delete)
	return r
}

func seedReservation(t *testing.T, repo *fakeReservationRepo, name, phone string) models.Reservation {
	t.Helper()
	res := models.Reservation{Info: models.ReservationInfo{Name: name, Phone: phone}}
	require.NoError(t, repo.Insert(nil, &res))
	return res
}

func TestCreateReservation(t *testing.T) {
	repo := &fakeReservationRepo{}
	r := newReservationRouter(repo)

	w := performRequest(r, http.MethodPost, "/reservations", gin.H{
		"inquiries": []string{"physio"},
		"symptoms":  []string{"back pain"},
		"info": gin.H{
			"name":   "lee",
			"gender": "f",
			"visit":  "r",
			"phone":  "010-1234-5678",
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var got models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.ReservationPending, got.State)
	assert.Equal(t, "F", got.Info.Gender)
	assert.Equal(t, "R", got.Info.Visit)
	assert.False(t, got.PublishedDate.IsZero())
}

func TestCreateReservationAllFieldsOptional(t *testing.T) {
	repo := &fakeReservationRepo{}
	r := newReservationRouter(repo)

	w := performRequest(r, http.MethodPost, "/reservations", gin.H{})

	require.Equal(t, http.StatusOK, w.Code)
	var got models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.ReservationPending, got.State)
	assert.NotNil(t, got.Inquiries)
	assert.NotNil(t, got.Symptoms)
	assert.Nil(t, got.ReservationDate)
}

func TestListReservations(t *testing.T) {
	repo := &fakeReservationRepo{}
	seedReservation(t, repo, "kim", "010-1111-2222")
	seedReservation(t, repo, "lee", "010-3333-4444")
	r := newReservationRouter(repo)

	w := performRequest(r, http.MethodGet, "/reservations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "lee", got[0].Info.Name)
	assert.Equal(t, "1", w.Header().Get("Last-Page"))

	// search matches name or phone
	w = performRequest(r, http.MethodGet, "/reservations?search=010-1111", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "kim", got[0].Info.Name)
}

func TestReadReservation(t *testing.T) {
	repo := &fakeReservationRepo{}
	res := seedReservation(t, repo, "kim", "010-1111-2222")
	r := newReservationRouter(repo)

	w := performRequest(r, http.MethodGet, "/reservations/"+res.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, res.ID, got.ID)

	w = performRequest(r, http.MethodGet, "/reservations/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"post not found"}`, w.Body.String())
}

func TestUpdateReservationState(t *testing.T) {
	repo := &fakeReservationRepo{}
	res := seedReservation(t, repo, "kim", "010-1111-2222")
	r := newReservationRouter(repo)

	w := performRequest(r, http.MethodPatch, "/reservations/"+res.ID.Hex(), gin.H{"state": models.ReservationConfirmed})

	require.Equal(t, http.StatusOK, w.Code)
	var got models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.ReservationConfirmed, got.State)
	assert.Equal(t, models.ReservationConfirmed, repo.reservations[0].State)
}

func TestUpdateReservationInvalidState(t *testing.T) {
	repo := &fakeReservationRepo{}
	res := seedReservation(t, repo, "kim", "010-1111-2222")
	r := newReservationRouter(repo)

	for _, state := range []any{7, "confirmed"} {
		w := performRequest(r, http.MethodPatch, "/reservations/"+res.ID.Hex(), gin.H{"state": state})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"schema validation fail"}`, w.Body.String())
	}
	assert.Equal(t, models.ReservationPending, repo.reservations[0].State)
}

func TestUpdateReservationNotFound(t *testing.T) {
	r := newReservationRouter(&fakeReservationRepo{})

	w := performRequest(r, http.MethodPatch, "/reservations/"+primitive.NewObjectID().Hex(), gin.H{"state": 1})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReservation(t *testing.T) {
	repo := &fakeReservationRepo{}
	res := seedReservation(t, repo, "kim", "010-1111-2222")
	r := newReservationRouter(repo)

	w := performRequest(r, http.MethodDelete, "/reservations/"+res.ID.Hex(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.reservations)

	w = performRequest(r, http.MethodDelete, "/reservations/"+res.ID.Hex(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
