package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hanuiwon/clinic-api/models"
	"github.com/hanuiwon/clinic-api/repositories"
	"github.com/hanuiwon/clinic-api/utils"
)

// ReservationController manages appointment requests.
type ReservationController struct {
	reservations repositories.ReservationRepository
}

// NewReservationController creates a new ReservationController instance.
func NewReservationController(reservations repositories.ReservationRepository) *ReservationController {
	return &ReservationController{reservations: reservations}
}

// Create persists a new reservation. Every field is optional; gender and
// visit markers are normalized to uppercase before storage.
func (r *ReservationController) Create(ctx *gin.Context) {
	var req struct {
		Inquiries       []string                `json:"inquiries"`
		Symptoms        []string                `json:"symptoms"`
		ReservationDate *time.Time              `json:"reservationDate"`
		Info            *models.ReservationInfo `json:"info"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "schema validation fail")
		return
	}

	reservation := models.Reservation{
		State:           models.ReservationPending,
		Inquiries:       req.Inquiries,
		Symptoms:        req.Symptoms,
		ReservationDate: req.ReservationDate,
	}
	if req.Info != nil {
		reservation.Info = *req.Info
		reservation.Info.Gender = strings.ToUpper(reservation.Info.Gender)
		reservation.Info.Visit = strings.ToUpper(reservation.Info.Visit)
	}

	if err := r.reservations.Insert(ctx.Request.Context(), &reservation); err != nil {
		utils.Sugar.Errorf("failed to create reservation: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// List returns paginated reservations, newest first. Search matches the
// patient name or phone number. No field is truncated in the list view.
func (r *ReservationController) List(ctx *gin.Context) {
	page, perPage, ok := parsePagination(ctx)
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid page")
		return
	}

	search := ctx.Query("search")
	window := repositories.Page{Number: page, PerPage: perPage}
	reservations, err := r.reservations.List(ctx.Request.Context(), search, window)
	if err != nil {
		utils.Sugar.Errorf("failed to list reservations: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}
	count, err := r.reservations.Count(ctx.Request.Context(), search)
	if err != nil {
		utils.Sugar.Errorf("failed to count reservations: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	setLastPage(ctx, count, perPage)
	ctx.JSON(http.StatusOK, reservations)
}

// Read returns the full reservation document.
func (r *ReservationController) Read(ctx *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(ctx.Param("id"))
	reservation, err := r.reservations.FindByID(ctx.Request.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("failed to read reservation: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}
	ctx.JSON(http.StatusOK, reservation)
}

// Update merges the partial payload atomically and returns the new state.
// A state change must be one of the known values; nested info fields are
// uppercase-normalized the same way create normalizes them.
func (r *ReservationController) Update(ctx *gin.Context) {
	var changes map[string]any
	if err := ctx.ShouldBindJSON(&changes); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "schema validation fail")
		return
	}
	delete(changes, "id")
	delete(changes, "_id")

	if raw, ok := changes["state"]; ok {
		state, isNum := raw.(float64)
		if !isNum || !validReservationState(int(state)) {
			utils.Error(ctx, http.StatusBadRequest, "schema validation fail")
			return
		}
		changes["state"] = int(state)
	}
	if info, ok := changes["info"].(map[string]any); ok {
		if gender, ok := info["gender"].(string); ok {
			info["gender"] = strings.ToUpper(gender)
		}
		if visit, ok := info["visit"].(string); ok {
			info["visit"] = strings.ToUpper(visit)
		}
	}

	id, _ := primitive.ObjectIDFromHex(ctx.Param("id"))
	reservation, err := r.reservations.Update(ctx.Request.Context(), id, bson.M(changes))
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("failed to update reservation: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// Delete removes the reservation; 204 whether or not a document existed.
func (r *ReservationController) Delete(ctx *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(ctx.Param("id"))
	err := r.reservations.Delete(ctx.Request.Context(), id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		utils.Sugar.Errorf("failed to delete reservation: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func validReservationState(state int) bool {
	switch state {
	case models.ReservationCancelled, models.ReservationPending, models.ReservationConfirmed:
		return true
	}
	return false
}
