package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hanuiwon/clinic-api/models"
	"github.com/hanuiwon/clinic-api/repositories"
	"github.com/hanuiwon/clinic-api/utils"
)

// List views cut the content down to this many runes.
const counsellingPreviewLength = 100

// CounsellingController manages the online counselling board: password-gated
// Q&A entries with embedded comment threads.
type CounsellingController struct {
	counsellings repositories.CounsellingRepository
}

// NewCounsellingController creates a new CounsellingController instance.
func NewCounsellingController(counsellings repositories.CounsellingRepository) *CounsellingController {
	return &CounsellingController{counsellings: counsellings}
}

// Create persists a new counselling entry. The access password is hashed
// here, before the write; it is the only place a counselling password is set.
func (c *CounsellingController) Create(ctx *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content" binding:"required"`
		Writer   string `json:"writer" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "schema validation fail")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Sugar.Errorf("failed to hash counselling password: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	counselling := models.OnlineCounselling{
		Title:    req.Title,
		Content:  req.Content,
		Writer:   req.Writer,
		Password: hash,
	}

	if err := c.counsellings.Insert(ctx.Request.Context(), &counselling); err != nil {
		utils.Sugar.Errorf("failed to create counselling: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	ctx.JSON(http.StatusOK, counselling)
}

// List returns paginated counselling entries, newest first, with contents
// shortened for the list view. Search matches title or writer.
func (c *CounsellingController) List(ctx *gin.Context) {
	page, perPage, ok := parsePagination(ctx)
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid page")
		return
	}

	search := ctx.Query("search")
	window := repositories.Page{Number: page, PerPage: perPage}
	counsellings, err := c.counsellings.List(ctx.Request.Context(), search, window)
	if err != nil {
		utils.Sugar.Errorf("failed to list counsellings: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}
	count, err := c.counsellings.Count(ctx.Request.Context(), search)
	if err != nil {
		utils.Sugar.Errorf("failed to count counsellings: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	for i := range counsellings {
		counsellings[i].Content = truncateText(counsellings[i].Content, counsellingPreviewLength)
	}

	setLastPage(ctx, count, perPage)
	ctx.JSON(http.StatusOK, counsellings)
}

// Read returns the full document including comments. The entry must exist
// before the password is checked: a missing document is 404, a wrong (or
// absent) password on an existing one is 400.
func (c *CounsellingController) Read(ctx *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(ctx.Param("id"))
	counselling, err := c.counsellings.FindByID(ctx.Request.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("failed to read counselling: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	if !utils.CheckPassword(counselling.Password, ctx.Query("password")) {
		utils.Error(ctx, http.StatusBadRequest, "incorrect password")
		return
	}

	ctx.JSON(http.StatusOK, counselling)
}

// WriteComment appends a comment to the parent entry and returns the updated
// parent. A missing parent reports not found rather than faulting.
func (c *CounsellingController) WriteComment(ctx *gin.Context) {
	var req struct {
		Writer  string `json:"writer" binding:"required"`
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "schema validation fail")
		return
	}

	id, _ := primitive.ObjectIDFromHex(ctx.Param("id"))
	comment := models.NewComment(req.Writer, req.Content)
	counselling, err := c.counsellings.AppendComment(ctx.Request.Context(), id, comment)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("failed to append comment: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	ctx.JSON(http.StatusOK, counselling)
}

// Update merges the partial payload atomically and returns the new state.
// The payload is applied as-is; it must not smuggle a plaintext password in,
// so that field is dropped rather than stored unhashed.
func (c *CounsellingController) Update(ctx *gin.Context) {
	var changes map[string]any
	if err := ctx.ShouldBindJSON(&changes); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "schema validation fail")
		return
	}
	delete(changes, "id")
	delete(changes, "_id")

	if raw, ok := changes["password"]; ok {
		password, _ := raw.(string)
		if password == "" {
			delete(changes, "password")
		} else {
			hash, err := utils.HashPassword(password)
			if err != nil {
				utils.Sugar.Errorf("failed to hash counselling password: %v", err)
				utils.Error(ctx, http.StatusInternalServerError, "db error")
				return
			}
			changes["password"] = hash
		}
	}

	id, _ := primitive.ObjectIDFromHex(ctx.Param("id"))
	counselling, err := c.counsellings.Update(ctx.Request.Context(), id, bson.M(changes))
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("failed to update counselling: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	ctx.JSON(http.StatusOK, counselling)
}

// Delete removes the entry; 204 whether or not a document existed.
func (c *CounsellingController) Delete(ctx *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(ctx.Param("id"))
	err := c.counsellings.Delete(ctx.Request.Context(), id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		utils.Sugar.Errorf("failed to delete counselling: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}
	ctx.Status(http.StatusNoContent)
}
