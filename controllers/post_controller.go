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

// List views cut the body down to this many runes.
const postBodyPreviewLength = 350

// PostController manages CRUD operations for blog posts.
type PostController struct {
	posts repositories.PostRepository
}

// NewPostController creates a new PostController instance.
func NewPostController(posts repositories.PostRepository) *PostController {
	return &PostController{posts: posts}
}

// Create persists a new post from a validated payload.
func (p *PostController) Create(ctx *gin.Context) {
	var req struct {
		Title    string   `json:"title" binding:"required"`
		Body     string   `json:"body" binding:"required"`
		Type     string   `json:"type" binding:"required"`
		Info     string   `json:"info"`
		Tags     []string `json:"tags"`
		Category string   `json:"category"`
		URL      string   `json:"url"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "schema validation fail")
		return
	}

	post := models.Post{
		Title:    req.Title,
		Body:     req.Body,
		Type:     req.Type,
		Info:     req.Info,
		Tags:     req.Tags,
		Category: req.Category,
		URL:      req.URL,
	}

	if err := p.posts.Insert(ctx.Request.Context(), &post); err != nil {
		utils.Sugar.Errorf("failed to create post: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// List returns paginated posts, newest first, with bodies shortened for the
// list view. The Last-Page header carries the total page count.
func (p *PostController) List(ctx *gin.Context) {
	page, perPage, ok := parsePagination(ctx)
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid page")
		return
	}

	q := repositories.PostQuery{
		Type:   ctx.Query("type"),
		Search: ctx.Query("search"),
	}
	if tag := ctx.Query("tag"); tag != "" {
		q.Tags = strings.Split(tag, ",")
	}

	window := repositories.Page{Number: page, PerPage: perPage}
	posts, err := p.posts.List(ctx.Request.Context(), q, window)
	if err != nil {
		utils.Sugar.Errorf("failed to list posts: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}
	count, err := p.posts.Count(ctx.Request.Context(), q)
	if err != nil {
		utils.Sugar.Errorf("failed to count posts: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	for i := range posts {
		posts[i].Body = truncateText(posts[i].Body, postBodyPreviewLength)
	}

	setLastPage(ctx, count, perPage)
	ctx.JSON(http.StatusOK, posts)
}

// Read returns the full document for one post.
func (p *PostController) Read(ctx *gin.Context) {
	idStr := ctx.Param("id")

	if b, ok := utils.CacheGetBytes("cache:post:detail:" + idStr); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	id, _ := primitive.ObjectIDFromHex(idStr)
	post, err := p.posts.FindByID(ctx.Request.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("failed to read post: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	utils.CacheSetJSON("cache:post:detail:"+idStr, post, time.Hour)
	ctx.JSON(http.StatusOK, post)
}

// ReadByURL resolves a post through its unique url field.
func (p *PostController) ReadByURL(ctx *gin.Context) {
	post, err := p.posts.FindByURL(ctx.Request.Context(), ctx.Query("url"))
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("failed to read post by url: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}
	ctx.JSON(http.StatusOK, post)
}

// Update merges the partial payload into the stored document atomically and
// returns the post-update state.
func (p *PostController) Update(ctx *gin.Context) {
	var changes map[string]any
	if err := ctx.ShouldBindJSON(&changes); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "schema validation fail")
		return
	}
	delete(changes, "id")
	delete(changes, "_id")

	id, _ := primitive.ObjectIDFromHex(ctx.Param("id"))
	post, err := p.posts.Update(ctx.Request.Context(), id, bson.M(changes))
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("failed to update post: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	utils.InvalidateByPrefix("cache:post:detail:" + ctx.Param("id"))
	ctx.JSON(http.StatusOK, post)
}

// Delete removes the post. The response is 204 whether or not a document
// existed; delete is idempotent from the caller's view.
func (p *PostController) Delete(ctx *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(ctx.Param("id"))
	err := p.posts.Delete(ctx.Request.Context(), id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		utils.Sugar.Errorf("failed to delete post: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	utils.InvalidateByPrefix("cache:post:detail:" + ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}
