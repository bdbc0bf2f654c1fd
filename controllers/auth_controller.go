package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hanuiwon/clinic-api/middleware"
	"github.com/hanuiwon/clinic-api/models"
	"github.com/hanuiwon/clinic-api/repositories"
	"github.com/hanuiwon/clinic-api/sessions"
	"github.com/hanuiwon/clinic-api/utils"
)

// AuthController handles signup, login and logout. Authentication state
// lives entirely in the session store; the controller only verifies
// credentials and binds a session to the user's identifier.
type AuthController struct {
	users      repositories.UserRepository
	sessions   sessions.Store
	sessionTTL time.Duration
}

// NewAuthController creates an AuthController.
func NewAuthController(users repositories.UserRepository, store sessions.Store, sessionTTL time.Duration) *AuthController {
	return &AuthController{users: users, sessions: store, sessionTTL: sessionTTL}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup creates an account with the password hashed before storage.
func (a *AuthController) Signup(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "schema validation fail")
		return
	}

	if _, err := a.users.FindByUsername(ctx.Request.Context(), req.Username); err == nil {
		utils.Error(ctx, http.StatusConflict, "username already exists")
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		utils.Sugar.Errorf("failed to look up username: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Sugar.Errorf("failed to hash password: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	user := models.User{Username: req.Username, Password: hash}
	if err := a.users.Insert(ctx.Request.Context(), &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			utils.Error(ctx, http.StatusConflict, "username already exists")
			return
		}
		utils.Sugar.Errorf("failed to create user: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// Login verifies credentials and establishes a session. The failure reason
// distinguishes an unknown user from a wrong password; both are client errors.
func (a *AuthController) Login(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "schema validation fail")
		return
	}

	user, err := a.users.FindByUsername(ctx.Request.Context(), req.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(ctx, http.StatusBadRequest, "user not exist")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("failed to look up user: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		utils.Error(ctx, http.StatusBadRequest, "incorrect password")
		return
	}

	sid, err := a.sessions.Create(ctx.Request.Context(), user.ID.Hex())
	if err != nil {
		utils.Sugar.Errorf("failed to create session: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "db error")
		return
	}

	ctx.SetCookie(middleware.SessionCookie, sid, int(a.sessionTTL.Seconds()), "/", "", false, true)
	ctx.JSON(http.StatusOK, true)
}

// Logout terminates the current session unconditionally and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	if sid := ctx.GetString(middleware.ContextSessionIDKey); sid != "" {
		if err := a.sessions.Destroy(ctx.Request.Context(), sid); err != nil {
			utils.Sugar.Warnf("failed to destroy session: %v", err)
		}
	}
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	ctx.Status(http.StatusNoContent)
}
