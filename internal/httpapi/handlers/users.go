package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/gopherchat/assistant-gateway/internal/common"
	"github.com/gopherchat/assistant-gateway/internal/httpapi/middleware"
	"github.com/gopherchat/assistant-gateway/internal/identity"
)

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"message": "pong"})
}

type registerReq struct {
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	FullName *string `json:"full_name"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "email and password required")
		return
	}

	creds, err := h.deps.Identity.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		log.Error().Err(err).Msg("registration error")
		common.Fail(c, http.StatusBadRequest, 10003, "failed to create user (maybe email already exists)")
		return
	}

	common.OK(c, gin.H{
		"message":      "User created successfully",
		"access_token": creds.AccessToken,
		"token_type":   "bearer",
		"user": gin.H{
			"id":        creds.User.ID,
			"email":     creds.User.Email,
			"full_name": creds.User.FullName,
		},
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		// OAuth2-style form clients post username/password instead.
		req.Email = c.PostForm("username")
		req.Password = c.PostForm("password")
	}
	if req.Email == "" || req.Password == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "email and password required")
		return
	}

	creds, err := h.deps.Identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			common.Fail(c, http.StatusUnauthorized, 40103, "incorrect email or password")
			return
		}
		log.Error().Err(err).Msg("login error")
		common.Fail(c, http.StatusInternalServerError, 50003, "login failed")
		return
	}

	common.OK(c, gin.H{
		"access_token": creds.AccessToken,
		"token_type":   "bearer",
		"user": gin.H{
			"id":        creds.User.ID,
			"email":     creds.User.Email,
			"full_name": creds.User.FullName,
		},
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}
	common.OK(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"full_name":  user.FullName,
		"created_at": user.CreatedAt,
	})
}
