package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"expense-api/internal/logging"
	"expense-api/internal/store"
	"expense-api/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and the current identity.
type AuthHandler struct {
	Users  *store.Users
	Tokens *util.TokenService
	Log    *slog.Logger
}

func NewAuthHandler(users *store.Users, tokens *util.TokenService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Users:  users,
		Tokens: tokens,
		Log:    logging.WithComponent(log, logging.ComponentAuth),
	}
}

// ---------- register ----------

type registerReq struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	user, err := h.Users.Create(c.Request.Context(), strings.TrimSpace(req.Email), strings.TrimSpace(req.FullName), req.Password)
	if err != nil {
		respondError(c, h.Log, "register", err)
		return
	}

	h.Log.Info("user registered", logging.FieldUserID, user.ID)
	util.Success(c, toUserResp(user))
}

// ---------- login ----------

// loginReq binds from a JSON body, a form body or the query string.
type loginReq struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := bindLogin(c, &req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email and password are required")
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Incorrect email or password")
			return
		}
		respondError(c, h.Log, "login", err)
		return
	}

	token, err := h.Tokens.Issue(user.Email)
	if err != nil {
		respondError(c, h.Log, "issue token", err)
		return
	}

	util.Success(c, tokenResp{AccessToken: token, TokenType: "bearer"})
}

// bindLogin falls back to the query string when a JSON request has no body.
func bindLogin(c *gin.Context, req *loginReq) error {
	err := c.ShouldBind(req)
	if errors.Is(err, io.EOF) {
		return c.ShouldBindQuery(req)
	}
	return err
}

// ---------- me ----------

// Me returns the identity resolved by the auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	util.Success(c, toUserResp(user))
}
