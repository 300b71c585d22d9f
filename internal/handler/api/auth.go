package api

import (
	"net/http"

	reqdto "roomstay-admin/internal/handler/dto/request"
	resdto "roomstay-admin/internal/handler/dto/response"
	"roomstay-admin/internal/handler/httperr"
	"roomstay-admin/internal/handler/middleware"
	"roomstay-admin/internal/pkg/errs"
	"roomstay-admin/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
}

func NewAuthHandler(authCommands commands.AuthCommands) *AuthHandler {
	return &AuthHandler{authCommands: authCommands}
}

// @Summary Login
// @Description Exchange credentials with the booking upstream and persist the session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	ident, err := h.authCommands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromIdentity(ident))
}

// @Summary Register
// @Description Create a new account on the booking upstream
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "New account"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	created, err := h.authCommands.Register(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromUser(created, false))
}

// @Summary Logout
// @Description Drop the persisted session
// @Tags auth
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authCommands.Logout(c.Request.Context()); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Current session
// @Description Return the identity of the active session
// @Tags auth
// @Produce json
// @Success 200 {object} resdto.SessionResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing from context"), "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromIdentity(ident))
}
