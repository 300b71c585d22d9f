package api

import (
	"context"
	"io"
	"net/http"

	"roomstay-admin/internal/domain/user"
	reqdto "roomstay-admin/internal/handler/dto/request"
	resdto "roomstay-admin/internal/handler/dto/response"
	"roomstay-admin/internal/handler/httperr"
	"roomstay-admin/internal/handler/middleware"
	"roomstay-admin/internal/pkg/errs"
	"roomstay-admin/internal/upstream"
	"roomstay-admin/internal/usecase/commands"
	"roomstay-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the logged-in account's own record, as opposed
// to the admin user CRUD.
type ProfileHandler struct {
	queries  queries.UserQueries
	commands *commands.Coordinator[user.User]
	uploads  *upstream.Users
}

func NewProfileHandler(q queries.UserQueries, c *commands.Coordinator[user.User], u *upstream.Users) *ProfileHandler {
	return &ProfileHandler{queries: q, commands: c, uploads: u}
}

// @Summary Get profile
// @Description Full record of the logged-in account
// @Tags profile
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing from context"), "Internal server error", nil)
		return
	}

	rec, localOnly, err := h.queries.Get(c.Request.Context(), ident.UserID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUser(rec, localOnly))
}

// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body reqdto.ProfileRequest true "Updated profile"
// @Success 200 {object} resdto.MutationResponse[resdto.UserResponse]
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing from context"), "Internal server error", nil)
		return
	}

	var req reqdto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	current, _, err := h.queries.Get(c.Request.Context(), ident.UserID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	res, err := h.commands.Update(c.Request.Context(), ident.UserID, req.ToDomain(current))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromMutation(res, resdto.FromUser))
}

// @Summary Upload avatar
// @Description Attach an avatar to the logged-in account
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param formFile formData file true "Avatar image"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing from context"), "Internal server error", nil)
		return
	}

	fileHeader, err := c.FormFile("formFile")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Avatar file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read avatar file", nil)
		return
	}
	defer file.Close()

	// The upstream derives the target account from the bearer token,
	// so the uploader ignores the record id.
	upload := func(ctx context.Context, _ int64, filename string, content io.Reader) (user.User, error) {
		return h.uploads.UploadAvatar(ctx, filename, content)
	}

	rec, err := h.commands.UploadAsset(c.Request.Context(), ident.UserID, upload, commands.Asset{
		Filename: fileHeader.Filename,
		Content:  file,
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUser(rec, false))
}
