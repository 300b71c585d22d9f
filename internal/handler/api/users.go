package api

import (
	"net/http"
	"strconv"

	"roomstay-admin/internal/domain/user"
	reqdto "roomstay-admin/internal/handler/dto/request"
	resdto "roomstay-admin/internal/handler/dto/response"
	"roomstay-admin/internal/handler/httperr"
	"roomstay-admin/internal/usecase/commands"
	"roomstay-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const defaultUserPageSize = 10

type UserHandler struct {
	queries  queries.UserQueries
	commands *commands.Coordinator[user.User]
}

func NewUserHandler(q queries.UserQueries, c *commands.Coordinator[user.User]) *UserHandler {
	return &UserHandler{queries: q, commands: c}
}

// @Summary List users
// @Description Paged user list with keyword search and field filters
// @Tags users
// @Produce json
// @Param search query string false "Substring match on name, email, phone"
// @Param page query int false "1-based page index"
// @Param pageSize query int false "Rows per page"
// @Param role query string false "Exact role filter (ADMIN or USER)"
// @Param gender query bool false "Exact gender filter"
// @Success 200 {object} resdto.ListResponse[resdto.UserResponse]
// @Failure 401 {object} httperr.Response
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var req reqdto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	filters := map[string]string{}
	if role := c.Query("role"); role != "" {
		filters["role"] = role
	}
	if gender := c.Query("gender"); gender != "" {
		filters["gender"] = gender
	}

	page, err := h.queries.List(c.Request.Context(), req.ToQuery(defaultUserPageSize, filters))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListPage(page, resdto.FromUser))
}

// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 404 {object} httperr.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rec, localOnly, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUser(rec, localOnly))
}

// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body reqdto.UserRequest true "New user"
// @Success 201 {object} resdto.MutationResponse[resdto.UserResponse]
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req reqdto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	res, err := h.commands.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromMutation(res, resdto.FromUser))
}

// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body reqdto.UserRequest true "Updated user"
// @Success 200 {object} resdto.MutationResponse[resdto.UserResponse]
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	res, err := h.commands.Update(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromMutation(res, resdto.FromUser))
}

// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.commands.Delete(c.Request.Context(), id); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// pathID parses the :id segment, aborting with a 400 on garbage.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid record ID", nil)
		return 0, false
	}
	return id, true
}
