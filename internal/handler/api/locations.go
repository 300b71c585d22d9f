package api

import (
	"net/http"

	"roomstay-admin/internal/domain/location"
	reqdto "roomstay-admin/internal/handler/dto/request"
	resdto "roomstay-admin/internal/handler/dto/response"
	"roomstay-admin/internal/handler/httperr"
	"roomstay-admin/internal/usecase/commands"
	"roomstay-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const defaultLocationPageSize = 10

type LocationHandler struct {
	queries  queries.LocationQueries
	commands *commands.Coordinator[location.Location]
}

func NewLocationHandler(q queries.LocationQueries, c *commands.Coordinator[location.Location]) *LocationHandler {
	return &LocationHandler{queries: q, commands: c}
}

// @Summary List locations
// @Tags locations
// @Produce json
// @Param search query string false "Substring match on name, province, country"
// @Param page query int false "1-based page index"
// @Param pageSize query int false "Rows per page"
// @Param country query string false "Exact country filter"
// @Param province query string false "Exact province filter"
// @Success 200 {object} resdto.ListResponse[resdto.LocationResponse]
// @Failure 401 {object} httperr.Response
// @Router /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	var req reqdto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	filters := map[string]string{}
	if country := c.Query("country"); country != "" {
		filters["country"] = country
	}
	if province := c.Query("province"); province != "" {
		filters["province"] = province
	}

	page, err := h.queries.List(c.Request.Context(), req.ToQuery(defaultLocationPageSize, filters))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListPage(page, resdto.FromLocation))
}

// @Summary Get location
// @Tags locations
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} resdto.LocationResponse
// @Failure 404 {object} httperr.Response
// @Router /locations/{id} [get]
func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rec, localOnly, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromLocation(rec, localOnly))
}

// @Summary Create location
// @Tags locations
// @Accept json
// @Produce json
// @Param request body reqdto.LocationRequest true "New location"
// @Success 201 {object} resdto.MutationResponse[resdto.LocationResponse]
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req reqdto.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	res, err := h.commands.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromMutation(res, resdto.FromLocation))
}

// @Summary Update location
// @Tags locations
// @Accept json
// @Produce json
// @Param id path int true "Location ID"
// @Param request body reqdto.LocationRequest true "Updated location"
// @Success 200 {object} resdto.MutationResponse[resdto.LocationResponse]
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	res, err := h.commands.Update(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromMutation(res, resdto.FromLocation))
}

// @Summary Delete location
// @Tags locations
// @Param id path int true "Location ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
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
