package api

import (
	"net/http"
	"strconv"

	"roomstay-admin/internal/domain/room"
	reqdto "roomstay-admin/internal/handler/dto/request"
	resdto "roomstay-admin/internal/handler/dto/response"
	"roomstay-admin/internal/handler/httperr"
	"roomstay-admin/internal/upstream"
	"roomstay-admin/internal/usecase/commands"
	"roomstay-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const defaultRoomPageSize = 6

type RoomHandler struct {
	queries  queries.RoomQueries
	commands *commands.Coordinator[room.Room]
	uploads  *upstream.Rooms
}

func NewRoomHandler(q queries.RoomQueries, c *commands.Coordinator[room.Room], u *upstream.Rooms) *RoomHandler {
	return &RoomHandler{queries: q, commands: c, uploads: u}
}

// @Summary List rooms
// @Description Paged room list; pass locationId to scope to one location
// @Tags rooms
// @Produce json
// @Param search query string false "Substring match on name and description"
// @Param page query int false "1-based page index"
// @Param pageSize query int false "Rows per page"
// @Param locationId query int false "Scope the list to one location"
// @Param wifi query bool false "Exact wifi filter"
// @Success 200 {object} resdto.ListResponse[resdto.RoomResponse]
// @Failure 401 {object} httperr.Response
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	var req reqdto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	filters := map[string]string{}
	if wifi := c.Query("wifi"); wifi != "" {
		filters["wifi"] = wifi
	}

	var (
		page *queries.ListPage[room.Room]
		err  error
	)
	if locStr := c.Query("locationId"); locStr != "" {
		locationID, parseErr := strconv.ParseInt(locStr, 10, 64)
		if parseErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid location ID", nil)
			return
		}
		page, err = h.queries.ListByLocation(c.Request.Context(), locationID, req.ToQuery(defaultRoomPageSize, filters))
	} else {
		page, err = h.queries.List(c.Request.Context(), req.ToQuery(defaultRoomPageSize, filters))
	}
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListPage(page, resdto.FromRoom))
}

// @Summary Get room
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 404 {object} httperr.Response
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rec, localOnly, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoom(rec, localOnly))
}

// @Summary Create room
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body reqdto.RoomRequest true "New room"
// @Success 201 {object} resdto.MutationResponse[resdto.RoomResponse]
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req reqdto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	res, err := h.commands.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromMutation(res, resdto.FromRoom))
}

// @Summary Update room
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body reqdto.RoomRequest true "Updated room"
// @Success 200 {object} resdto.MutationResponse[resdto.RoomResponse]
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	res, err := h.commands.Update(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromMutation(res, resdto.FromRoom))
}

// @Summary Delete room
// @Tags rooms
// @Param id path int true "Room ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
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

// @Summary Upload room image
// @Description Attach an image to an existing room via the upstream's multipart endpoint
// @Tags rooms
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Room ID"
// @Param formFile formData file true "Image file"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /rooms/{id}/image [post]
func (h *RoomHandler) UploadImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("formFile")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Image file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read image file", nil)
		return
	}
	defer file.Close()

	rec, err := h.commands.UploadAsset(c.Request.Context(), id, h.uploads.UploadImage, commands.Asset{
		Filename: fileHeader.Filename,
		Content:  file,
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoom(rec, false))
}
