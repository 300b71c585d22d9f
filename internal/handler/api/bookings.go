package api

import (
	"net/http"
	"strconv"

	"roomstay-admin/internal/domain/booking"
	reqdto "roomstay-admin/internal/handler/dto/request"
	resdto "roomstay-admin/internal/handler/dto/response"
	"roomstay-admin/internal/handler/httperr"
	"roomstay-admin/internal/usecase/commands"
	"roomstay-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const defaultBookingPageSize = 10

type BookingHandler struct {
	queries  queries.BookingQueries
	commands *commands.Coordinator[booking.Booking]
}

func NewBookingHandler(q queries.BookingQueries, c *commands.Coordinator[booking.Booking]) *BookingHandler {
	return &BookingHandler{queries: q, commands: c}
}

// @Summary List bookings
// @Description Paged booking list; pass userId to scope to one guest
// @Tags bookings
// @Produce json
// @Param search query string false "Substring match"
// @Param page query int false "1-based page index"
// @Param pageSize query int false "Rows per page"
// @Param userId query int false "Scope the list to one guest"
// @Success 200 {object} resdto.ListResponse[resdto.BookingResponse]
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var req reqdto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	var (
		page *queries.ListPage[booking.Booking]
		err  error
	)
	if userStr := c.Query("userId"); userStr != "" {
		userID, parseErr := strconv.ParseInt(userStr, 10, 64)
		if parseErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid user ID", nil)
			return
		}
		page, err = h.queries.ListByUser(c.Request.Context(), userID, req.ToQuery(defaultBookingPageSize, nil))
	} else {
		page, err = h.queries.List(c.Request.Context(), req.ToQuery(defaultBookingPageSize, nil))
	}
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListPage(page, resdto.FromBooking))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rec, localOnly, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(rec, localOnly))
}

// @Summary Create booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.BookingRequest true "New booking"
// @Success 201 {object} resdto.MutationResponse[resdto.BookingResponse]
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	res, err := h.commands.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromMutation(res, resdto.FromBooking))
}

// @Summary Update booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body reqdto.BookingRequest true "Updated booking"
// @Success 200 {object} resdto.MutationResponse[resdto.BookingResponse]
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	res, err := h.commands.Update(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromMutation(res, resdto.FromBooking))
}

// @Summary Delete booking
// @Tags bookings
// @Param id path int true "Booking ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
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
