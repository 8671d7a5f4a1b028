package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"milahouse/internal/app/dto"
	availabilityapp "milahouse/internal/app/handlers/availability"
	"milahouse/internal/app/queries"
)

type AvailabilityHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

// Hotel serves the dates the room-agnostic search form refuses.
func (h AvailabilityHandler) Hotel(c *gin.Context) {
	h.respond(c, availabilityapp.GetDisabledDatesQuery{})
}

func (h AvailabilityHandler) Room(c *gin.Context) {
	h.respond(c, availabilityapp.GetDisabledDatesQuery{RoomID: c.Param("id")})
}

func (h AvailabilityHandler) respond(c *gin.Context, query availabilityapp.GetDisabledDatesQuery) {
	result, err := queries.Ask[availabilityapp.GetDisabledDatesQuery, dto.DisabledDates](c.Request.Context(), h.Queries, query)
	if err != nil {
		handleError(c, h.Logger, "disabled dates failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
