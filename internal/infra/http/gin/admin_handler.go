package ginserver

import (
	"fmt"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"milahouse/internal/app/admin"
	"milahouse/internal/app/dto"
	"milahouse/internal/app/handlers/adminboard"
	"milahouse/internal/app/queries"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/rooms"
	"milahouse/internal/infra/ics"
)

type AdminHandler struct {
	Queries  queries.Bus
	Rooms    rooms.Catalog
	Calendar datecodec.Calendar
	Logger   *slog.Logger
}

type adminPage struct {
	Rooms       []dto.Room
	Board       admin.Board
	Form        dto.AdminForm
	Weekdays    []string
	EmptyLedger string
}

// Page renders the board and booking form of the ?room= tab, the first
// room by default.
func (h AdminHandler) Page(c *gin.Context) {
	ctx := c.Request.Context()
	board, err := queries.Ask[adminboard.GetBoardQuery, admin.Board](ctx, h.Queries, adminboard.GetBoardQuery{RoomID: c.Query("room")})
	if err != nil {
		handleError(c, h.Logger, "admin board failed", err)
		return
	}
	form, err := queries.Ask[adminboard.GetFormQuery, dto.AdminForm](ctx, h.Queries, adminboard.GetFormQuery{
		RoomID:   board.RoomID,
		CheckIn:  c.Query("checkin"),
		CheckOut: c.Query("checkout"),
	})
	if err != nil {
		handleError(c, h.Logger, "admin form failed", err)
		return
	}
	page := adminPage{Board: board, Form: form, Weekdays: admin.Weekdays, EmptyLedger: admin.EmptyLedger}
	for _, r := range h.Rooms.All() {
		page.Rooms = append(page.Rooms, dto.MapRoom(r, admin.FormatMoney))
	}
	c.HTML(http.StatusOK, "admin.html", page)
}

func (h AdminHandler) Board(c *gin.Context) {
	board, err := queries.Ask[adminboard.GetBoardQuery, admin.Board](c.Request.Context(), h.Queries, adminboard.GetBoardQuery{RoomID: c.Param("id")})
	if err != nil {
		handleError(c, h.Logger, "admin board failed", err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Export serves the room's bookings as an iCalendar file.
func (h AdminHandler) Export(c *gin.Context) {
	room, err := h.Rooms.Lookup(c.Param("id"))
	if err != nil {
		handleError(c, h.Logger, "ics export failed", err)
		return
	}
	records, err := queries.Ask[adminboard.ListRoomBookingsQuery, []booking.Record](c.Request.Context(), h.Queries, adminboard.ListRoomBookingsQuery{RoomID: room.ID})
	if err != nil {
		handleError(c, h.Logger, "ics export failed", err)
		return
	}
	body := ics.Export(room.Title, records, h.Calendar.Location, h.Calendar.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="room-%s.ics"`, room.ID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// Nights counts the nights between the dd.MM.yyyy checkin and checkout
// query values.
func (h AdminHandler) Nights(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"nights": admin.StayNights(h.Calendar, c.Query("checkin"), c.Query("checkout"))})
}

var _ AdminHTTP = AdminHandler{}
