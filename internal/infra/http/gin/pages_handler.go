package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"milahouse/internal/app/dto"
	"milahouse/internal/app/handlers/pages"
	"milahouse/internal/app/queries"
)

type PagesHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

func (h PagesHandler) Home(c *gin.Context) {
	page, err := queries.Ask[pages.GetHomeQuery, dto.HomePage](c.Request.Context(), h.Queries, pages.GetHomeQuery{})
	if err != nil {
		handleError(c, h.Logger, "home page failed", err)
		return
	}
	c.HTML(http.StatusOK, "home.html", page)
}

// RoomModal renders the room-detail fragment. Dates carried over from the
// search form arrive as checkin/checkout in dd.MM.yyyy.
func (h PagesHandler) RoomModal(c *gin.Context) {
	query := pages.GetRoomModalQuery{
		RoomID:   c.Param("id"),
		CheckIn:  c.Query("checkin"),
		CheckOut: c.Query("checkout"),
		Month:    c.Query("month"),
	}
	modal, err := queries.Ask[pages.GetRoomModalQuery, dto.RoomModal](c.Request.Context(), h.Queries, query)
	if err != nil {
		handleError(c, h.Logger, "room modal failed", err)
		return
	}
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, modal)
		return
	}
	c.HTML(http.StatusOK, "room_modal.html", modal)
}

// Search answers the hero form. Dates arrive in the long form.
func (h PagesHandler) Search(c *gin.Context) {
	var query pages.SearchRoomsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, http.StatusBadRequest, err)
		return
	}
	page, err := queries.Ask[pages.SearchRoomsQuery, dto.SearchPage](c.Request.Context(), h.Queries, query)
	if err != nil {
		handleError(c, h.Logger, "room search failed", err)
		return
	}
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, page)
		return
	}
	c.HTML(http.StatusOK, "search.html", page)
}

var _ PagesHTTP = PagesHandler{}
