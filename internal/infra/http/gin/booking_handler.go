package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"milahouse/internal/app/commands"
	"milahouse/internal/app/dto"
	"milahouse/internal/app/handlers/bookingrequest"
	"milahouse/internal/domain/booking"
	"milahouse/internal/infra/validation"
)

const (
	msgCheckForm   = "Проверьте правильность заполнения формы"
	msgDatesBooked = "Выбранные даты уже заняты, выберите другие"
	msgBadDate     = "некорректная дата"
)

type BookingHandler struct {
	Commands commands.Bus
	Logger   *slog.Logger
}

type bookingFormView struct {
	Form    bookingrequest.SubmitCommand `json:"-"`
	Errors  map[string]string            `json:"errors,omitempty"`
	Message string                       `json:"error,omitempty"`
}

// Request accepts the booking request form. Invalid forms come back
// re-rendered with their errors; nothing is stored, accepted requests are
// only relayed.
func (h BookingHandler) Request(c *gin.Context) {
	var cmd bookingrequest.SubmitCommand
	if err := c.ShouldBind(&cmd); err != nil {
		h.renderForm(c, http.StatusBadRequest, bookingFormView{Form: cmd, Message: msgCheckForm})
		return
	}
	receipt, err := commands.Dispatch[bookingrequest.SubmitCommand, dto.BookingReceipt](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.handleError(c, cmd, err)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("booking request accepted", "request_id", receipt.RequestID, "room_id", receipt.RoomID, "nights", receipt.Nights)
	}
	if wantsJSON(c) {
		c.JSON(http.StatusAccepted, receipt)
		return
	}
	c.HTML(http.StatusAccepted, "booking_receipt.html", receipt)
}

func (h BookingHandler) handleError(c *gin.Context, cmd bookingrequest.SubmitCommand, err error) {
	view := bookingFormView{Form: cmd, Message: msgCheckForm}
	var invalid *validation.Error
	switch {
	case errors.As(err, &invalid):
		view.Errors = invalid.Fields
		h.renderForm(c, http.StatusUnprocessableEntity, view)
	case errors.Is(err, booking.ErrDatesUnavailable):
		view.Message = msgDatesBooked
		h.renderForm(c, http.StatusConflict, view)
	case errors.Is(err, booking.ErrInvalidDates):
		view.Errors = map[string]string{"checkin": msgBadDate, "checkout": msgBadDate}
		h.renderForm(c, http.StatusBadRequest, view)
	default:
		handleError(c, h.Logger, "booking request failed", err)
	}
}

func (h BookingHandler) renderForm(c *gin.Context, status int, view bookingFormView) {
	if wantsJSON(c) {
		c.JSON(status, view)
		return
	}
	c.HTML(status, "booking_form.html", view)
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

var _ BookingHTTP = BookingHandler{}
