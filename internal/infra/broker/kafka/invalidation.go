package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/IBM/sarama"
)

// Deduper reports whether an event id was already handled.
type Deduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
}

// Invalidation reacts to the reservations backend announcing booking changes
// by asking for an immediate snapshot refresh. Events are CloudEvents; only
// types starting with one of Types count, all of them when Types is empty.
type Invalidation struct {
	Inbox   Deduper
	Types   []string
	Refresh func()
	Logger  *slog.Logger
}

type cloudEventHead struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

func (h Invalidation) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	head := headOf(msg)
	if !h.relevant(head.Type) {
		return nil
	}
	if h.Inbox != nil && head.ID != "" {
		seen, err := h.Inbox.Seen(ctx, head.ID)
		if err != nil {
			return err
		}
		if seen {
			return nil
		}
	}
	if h.Logger != nil {
		h.Logger.Debug("booking snapshot invalidated", "event_id", head.ID, "type", head.Type)
	}
	if h.Refresh != nil {
		h.Refresh()
	}
	return nil
}

func (h Invalidation) relevant(typ string) bool {
	if len(h.Types) == 0 {
		return true
	}
	for _, prefix := range h.Types {
		if strings.HasPrefix(typ, prefix) {
			return true
		}
	}
	return false
}

// headOf reads the event id and type from binary-mode ce_ headers, falling
// back to a structured JSON body.
func headOf(msg *sarama.ConsumerMessage) cloudEventHead {
	var head cloudEventHead
	for _, hdr := range msg.Headers {
		if hdr == nil {
			continue
		}
		switch string(hdr.Key) {
		case "ce_id":
			head.ID = string(hdr.Value)
		case "ce_type":
			head.Type = string(hdr.Value)
		}
	}
	if head.ID != "" && head.Type != "" {
		return head
	}
	var body cloudEventHead
	if err := json.Unmarshal(msg.Value, &body); err == nil {
		if head.ID == "" {
			head.ID = body.ID
		}
		if head.Type == "" {
			head.Type = body.Type
		}
	}
	return head
}

var _ MessageHandler = Invalidation{}
