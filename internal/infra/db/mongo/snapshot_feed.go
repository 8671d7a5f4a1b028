package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"milahouse/internal/app/policies"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
)

const stateCancelled = "cancelled"

// SnapshotFeed reads current bookings from the reservations database.
// Cancelled bookings and stays that ended before the lookback window are
// skipped.
type SnapshotFeed struct {
	Collection   *mongo.Collection
	Calendar     datecodec.Calendar
	LookbackDays int
}

func NewSnapshotFeed(db *mongo.Database, collection string, cal datecodec.Calendar) *SnapshotFeed {
	return &SnapshotFeed{Collection: db.Collection(collection), Calendar: cal, LookbackDays: 365}
}

func (f *SnapshotFeed) Fetch(ctx context.Context) ([]booking.Record, error) {
	since := f.Calendar.Today().AddDate(0, 0, -f.LookbackDays)
	cur, err := f.Collection.Find(ctx, snapshotFilter(datecodec.ISO(since)), options.Find().SetSort(bson.D{{Key: "checkin", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: find bookings: %w", err)
	}
	var docs []bookingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode bookings: %w", err)
	}
	out := make([]booking.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRecord())
	}
	return out, nil
}

func snapshotFilter(since string) bson.M {
	return bson.M{
		"state":    bson.M{"$ne": stateCancelled},
		"checkout": bson.M{"$gte": since},
	}
}

type bookingDocument struct {
	ID       string  `bson:"_id"`
	RoomID   string  `bson:"room_id,omitempty"`
	CheckIn  string  `bson:"checkin"`
	CheckOut string  `bson:"checkout"`
	Guest    string  `bson:"guest_name,omitempty"`
	City     string  `bson:"city,omitempty"`
	Adults   int     `bson:"adults"`
	Children int     `bson:"children"`
	Total    float64 `bson:"total"`
	Comment  string  `bson:"comment,omitempty"`
	State    string  `bson:"state"`
}

func (d bookingDocument) toRecord() booking.Record {
	rec := booking.Record{
		ID:       booking.Text(d.ID),
		CheckIn:  d.CheckIn,
		CheckOut: d.CheckOut,
		Guest:    booking.Guest{Name: d.Guest},
		City:     d.City,
		Comment:  d.Comment,
	}
	if d.RoomID != "" {
		rec.RoomID = booking.Text(d.RoomID)
	}
	if d.Adults > 0 {
		rec.Guests = booking.GuestBreakdown(d.Adults, d.Children)
	}
	if d.Total != 0 {
		rec.Total = booking.Number(d.Total)
	}
	return rec
}

var _ policies.SnapshotFeed = (*SnapshotFeed)(nil)
