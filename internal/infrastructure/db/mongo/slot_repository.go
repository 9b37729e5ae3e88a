package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
)

const collectionSlots = "appointments"

type SlotRepository struct {
	col *mongo.Collection
}

func NewSlotRepository(db *mongo.Database) *SlotRepository {
	return &SlotRepository{col: db.Collection(collectionSlots)}
}

// Get retrieves the record for one (date, time_slot) key.
func (r *SlotRepository) Get(ctx context.Context, date, slot string) (*domain.SlotRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec domain.SlotRecord
	err := r.col.FindOne(ctx, bson.M{"date": date, "time_slot": slot}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ListDay returns all records stored under a date, keyed by time slot.
func (r *SlotRepository) ListDay(ctx context.Context, date string) (map[string]domain.SlotRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]domain.SlotRecord)
	for cur.Next(ctx) {
		var rec domain.SlotRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out[rec.TimeSlot] = rec
	}
	return out, cur.Err()
}

// CreateIfAbsent inserts rec only when the key is unoccupied. The unique
// compound index on (date, time_slot) makes this the atomic claim that two
// near-simultaneous bookings race on; the loser gets domain.ErrSlotTaken
// instead of silently overwriting the winner.
func (r *SlotRepository) CreateIfAbsent(ctx context.Context, rec *domain.SlotRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlotTaken
		}
		return err
	}
	return nil
}

// Put replaces the record for rec's key, creating it when absent.
func (r *SlotRepository) Put(ctx context.Context, rec *domain.SlotRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"date": rec.Date, "time_slot": rec.TimeSlot}
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, filter, rec, opts)
	return err
}

// Merge sets feedback and session completion on an existing record, leaving
// every other field untouched.
func (r *SlotRepository) Merge(ctx context.Context, date, slot, feedback string, sessionComplete bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"date": date, "time_slot": slot}
	update := bson.M{"$set": bson.M{
		"feedback":         feedback,
		"session_complete": sessionComplete,
	}}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSlotNotFound
	}
	return nil
}

// Delete removes the record, reverting the key to implicit Free.
func (r *SlotRepository) Delete(ctx context.Context, date, slot string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"date": date, "time_slot": slot})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSlotNotFound
	}
	return nil
}

// EnsureIndexes creates the unique compound index that backs CreateIfAbsent.
func (r *SlotRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time_slot", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
