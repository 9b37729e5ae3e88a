package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionHolidays = "holidays"

// holidayDocID is the single document holding the whole holiday set.
const holidayDocID = "holidays"

// HolidayRepository stores the holiday set as one document with a dates
// array. Membership changes go through $addToSet / $pull so concurrent admin
// edits never clobber each other the way a whole-set rewrite would.
type HolidayRepository struct {
	col *mongo.Collection
}

func NewHolidayRepository(db *mongo.Database) *HolidayRepository {
	return &HolidayRepository{col: db.Collection(collectionHolidays)}
}

type holidayDoc struct {
	ID    string   `bson:"_id"`
	Dates []string `bson:"dates"`
}

func (r *HolidayRepository) List(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc holidayDoc
	err := r.col.FindOne(ctx, bson.M{"_id": holidayDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.Dates, nil
}

func (r *HolidayRepository) Add(ctx context.Context, date string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": holidayDocID}
	update := bson.M{"$addToSet": bson.M{"dates": date}}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *HolidayRepository) Remove(ctx context.Context, date string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": holidayDocID}
	update := bson.M{"$pull": bson.M{"dates": date}}
	_, err := r.col.UpdateOne(ctx, filter, update)
	return err
}
