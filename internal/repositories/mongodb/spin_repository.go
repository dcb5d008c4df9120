package mongodb

import (
	"context"
	"time"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	spinsCollection    = "spins"
	countersCollection = "counters"
	spinIndexName      = "idx_spins_email_date"
)

// Compile-time check to ensure SpinRepository implements the interface
var _ repositories.SpinRepository = (*SpinRepository)(nil)

// SpinRepository handles MongoDB operations for SpinRecord
type SpinRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
	disconnect func(ctx context.Context) error
}

// NewSpinRepository creates a new SpinRepository. disconnect may be nil.
func NewSpinRepository(db *mongo.Database, disconnect func(ctx context.Context) error) *SpinRepository {
	return &SpinRepository{
		collection: db.Collection(spinsCollection),
		counters:   db.Collection(countersCollection),
		disconnect: disconnect,
	}
}

// EnsureSchema creates the unique (email, date) index
func (r *SpinRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(spinIndexName),
	})
	return err
}

// FindByEmailAndDate finds the spin for an email on a given day
func (r *SpinRepository) FindByEmailAndDate(ctx context.Context, email, date string) (*models.SpinRecord, error) {
	var spin models.SpinRecord
	err := r.collection.FindOne(ctx, bson.M{"email": email, "date": date}).Decode(&spin)
	if err == mongo.ErrNoDocuments {
		return nil, repositories.ErrSpinNotFound
	}
	if err != nil {
		return nil, err
	}
	return &spin, nil
}

// Create inserts a spin with the next sequence id
func (r *SpinRepository) Create(ctx context.Context, spin *models.SpinRecord) error {
	seq, err := r.nextSeq(ctx)
	if err != nil {
		return err
	}
	spin.ID = seq
	if spin.CreatedAt.IsZero() {
		spin.CreatedAt = time.Now().UTC()
	}

	_, err = r.collection.InsertOne(ctx, spin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrSpinAlreadyClaimed
		}
		return err
	}
	return nil
}

// FindByDate lists a day's spins by sequence id
func (r *SpinRepository) FindByDate(ctx context.Context, date string) ([]*models.SpinRecord, error) {
	opts := options.Find().SetSort(bson.M{"seq": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"date": date}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	spins := []*models.SpinRecord{}
	if err := cursor.All(ctx, &spins); err != nil {
		return nil, err
	}
	return spins, nil
}

// Close disconnects the client the repository was built from
func (r *SpinRepository) Close(ctx context.Context) error {
	if r.disconnect == nil {
		return nil
	}
	return r.disconnect(ctx)
}

// nextSeq atomically increments the spins counter
func (r *SpinRepository) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": spinsCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
