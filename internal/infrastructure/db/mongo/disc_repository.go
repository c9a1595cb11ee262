package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/discgolf/storefront/internal/core/domain"
)

const discsCollection = "discs"

// DiscRepository persists the disc catalog.
type DiscRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewDiscRepository(db *mongo.Database) *DiscRepository {
	return &DiscRepository{db: db, coll: db.Collection(discsCollection)}
}

type discDoc struct {
	ID       int     `bson:"_id"`
	Color    string  `bson:"color"`
	Weight   int     `bson:"weight"`
	Type     string  `bson:"type"`
	Price    float64 `bson:"price"`
	Quantity int     `bson:"quantity"`
}

func toDiscDoc(d *domain.Disc) discDoc {
	return discDoc{
		ID:       d.ID,
		Color:    d.Color,
		Weight:   d.Weight,
		Type:     d.Type,
		Price:    d.Price,
		Quantity: d.Quantity,
	}
}

func (d discDoc) toDomain() domain.Disc {
	return domain.Disc{
		ID:       d.ID,
		Color:    d.Color,
		Weight:   d.Weight,
		Type:     d.Type,
		Price:    d.Price,
		Quantity: d.Quantity,
	}
}

// Create persists the disc under a freshly assigned id; the id carried on
// the input is ignored.
func (r *DiscRepository) Create(ctx context.Context, disc *domain.Disc) (*domain.Disc, error) {
	id, err := nextID(ctx, r.db, discsCollection)
	if err != nil {
		return nil, err
	}

	doc := toDiscDoc(disc)
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDiscExists
		}
		return nil, fmt.Errorf("insert disc: %w", err)
	}

	created := doc.toDomain()
	return &created, nil
}

func (r *DiscRepository) Get(ctx context.Context, id int) (*domain.Disc, error) {
	var doc discDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDiscNotFound
		}
		return nil, fmt.Errorf("find disc: %w", err)
	}

	disc := doc.toDomain()
	return &disc, nil
}

func (r *DiscRepository) List(ctx context.Context) ([]domain.Disc, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list discs: %w", err)
	}
	defer cursor.Close(ctx)

	discs := []domain.Disc{}
	for cursor.Next(ctx) {
		var doc discDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode disc: %w", err)
		}
		discs = append(discs, doc.toDomain())
	}
	return discs, cursor.Err()
}

func (r *DiscRepository) Update(ctx context.Context, disc *domain.Disc) (*domain.Disc, error) {
	doc := toDiscDoc(disc)

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": disc.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update disc: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, domain.ErrDiscNotFound
	}

	updated := doc.toDomain()
	return &updated, nil
}

func (r *DiscRepository) Delete(ctx context.Context, id int) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete disc: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrDiscNotFound
	}
	return nil
}
