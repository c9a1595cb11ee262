package mongo

import (
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/discgolf/storefront/internal/core/domain"
)

const cartsCollection = "carts"

// CartRepository persists shopping carts, one per username.
type CartRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{db: db, coll: db.Collection(cartsCollection)}
}

// cartDoc keys contents by stringified disc id because BSON documents
// require string keys.
type cartDoc struct {
	ID       int            `bson:"_id"`
	Username string         `bson:"username"`
	Contents map[string]int `bson:"contents"`
}

func toCartDoc(c *domain.Cart) cartDoc {
	contents := make(map[string]int, len(c.Contents))
	for id, qty := range c.Contents {
		contents[strconv.Itoa(id)] = qty
	}
	return cartDoc{ID: c.ID, Username: c.Username, Contents: contents}
}

func (d cartDoc) toDomain() (*domain.Cart, error) {
	contents := make(map[int]int, len(d.Contents))
	for key, qty := range d.Contents {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("cart %d: bad contents key %q", d.ID, key)
		}
		contents[id] = qty
	}
	return &domain.Cart{ID: d.ID, Username: d.Username, Contents: contents}, nil
}

func (r *CartRepository) Create(ctx context.Context, username string) (*domain.Cart, error) {
	if existing := r.coll.FindOne(ctx, bson.M{"username": username}); existing.Err() == nil {
		return nil, domain.ErrCartExists
	}

	id, err := nextID(ctx, r.db, cartsCollection)
	if err != nil {
		return nil, err
	}

	cart := domain.NewCart(id, username)
	if _, err := r.coll.InsertOne(ctx, toCartDoc(cart)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCartExists
		}
		return nil, fmt.Errorf("insert cart: %w", err)
	}
	return cart, nil
}

func (r *CartRepository) Get(ctx context.Context, id int) (*domain.Cart, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CartRepository) FindByUsername(ctx context.Context, username string) (*domain.Cart, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *CartRepository) findOne(ctx context.Context, filter bson.M) (*domain.Cart, error) {
	var doc cartDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return doc.toDomain()
}

func (r *CartRepository) List(ctx context.Context) ([]domain.Cart, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	defer cursor.Close(ctx)

	carts := []domain.Cart{}
	for cursor.Next(ctx) {
		var doc cartDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
		cart, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		carts = append(carts, *cart)
	}
	return carts, cursor.Err()
}

func (r *CartRepository) Update(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": cart.ID}, toCartDoc(cart))
	if err != nil {
		return nil, fmt.Errorf("update cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, domain.ErrCartNotFound
	}
	return cart, nil
}

func (r *CartRepository) Delete(ctx context.Context, id int) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrCartNotFound
	}
	return nil
}
