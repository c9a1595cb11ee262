package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/discgolf/storefront/internal/core/domain"
)

const lessonsCollection = "lessons"

// LessonRepository persists coaching lessons.
type LessonRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewLessonRepository(db *mongo.Database) *LessonRepository {
	return &LessonRepository{db: db, coll: db.Collection(lessonsCollection)}
}

type lessonDoc struct {
	ID          int     `bson:"_id"`
	Username    *string `bson:"username,omitempty"`
	Title       string  `bson:"title"`
	Description string  `bson:"description"`
	Days        string  `bson:"days"`
	StartDate   string  `bson:"start_date"`
	EndDate     string  `bson:"end_date"`
	Price       float64 `bson:"price"`
}

func toLessonDoc(l *domain.Lesson) lessonDoc {
	return lessonDoc{
		ID:          l.ID,
		Username:    l.Username,
		Title:       l.Title,
		Description: l.Description,
		Days:        l.Days,
		StartDate:   l.StartDate,
		EndDate:     l.EndDate,
		Price:       l.Price,
	}
}

func (d lessonDoc) toDomain() domain.Lesson {
	return domain.Lesson{
		ID:          d.ID,
		Username:    d.Username,
		Title:       d.Title,
		Description: d.Description,
		Days:        d.Days,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Price:       d.Price,
	}
}

func (r *LessonRepository) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	id, err := nextID(ctx, r.db, lessonsCollection)
	if err != nil {
		return nil, err
	}

	doc := toLessonDoc(lesson)
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert lesson: %w", err)
	}

	created := doc.toDomain()
	return &created, nil
}

func (r *LessonRepository) Get(ctx context.Context, id int) (*domain.Lesson, error) {
	var doc lessonDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrLessonNotFound
		}
		return nil, fmt.Errorf("find lesson: %w", err)
	}

	lesson := doc.toDomain()
	return &lesson, nil
}

func (r *LessonRepository) List(ctx context.Context) ([]domain.Lesson, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer cursor.Close(ctx)

	lessons := []domain.Lesson{}
	for cursor.Next(ctx) {
		var doc lessonDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode lesson: %w", err)
		}
		lessons = append(lessons, doc.toDomain())
	}
	return lessons, cursor.Err()
}

func (r *LessonRepository) Update(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	doc := toLessonDoc(lesson)

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": lesson.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, domain.ErrLessonNotFound
	}

	updated := doc.toDomain()
	return &updated, nil
}

func (r *LessonRepository) Delete(ctx context.Context, id int) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrLessonNotFound
	}
	return nil
}
