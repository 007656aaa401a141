package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
	"github.com/snapsite/snapsite-backend/internal/domain/repository"
)

type mongoExport struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	User       primitive.ObjectID `bson:"user"`
	Name       string             `bson:"name"`
	ExportType string             `bson:"export_type"`
	Status     string             `bson:"status"`
	FileSize   *int64             `bson:"file_size,omitempty"`
	Layout     []any              `bson:"layout,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (m *mongoExport) toEntity() entity.ExportedTemplate {
	return entity.ExportedTemplate{
		ID:         m.ID.Hex(),
		UserID:     m.User.Hex(),
		Name:       m.Name,
		ExportType: m.ExportType,
		Status:     m.Status,
		FileSize:   m.FileSize,
		Layout:     m.Layout,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ExportRepository is the MongoDB-backed implementation of
// repository.ExportRepository.
type ExportRepository struct {
	coll *mongo.Collection
}

func NewExportRepository(db *mongo.Database) *ExportRepository {
	return &ExportRepository{coll: db.Collection(exportsCollection)}
}

func (r *ExportRepository) Create(ctx context.Context, e *entity.ExportedTemplate) error {
	uid, err := primitive.ObjectIDFromHex(e.UserID)
	if err != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	doc := &mongoExport{
		ID:         primitive.NewObjectID(),
		User:       uid,
		Name:       e.Name,
		ExportType: e.ExportType,
		Status:     e.Status,
		FileSize:   e.FileSize,
		Layout:     e.Layout,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	e.ID = doc.ID.Hex()
	e.CreatedAt = doc.CreatedAt
	e.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *ExportRepository) ListByUser(ctx context.Context, userID string) ([]entity.ExportedTemplate, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user": uid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoExport
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.ExportedTemplate, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *ExportRepository) Delete(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	res := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid, "user": uid})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}
