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

type mongoWishlistEntry struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	User              primitive.ObjectID `bson:"user"`
	TemplateSlug      string             `bson:"template_slug"`
	TemplateName      string             `bson:"template_name"`
	TemplateThumbnail string             `bson:"template_thumbnail,omitempty"`
	TemplateCategory  string             `bson:"template_category,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func (m *mongoWishlistEntry) toEntity() entity.WishlistEntry {
	return entity.WishlistEntry{
		ID:                m.ID.Hex(),
		UserID:            m.User.Hex(),
		TemplateSlug:      m.TemplateSlug,
		TemplateName:      m.TemplateName,
		TemplateThumbnail: m.TemplateThumbnail,
		TemplateCategory:  m.TemplateCategory,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// WishlistRepository is the MongoDB-backed implementation of
// repository.WishlistRepository. The (user, template_slug) unique index
// guards against double adds racing past the service-level check.
type WishlistRepository struct {
	coll *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) *WishlistRepository {
	return &WishlistRepository{coll: db.Collection(wishlistsCollection)}
}

func (r *WishlistRepository) Create(ctx context.Context, e *entity.WishlistEntry) error {
	uid, err := primitive.ObjectIDFromHex(e.UserID)
	if err != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	doc := &mongoWishlistEntry{
		ID:                primitive.NewObjectID(),
		User:              uid,
		TemplateSlug:      e.TemplateSlug,
		TemplateName:      e.TemplateName,
		TemplateThumbnail: e.TemplateThumbnail,
		TemplateCategory:  e.TemplateCategory,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if isDuplicateKey(err, "") {
			return repository.ErrDuplicateWishlist
		}
		return err
	}
	e.ID = doc.ID.Hex()
	e.CreatedAt = doc.CreatedAt
	e.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *WishlistRepository) DeleteBySlug(ctx context.Context, userID, slug string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	res := r.coll.FindOneAndDelete(ctx, bson.M{"user": uid, "template_slug": slug})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]entity.WishlistEntry, error) {
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

	var docs []mongoWishlistEntry
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.WishlistEntry, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *WishlistRepository) Exists(ctx context.Context, userID, slug string) (bool, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"user": uid, "template_slug": slug})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
