package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
	"github.com/snapsite/snapsite-backend/internal/domain/repository"
)

type mongoOwner struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	Username string             `bson:"username"`
	Email    string             `bson:"email"`
}

type mongoTemplate struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	User                 primitive.ObjectID `bson:"user"`
	Name                 string             `bson:"name"`
	OriginalTemplateSlug string             `bson:"original_template_slug,omitempty"`
	Layout               []any              `bson:"layout"`
	Thumbnail            string             `bson:"thumbnail"`
	IsPublic             bool               `bson:"is_public"`
	CreatedAt            time.Time          `bson:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at"`
	Owner                *mongoOwner        `bson:"owner,omitempty"`
}

func (m *mongoTemplate) toEntity() *entity.SavedTemplate {
	t := &entity.SavedTemplate{
		ID:                   m.ID.Hex(),
		UserID:               m.User.Hex(),
		Name:                 m.Name,
		OriginalTemplateSlug: m.OriginalTemplateSlug,
		Layout:               m.Layout,
		Thumbnail:            m.Thumbnail,
		IsPublic:             m.IsPublic,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.Owner != nil {
		t.Owner = &entity.UserSummary{
			ID:       m.Owner.ID.Hex(),
			Name:     m.Owner.Name,
			Username: m.Owner.Username,
			Email:    m.Owner.Email,
		}
	}
	return t
}

// TemplateRepository is the MongoDB-backed implementation of
// repository.TemplateRepository. Read paths join the owning user with a
// $lookup against the users collection.
type TemplateRepository struct {
	coll *mongo.Collection
}

func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{coll: db.Collection(templatesCollection)}
}

func (r *TemplateRepository) Create(ctx context.Context, t *entity.SavedTemplate) error {
	uid, err := primitive.ObjectIDFromHex(t.UserID)
	if err != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	doc := &mongoTemplate{
		ID:                   primitive.NewObjectID(),
		User:                 uid,
		Name:                 t.Name,
		OriginalTemplateSlug: t.OriginalTemplateSlug,
		Layout:               t.Layout,
		Thumbnail:            t.Thumbnail,
		IsPublic:             t.IsPublic,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	t.ID = doc.ID.Hex()
	t.CreatedAt = doc.CreatedAt
	t.UpdatedAt = doc.UpdatedAt
	return nil
}

// ownerLookup joins the owning user's identity fields as "owner".
func ownerLookup() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func (r *TemplateRepository) aggregate(ctx context.Context, stages []bson.D) ([]mongoTemplate, error) {
	cur, err := r.coll.Aggregate(ctx, stages)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoTemplate
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *TemplateRepository) aggregateOne(ctx context.Context, match bson.M) (*entity.SavedTemplate, error) {
	stages := append([]bson.D{{{Key: "$match", Value: match}}}, ownerLookup()...)
	docs, err := r.aggregate(ctx, stages)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, repository.ErrNotFound
	}
	return docs[0].toEntity(), nil
}

func (r *TemplateRepository) list(ctx context.Context, match bson.M, limit int) ([]entity.SavedTemplate, error) {
	stages := []bson.D{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "updated_at", Value: -1}}}},
	}
	if limit > 0 {
		stages = append(stages, bson.D{{Key: "$limit", Value: limit}})
	}
	stages = append(stages, ownerLookup()...)

	docs, err := r.aggregate(ctx, stages)
	if err != nil {
		return nil, err
	}
	out := make([]entity.SavedTemplate, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toEntity())
	}
	return out, nil
}

func (r *TemplateRepository) ListByUser(ctx context.Context, userID string) ([]entity.SavedTemplate, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.list(ctx, bson.M{"user": uid}, 0)
}

func (r *TemplateRepository) ListPublic(ctx context.Context, limit int) ([]entity.SavedTemplate, error) {
	return r.list(ctx, bson.M{"is_public": true}, limit)
}

func (r *TemplateRepository) GetVisible(ctx context.Context, id, viewerID string) (*entity.SavedTemplate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	match := bson.M{"_id": oid}
	if viewerID != "" {
		vid, err := primitive.ObjectIDFromHex(viewerID)
		if err != nil {
			return nil, repository.ErrNotFound
		}
		match["$or"] = bson.A{
			bson.M{"is_public": true},
			bson.M{"user": vid},
		}
	} else {
		match["is_public"] = true
	}
	return r.aggregateOne(ctx, match)
}

func (r *TemplateRepository) Update(ctx context.Context, id, userID string, patch repository.TemplatePatch) (*entity.SavedTemplate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Layout != nil {
		set["layout"] = patch.Layout
	}
	if patch.Thumbnail != nil {
		set["thumbnail"] = *patch.Thumbnail
	}
	if patch.IsPublic != nil {
		set["is_public"] = *patch.IsPublic
	}

	filter := bson.M{"_id": oid, "user": uid}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return r.aggregateOne(ctx, filter)
}

func (r *TemplateRepository) Delete(ctx context.Context, id, userID string) error {
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
