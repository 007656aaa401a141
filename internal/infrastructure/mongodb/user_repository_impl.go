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

type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m *mongoUser) toEntity() *entity.User {
	return &entity.User{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		Username:  m.Username,
		Email:     m.Email,
		Phone:     m.Phone,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// UserRepository is the MongoDB-backed implementation of
// repository.UserRepository.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now()
	doc := &mongoUser{
		ID:        primitive.NewObjectID(),
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Password:  u.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if isDuplicateKey(err, "email_1") {
			return repository.ErrDuplicateEmail
		}
		if isDuplicateKey(err, "username_1") {
			return repository.ErrDuplicateUsername
		}
		return err
	}
	u.ID = doc.ID.Hex()
	u.CreatedAt = doc.CreatedAt
	u.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}}
	return r.findOne(ctx, filter)
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}
