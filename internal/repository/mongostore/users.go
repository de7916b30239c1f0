package mongostore

import (
	"context"
	"errors"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/db"
	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore struct {
	col *mongo.Collection
}

var _ repository.Users = (*UserStore)(nil)

func NewUserStore(database *mongo.Database) *UserStore {
	return &UserStore{col: database.Collection(db.UsersCollection)}
}

func (s *UserStore) Create(ctx context.Context, u models.User) error {
	_, err := s.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("Email is already taken.")
	}
	if err != nil {
		return apperr.Store("failed to create user", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, apperr.Store("failed to read user", err)
	}
	return u, nil
}
