// Package repository declares the document store contract for the users and
// questions collections.
package repository

import (
	"context"

	"github.com/arzan03/AskSolve/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Users reports a missing record as apperr.ErrNotFound and an email clash as
// apperr.ErrConflict.
type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// QuestionFilter is an equality filter; nil fields are not constrained.
type QuestionFilter struct {
	Answered *bool
	AskerID  *string
}

type Questions interface {
	Insert(ctx context.Context, q models.NewQuestion) (models.Question, error)
	Find(ctx context.Context, f QuestionFilter) ([]models.Question, error)
	Count(ctx context.Context, f QuestionFilter) (int64, error)
	// SetAnswer marks the question answered, replacing any earlier answer.
	SetAnswer(ctx context.Context, id primitive.ObjectID, answer string) error
}

func Answered(v bool) QuestionFilter { return QuestionFilter{Answered: &v} }

func ByAsker(id string) QuestionFilter { return QuestionFilter{AskerID: &id} }
