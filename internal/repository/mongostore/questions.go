package mongostore

import (
	"context"
	"time"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/db"
	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuestionStore struct {
	col *mongo.Collection
	now func() time.Time
}

var _ repository.Questions = (*QuestionStore)(nil)

func NewQuestionStore(database *mongo.Database) *QuestionStore {
	return &QuestionStore{col: database.Collection(db.QuestionsCollection), now: time.Now}
}

func (s *QuestionStore) Insert(ctx context.Context, nq models.NewQuestion) (models.Question, error) {
	q := models.Question{
		ID:         primitive.NewObjectID(),
		Text:       nq.Text,
		AskerID:    nq.AskerID,
		AskerName:  nq.AskerName,
		AskerPlace: nq.AskerPlace,
		CreatedAt:  s.now().UTC(),
	}
	if _, err := s.col.InsertOne(ctx, q); err != nil {
		return models.Question{}, apperr.Store("failed to save question", err)
	}
	return q, nil
}

func (s *QuestionStore) Find(ctx context.Context, f repository.QuestionFilter) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, filterDoc(f), opts)
	if err != nil {
		return nil, apperr.Store("failed to fetch questions", err)
	}
	defer cursor.Close(ctx)

	questions := make([]models.Question, 0)
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, apperr.Store("failed to decode questions", err)
	}
	return questions, nil
}

func (s *QuestionStore) Count(ctx context.Context, f repository.QuestionFilter) (int64, error) {
	n, err := s.col.CountDocuments(ctx, filterDoc(f))
	if err != nil {
		return 0, apperr.Store("failed to count questions", err)
	}
	return n, nil
}

func (s *QuestionStore) SetAnswer(ctx context.Context, id primitive.ObjectID, answer string) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"answered":    true,
			"answer_text": answer,
			"answered_at": s.now().UTC(),
		}},
	)
	if err != nil {
		return apperr.Store("failed to save answer", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("Question no longer exists")
	}
	return nil
}

func filterDoc(f repository.QuestionFilter) bson.M {
	doc := bson.M{}
	if f.Answered != nil {
		doc["answered"] = *f.Answered
	}
	if f.AskerID != nil {
		doc["asker_id"] = *f.AskerID
	}
	return doc
}
