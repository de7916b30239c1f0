package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is a visitor question. AskerName and AskerPlace are copied from the
// asker's profile at creation and are not kept in sync afterwards.
type Question struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text       string             `bson:"text" json:"text"`
	AskerID    string             `bson:"asker_id" json:"askerId"`
	AskerName  string             `bson:"asker_name" json:"askerName"`
	AskerPlace string             `bson:"asker_place" json:"askerPlace"`
	Answered   bool               `bson:"answered" json:"answered"`
	AnswerText *string            `bson:"answer_text,omitempty" json:"answerText,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	AnsweredAt *time.Time         `bson:"answered_at,omitempty" json:"answeredAt,omitempty"`
}

// NewQuestion is the insert payload; the store assigns ID and CreatedAt.
type NewQuestion struct {
	Text       string
	AskerID    string
	AskerName  string
	AskerPlace string
}

// Answer returns the answer text or "" when unanswered.
func (q Question) Answer() string {
	if q.AnswerText == nil {
		return ""
	}
	return *q.AnswerText
}
