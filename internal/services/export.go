package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arzan03/AskSolve/internal/models"
	"github.com/google/uuid"
)

// ObjectStore is where archives are written.
type ObjectStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) error
	PresignedURL(ctx context.Context, name string, expiry time.Duration) (string, error)
}

type ExportResult struct {
	Object    string `json:"object"`
	URL       string `json:"url"`
	Count     int    `json:"count"`
	ExpiresIn string `json:"expires_in"`
}

type archive struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Questions  []models.Question `json:"questions"`
}

// ArchiveService snapshots the published Q&A into object storage.
type ArchiveService struct {
	questions *QuestionService
	store     ObjectStore
	linkTTL   time.Duration
	now       func() time.Time
}

func NewArchiveService(questions *QuestionService, store ObjectStore) *ArchiveService {
	return &ArchiveService{questions: questions, store: store, linkTTL: time.Hour, now: time.Now}
}

func (s *ArchiveService) Export(ctx context.Context) (ExportResult, error) {
	qs, err := s.questions.ListAnswered(ctx)
	if err != nil {
		return ExportResult{}, err
	}

	now := s.now().UTC()
	body, err := json.MarshalIndent(archive{ExportedAt: now, Questions: qs}, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("encode archive: %w", err)
	}

	name := fmt.Sprintf("exports/%s-%s.json", now.Format("2006-01-02"), uuid.NewString())
	if err := s.store.Put(ctx, name, "application/json", body); err != nil {
		return ExportResult{}, fmt.Errorf("upload archive: %w", err)
	}
	url, err := s.store.PresignedURL(ctx, name, s.linkTTL)
	if err != nil {
		return ExportResult{}, fmt.Errorf("presign archive: %w", err)
	}

	return ExportResult{Object: name, URL: url, Count: len(qs), ExpiresIn: s.linkTTL.String()}, nil
}
