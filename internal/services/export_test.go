package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeObjects struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeObjects) Put(_ context.Context, name, _ string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[name] = data
	return nil
}

func (f *fakeObjects) PresignedURL(_ context.Context, name string, _ time.Duration) (string, error) {
	return "https://objects.test/" + name, nil
}

func TestExportWritesAnsweredQuestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	seedQuestions(t, f.questions)

	objects := &fakeObjects{}
	svc := NewArchiveService(f.questions, objects)
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }

	res, err := svc.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.Object, "exports/2024-03-09-") || !strings.HasSuffix(res.Object, ".json") {
		t.Errorf("object name = %q", res.Object)
	}
	if res.Count != 1 || res.URL != "https://objects.test/"+res.Object || res.ExpiresIn != "1h0m0s" {
		t.Errorf("result = %+v", res)
	}

	var got archive
	if err := json.Unmarshal(objects.objects[res.Object], &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Questions) != 1 || got.Questions[0].Answer() != "yes" {
		t.Fatalf("archive = %+v", got)
	}
}

func TestExportUploadFailure(t *testing.T) {
	f := newFixture()
	svc := NewArchiveService(f.questions, &fakeObjects{putErr: errors.New("bucket gone")})
	if _, err := svc.Export(context.Background()); err == nil {
		t.Fatal("expected upload error")
	}
}
