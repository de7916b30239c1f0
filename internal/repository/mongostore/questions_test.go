package mongostore

import (
	"testing"

	"github.com/arzan03/AskSolve/internal/repository"
	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFilterDoc(t *testing.T) {
	both := repository.Answered(false)
	asker := "u-1"
	both.AskerID = &asker

	cases := []struct {
		name string
		in   repository.QuestionFilter
		want bson.M
	}{
		{"empty", repository.QuestionFilter{}, bson.M{}},
		{"answered", repository.Answered(true), bson.M{"answered": true}},
		{"asker", repository.ByAsker("u-1"), bson.M{"asker_id": "u-1"}},
		{"both", both, bson.M{"answered": false, "asker_id": "u-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, filterDoc(tc.in)); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
