package submddbrepo

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/contest/evalsrvc"
	"github.com/programme-lv/contest/subm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowKeepsVerdictsCompressed(t *testing.T) {
	repo, err := NewDdbSubmRepo(nil, "unused")
	require.NoError(t, err)

	big := strings.Repeat("1 2 3 4 5 6 7 8 9 10\n", 5000)
	s := subm.UpsertParams{
		UserUUID:   uuid.New(),
		ProblemID:  "sum",
		ContestID:  "spring",
		Language:   "cpp17",
		SourceCode: "int main(){}",
		Verdicts: []evalsrvc.TestVerdict{
			{Input: big, ExpectedOutput: "55", ActualOutput: "55", Outcome: evalsrvc.OutcomeAccepted, Hidden: true},
		},
		Score:       100,
		SubmittedAt: time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC),
	}.ToSubm()

	row, err := repo.toRow(s)
	require.NoError(t, err)
	assert.Equal(t, s.UserUUID.String()+"#sum", row.UserProblem)
	assert.Less(t, len(row.VerdictsZstd), len(big)/10)

	back, err := repo.fromRow(row)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}
