package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(f float64) *float64 { return &f }

func rec(id string, score *float64, skills ...string) Record {
	return Record{CandidateID: id, Score: score, KeySkills: skills}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	pool := []Record{
		rec("B", fptr(72.5)),
		rec("A", fptr(91.0)),
		rec("C", fptr(55.0)),
	}
	top := Rank(pool, 10)
	require.Len(t, top, 3)
	assert.Equal(t, "A", top[0].CandidateID)
	assert.Equal(t, "B", top[1].CandidateID)
	assert.Equal(t, "C", top[2].CandidateID)
}

func TestRankLimitTruncates(t *testing.T) {
	pool := []Record{
		rec("A", fptr(91.0)),
		rec("B", fptr(72.5)),
		rec("C", fptr(55.0)),
	}
	top := Rank(pool, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].CandidateID)
	assert.Equal(t, "B", top[1].CandidateID)
}

func TestRankZeroOrNegativeLimitReturnsEmpty(t *testing.T) {
	pool := []Record{rec("A", fptr(91.0))}
	assert.Empty(t, Rank(pool, 0))
	assert.Empty(t, Rank(pool, -5))
	assert.NotNil(t, Rank(pool, 0))
}

func TestRankLimitLargerThanPool(t *testing.T) {
	pool := []Record{rec("A", fptr(1)), rec("B", fptr(2))}
	assert.Len(t, Rank(pool, 100), 2)
}

func TestRankUnsetScoreSortsAsZero(t *testing.T) {
	pool := []Record{
		rec("unscored", nil),
		rec("low", fptr(0.1)),
		rec("negativeless", fptr(0)),
	}
	top := Rank(pool, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "low", top[0].CandidateID)
	// Equal effective scores (0 and unset) keep input order.
	assert.Equal(t, "unscored", top[1].CandidateID)
	assert.Equal(t, "negativeless", top[2].CandidateID)
}

func TestRankStableOnTies(t *testing.T) {
	pool := []Record{
		rec("first", fptr(50)),
		rec("second", fptr(50)),
		rec("third", fptr(50)),
	}
	top := Rank(pool, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{top[0].CandidateID, top[1].CandidateID, top[2].CandidateID})
}

func TestRankDoesNotMutateInput(t *testing.T) {
	pool := []Record{rec("low", fptr(1)), rec("high", fptr(9))}
	_ = Rank(pool, 2)
	assert.Equal(t, "low", pool[0].CandidateID)
	assert.Equal(t, "high", pool[1].CandidateID)
}

func TestRankEmptyPool(t *testing.T) {
	assert.Empty(t, Rank(nil, 5))
	assert.Empty(t, Rank([]Record{}, 5))
}

func TestEffectiveScore(t *testing.T) {
	assert.Equal(t, 0.0, Record{}.EffectiveScore())
	assert.Equal(t, 42.5, rec("x", fptr(42.5)).EffectiveScore())
}
