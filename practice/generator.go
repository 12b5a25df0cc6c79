// Package practice builds practice sets from the question bank and grades attempts.
package practice

import (
	"crypto/sha256"
	"fmt"
	"math/rand"
	"strings"

	"gate-tracker-server/models"
	"gate-tracker-server/utils"
)

// DefaultSetSize is used when a request does not ask for a count.
const DefaultSetSize = 10

// BuildSet selects up to req.Count questions matching the requested subject
// and topic, in an order fixed by req.Seed. The same bank, subject, topic and
// seed always produce the same set. Answers are withheld.
func BuildSet(bank []models.Question, req models.PracticeRequest) models.PracticeSet {
	count := req.Count
	if count <= 0 {
		count = DefaultSetSize
	}

	var pool []models.Question
	for _, q := range bank {
		if !strings.EqualFold(q.SubjectID, req.SubjectID) {
			continue
		}
		if req.TopicID != "" && !strings.EqualFold(q.TopicID, req.TopicID) {
			continue
		}
		pool = append(pool, q)
	}

	r := rand.New(rand.NewSource(Seed(req.SubjectID, req.TopicID, req.Seed)))
	r.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > count {
		pool = pool[:count]
	}

	set := models.PracticeSet{
		Seed:      req.Seed,
		SubjectID: req.SubjectID,
		TopicID:   req.TopicID,
		Questions: make([]models.PracticeQuestion, 0, len(pool)),
	}
	for _, q := range pool {
		set.Questions = append(set.Questions, withoutAnswer(q))
	}
	return set
}

// Seed derives a deterministic shuffle seed from the set parameters.
func Seed(subjectID, topicID, seed string) int64 {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", strings.ToLower(subjectID), strings.ToLower(topicID), seed)))
	return utils.BytesToInt(sum[:])
}

func withoutAnswer(q models.Question) models.PracticeQuestion {
	return models.PracticeQuestion{
		ID:           q.ID,
		SubjectID:    q.SubjectID,
		TopicID:      q.TopicID,
		Year:         q.Year,
		Marks:        q.Marks,
		QuestionText: q.QuestionText,
		OptionA:      q.OptionA,
		OptionB:      q.OptionB,
		OptionC:      q.OptionC,
		OptionD:      q.OptionD,
	}
}
