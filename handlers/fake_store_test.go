package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"gate-tracker-server/db"
	"gate-tracker-server/models"
	"gate-tracker-server/utils"
)

type fakeStore struct {
	mu        sync.Mutex
	nextID    int64
	questions map[int64]models.Question
	attempts  []models.Attempt
	events    []models.AdminEvent
	errorLogs []models.ErrorLog
	failBulk  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, questions: make(map[int64]models.Question)}
}

func (f *fakeStore) seed(in models.QuestionInput) models.Question {
	q, _ := f.CreateQuestion(context.Background(), in)
	return q
}

func (f *fakeStore) ListQuestions(_ context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Question
	for _, q := range f.questions {
		if filter.SubjectID != "" && q.SubjectID != filter.SubjectID {
			continue
		}
		if filter.TopicID != "" && q.TopicID != filter.TopicID {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) GetQuestion(_ context.Context, id int64) (models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return models.Question{}, db.ErrNotFound
	}
	return q, nil
}

func (f *fakeStore) CreateQuestion(_ context.Context, in models.QuestionInput) (models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(in), nil
}

func (f *fakeStore) insert(in models.QuestionInput) models.Question {
	q := models.Question{
		ID:            f.nextID,
		SubjectID:     in.SubjectID,
		TopicID:       in.TopicID,
		Year:          in.Year,
		Marks:         in.Marks,
		QuestionText:  in.QuestionText,
		OptionA:       in.OptionA,
		OptionB:       in.OptionB,
		OptionC:       in.OptionC,
		OptionD:       in.OptionD,
		CorrectOption: in.CorrectOption,
		SolutionText:  in.SolutionText,
		CreatedAt:     time.Now(),
	}
	f.questions[q.ID] = q
	f.nextID++
	return q
}

func (f *fakeStore) CreateQuestions(_ context.Context, in []models.QuestionInput) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failBulk {
		return 0, errors.New("insert failed")
	}
	for _, q := range in {
		f.insert(q)
	}
	return len(in), nil
}

func (f *fakeStore) DeleteQuestion(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.questions[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeStore) CountBySubject(_ context.Context) ([]models.SubjectCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[[2]string]int)
	for _, q := range f.questions {
		counts[[2]string{q.SubjectID, q.TopicID}]++
	}
	var out []models.SubjectCount
	for k, n := range counts {
		out = append(out, models.SubjectCount{SubjectID: k[0], TopicID: k[1], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubjectID+"/"+out[i].TopicID < out[j].SubjectID+"/"+out[j].TopicID
	})
	return out, nil
}

func (f *fakeStore) RecordAttempt(_ context.Context, a models.Attempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, a)
	return nil
}

func (f *fakeStore) ListAttempts(_ context.Context, email string) ([]models.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Attempt
	for _, a := range f.attempts {
		if a.Email == email {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) LogError(_ context.Context, source, filePath, errMsg, fixSug string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errorLogs = append(f.errorLogs, models.ErrorLog{
		ID:           len(f.errorLogs) + 1,
		Timestamp:    time.Now(),
		Source:       source,
		FilePath:     utils.StringPtr(filePath),
		ErrorMessage: errMsg,
		SuggestedFix: utils.StringPtr(fixSug),
	})
}

func (f *fakeStore) RecentErrors(_ context.Context, source string, limit int) ([]models.ErrorLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ErrorLog
	for i := len(f.errorLogs) - 1; i >= 0 && len(out) < limit; i-- {
		if source != "" && f.errorLogs[i].Source != source {
			continue
		}
		out = append(out, f.errorLogs[i])
	}
	return out, nil
}

func (f *fakeStore) LogAdminEvent(_ context.Context, actor, action, target, notes string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, models.AdminEvent{
		ID: len(f.events) + 1, Timestamp: time.Now(), Actor: actor, Action: action, Target: target, Notes: notes,
	})
}

func (f *fakeStore) RecentAdminEvents(_ context.Context, limit int) ([]models.AdminEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AdminEvent
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.events[i])
	}
	return out, nil
}

func (f *fakeStore) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		out = append(out, e.Action)
	}
	return out
}

func (f *fakeStore) loggedErrors() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var lines []string
	for _, e := range f.errorLogs {
		lines = append(lines, e.Source+": "+e.ErrorMessage)
	}
	return strings.Join(lines, "\n")
}
