// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package question_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/htilssu/demarthology-api/internal/forum/question"
	"github.com/htilssu/demarthology-api/internal/forum/symptom"
	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/sec"
	"github.com/htilssu/demarthology-api/internal/users/account"
	"github.com/htilssu/demarthology-api/pkg/pointer"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) List(ctx context.Context, filter question.Filter, limit, offset int) ([]*question.Question, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	questions, _ := args.Get(0).([]*question.Question)
	return questions, args.Int(1), args.Error(2)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*question.Question, error) {
	args := m.Called(ctx, id)
	found, _ := args.Get(0).(*question.Question)
	return found, args.Error(1)
}

func (m *mockRepo) Symptoms(ctx context.Context, questionID string) ([]*symptom.Symptom, error) {
	args := m.Called(ctx, questionID)
	symptoms, _ := args.Get(0).([]*symptom.Symptom)
	return symptoms, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, q *question.Question) error {
	return m.Called(ctx, q).Error(0)
}

func (m *mockRepo) IncrementViews(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) Moderate(ctx context.Context, q *question.Question) error {
	return m.Called(ctx, q).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// # Fixtures

const (
	questionID = "0192f5a4-2222-7000-8000-000000000001"
	symptomA   = "0192f5a4-1111-7000-8000-00000000000a"
	symptomB   = "0192f5a4-1111-7000-8000-00000000000b"
)

var (
	author    = &account.User{ID: "author-1", Email: "author@b.com", Role: sec.RoleUser}
	stranger  = &account.User{ID: "stranger-1", Email: "stranger@b.com", Role: sec.RoleUser}
	moderator = &account.User{ID: "mod-1", Email: "mod@b.com", Role: sec.RoleModerator}
	admin     = &account.User{ID: "admin-1", Email: "admin@b.com", Role: sec.RoleAdmin}
)

func newService(repo *mockRepo) *question.Service {
	return question.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func storedQuestion(status question.Status) *question.Question {
	return &question.Question{
		ID:         questionID,
		Title:      "Red patches after sun exposure",
		Content:    "My forearms get itchy red patches every summer afternoon.",
		AuthorID:   author.ID,
		SymptomIDs: []string{symptomA},
		ImageURLs:  []string{},
		Status:     status,
		ViewCount:  4,
	}
}

func validInput() question.CreateInput {
	return question.CreateInput{
		Title:      "Red patches after sun exposure",
		Content:    "My forearms get itchy red patches every summer afternoon.",
		SymptomIDs: []string{symptomA, " " + strings.ToUpper(symptomA), symptomB},
		ImageURLs:  []string{"https://cdn.example/img/1.jpg", "  "},
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	return appError.HTTPStatus
}

// # Create

func TestCreateQuestion(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	created, err := newService(repo).CreateQuestion(context.Background(), author, validInput())
	require.NoError(t, err)

	assert.Equal(t, question.StatusPending, created.Status)
	assert.Equal(t, author.ID, created.AuthorID)
	assert.Equal(t, []string{symptomA, symptomB}, created.SymptomIDs)
	assert.Equal(t, []string{"https://cdn.example/img/1.jpg"}, created.ImageURLs)
	assert.NotEmpty(t, created.ID)
}

func TestCreateQuestion_Gate(t *testing.T) {
	repo := &mockRepo{}
	service := newService(repo)

	_, err := service.CreateQuestion(context.Background(), nil, validInput())
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = service.CreateQuestion(context.Background(), &account.User{ID: "x", Role: "guest"}, validInput())
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateQuestion_Validation(t *testing.T) {
	cases := map[string]func(*question.CreateInput){
		"short title":     func(in *question.CreateInput) { in.Title = "Rash?" },
		"short content":   func(in *question.CreateInput) { in.Content = "It itches." },
		"bad symptom id":  func(in *question.CreateInput) { in.SymptomIDs = []string{"eczema"} },
		"bad image link":  func(in *question.CreateInput) { in.ImageURLs = []string{"ftp://files/img.png"} },
		"relative image":  func(in *question.CreateInput) { in.ImageURLs = []string{"/img.png"} },
		"too many images": func(in *question.CreateInput) { in.ImageURLs = manyURLs(question.MaxImages + 1) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &mockRepo{}
			input := validInput()
			mutate(&input)

			_, err := newService(repo).CreateQuestion(context.Background(), author, input)
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func manyURLs(n int) []string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = "https://cdn.example/img/" + string(rune('a'+i)) + ".jpg"
	}
	return urls
}

// # Listing

func TestListApproved_TruncatesContent(t *testing.T) {
	repo := &mockRepo{}
	long := storedQuestion(question.StatusApproved)
	long.Content = strings.Repeat("é", 250)
	short := storedQuestion(question.StatusApproved)

	repo.On("List", mock.Anything, question.Filter{Status: question.StatusApproved, SymptomIDs: []string{symptomA}}, 20, 0).
		Return([]*question.Question{long, short}, 2, nil)

	items, total, err := newService(repo).ListApproved(context.Background(), []string{symptomA}, 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, total)

	assert.Equal(t, strings.Repeat("é", 200)+"...", items[0].Content)
	assert.Equal(t, short.Content, items[1].Content)
}

func TestListApproved_RejectsMalformedFilter(t *testing.T) {
	repo := &mockRepo{}

	_, _, err := newService(repo).ListApproved(context.Background(), []string{"not-a-uuid"}, 20, 0)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestListPending_ModeratorsOnly(t *testing.T) {
	repo := &mockRepo{}
	repo.On("List", mock.Anything, question.Filter{Status: question.StatusPending}, 20, 0).
		Return([]*question.Question{storedQuestion(question.StatusPending)}, 1, nil)
	service := newService(repo)

	_, _, err := service.ListPending(context.Background(), author, 20, 0)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	for _, reviewer := range []*account.User{moderator, admin} {
		items, _, err := service.ListPending(context.Background(), reviewer, 20, 0)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	}
}

// # Detail

func TestGetQuestion_CountsViewAndHydratesSymptoms(t *testing.T) {
	repo := &mockRepo{}
	symptoms := []*symptom.Symptom{{ID: symptomA, Name: "Eczema", Slug: "eczema"}}
	repo.On("FindByID", mock.Anything, questionID).Return(storedQuestion(question.StatusApproved), nil)
	repo.On("IncrementViews", mock.Anything, questionID).Return(5, nil)
	repo.On("Symptoms", mock.Anything, questionID).Return(symptoms, nil)

	detail, err := newService(repo).GetQuestion(context.Background(), nil, questionID)
	require.NoError(t, err)
	assert.Equal(t, 5, detail.ViewCount)
	assert.Equal(t, symptoms, detail.Symptoms)
}

func TestGetQuestion_UnapprovedVisibility(t *testing.T) {
	cases := []struct {
		name    string
		viewer  *account.User
		visible bool
	}{
		{"anonymous", nil, false},
		{"stranger", stranger, false},
		{"author", author, true},
		{"moderator", moderator, true},
		{"admin", admin, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			repo.On("FindByID", mock.Anything, questionID).Return(storedQuestion(question.StatusPending), nil)
			repo.On("IncrementViews", mock.Anything, questionID).Return(5, nil)
			repo.On("Symptoms", mock.Anything, questionID).Return([]*symptom.Symptom{}, nil)

			_, err := newService(repo).GetQuestion(context.Background(), tc.viewer, questionID)
			if tc.visible {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, question.ErrNotFound)
			repo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
		})
	}
}

// # Moderation

func TestModerateQuestion_Approve(t *testing.T) {
	repo := &mockRepo{}
	pending := storedQuestion(question.StatusPending)
	pending.RejectionReason = pointer.To("stale")
	repo.On("FindByID", mock.Anything, questionID).Return(pending, nil)
	repo.On("Moderate", mock.Anything, mock.Anything).Return(nil)

	moderated, err := newService(repo).ModerateQuestion(context.Background(), moderator, questionID,
		question.ModerateInput{Action: "Approve"})
	require.NoError(t, err)

	assert.Equal(t, question.StatusApproved, moderated.Status)
	assert.Equal(t, moderator.ID, pointer.Fallback(moderated.ModeratedBy, ""))
	assert.NotNil(t, moderated.ModeratedAt)
	assert.Nil(t, moderated.RejectionReason)
}

func TestModerateQuestion_Reject(t *testing.T) {
	repo := &mockRepo{}
	repo.On("FindByID", mock.Anything, questionID).Return(storedQuestion(question.StatusPending), nil)
	repo.On("Moderate", mock.Anything, mock.Anything).Return(nil)
	service := newService(repo)

	_, err := service.ModerateQuestion(context.Background(), admin, questionID, question.ModerateInput{Action: "reject"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	moderated, err := service.ModerateQuestion(context.Background(), admin, questionID,
		question.ModerateInput{Action: "reject", RejectionReason: pointer.To(" Contains personal data ")})
	require.NoError(t, err)
	assert.Equal(t, question.StatusRejected, moderated.Status)
	assert.Equal(t, "Contains personal data", pointer.Fallback(moderated.RejectionReason, ""))
}

func TestModerateQuestion_Guards(t *testing.T) {
	repo := &mockRepo{}
	repo.On("FindByID", mock.Anything, questionID).Return(storedQuestion(question.StatusApproved), nil)
	service := newService(repo)

	_, err := service.ModerateQuestion(context.Background(), author, questionID, question.ModerateInput{Action: "approve"})
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	_, err = service.ModerateQuestion(context.Background(), moderator, questionID, question.ModerateInput{Action: "publish"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = service.ModerateQuestion(context.Background(), moderator, questionID, question.ModerateInput{Action: "approve"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	repo.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything)
}

// # Deletion

func TestDeleteQuestion_SelfOrAdmin(t *testing.T) {
	cases := []struct {
		name   string
		actor  *account.User
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"stranger", stranger, http.StatusForbidden},
		{"moderator is not owner", moderator, http.StatusForbidden},
		{"author", author, http.StatusOK},
		{"admin", admin, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			repo.On("FindByID", mock.Anything, questionID).Return(storedQuestion(question.StatusApproved), nil)
			repo.On("Delete", mock.Anything, questionID).Return(nil)

			err := newService(repo).DeleteQuestion(context.Background(), tc.actor, questionID)
			if tc.status == http.StatusOK {
				require.NoError(t, err)
				repo.AssertCalled(t, "Delete", mock.Anything, questionID)
				return
			}
			assert.Equal(t, tc.status, statusOf(t, err))
			repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestGetQuestion_MalformedID(t *testing.T) {
	repo := &mockRepo{}

	_, err := newService(repo).GetQuestion(context.Background(), admin, "not-a-uuid")
	assert.ErrorIs(t, err, question.ErrNotFound)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
