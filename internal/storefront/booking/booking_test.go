package booking

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/storefront/prompt"
	"github.com/discgolf/storefront/internal/storefront/session"
)

var discardLogger = zerolog.Nop()

type stubLessonAPI struct {
	lessons map[int]*domain.Lesson
	updated *domain.Lesson
}

func (s *stubLessonAPI) Lessons(_ context.Context) ([]domain.Lesson, error) {
	all := make([]domain.Lesson, 0, len(s.lessons))
	for _, l := range s.lessons {
		all = append(all, *l)
	}
	return all, nil
}

func (s *stubLessonAPI) Lesson(_ context.Context, id int) (*domain.Lesson, error) {
	l, ok := s.lessons[id]
	if !ok {
		return nil, domain.ErrLessonNotFound
	}
	clone := *l
	return &clone, nil
}

func (s *stubLessonAPI) LessonsOnDate(_ context.Context, _ string) ([]domain.Lesson, error) {
	return nil, nil
}

func (s *stubLessonAPI) LessonsByUser(_ context.Context, _ string) ([]domain.Lesson, error) {
	return nil, nil
}

func (s *stubLessonAPI) UpdateLesson(_ context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	clone := *lesson
	s.updated = &clone
	s.lessons[lesson.ID] = &clone
	return lesson, nil
}

func yes() prompt.Confirmer  { return prompt.ConfirmerFunc(func(string) bool { return true }) }
func no() prompt.Confirmer   { return prompt.ConfirmerFunc(func(string) bool { return false }) }
func quiet() prompt.Notifier { return prompt.NotifierFunc(func(string) {}) }

func lessonFixture() *stubLessonAPI {
	return &stubLessonAPI{lessons: map[int]*domain.Lesson{
		1: {ID: 1, Title: "Putting basics", Days: "MWF", StartDate: "05/01/2026", EndDate: "08/31/2026", Price: 50},
	}}
}

func signedIn(username string) *session.Store {
	s := session.NewStore()
	s.Set(&session.Identity{ID: 1, Username: username, SignedIn: true})
	return s
}

func TestToWireDate(t *testing.T) {
	if got := ToWireDate("2026-06-01"); got != "06/01/2026" {
		t.Fatalf("expected 06/01/2026, got %q", got)
	}
	// Already in wire form passes through.
	if got := ToWireDate("06/01/2026"); got != "06/01/2026" {
		t.Fatalf("expected pass-through, got %q", got)
	}
}

func TestFlow_Subscribe(t *testing.T) {
	api := lessonFixture()
	var warning string
	confirm := prompt.ConfirmerFunc(func(message string) bool {
		warning = message
		return true
	})
	flow := New(api, signedIn("alice"), confirm, quiet(), discardLogger)

	if err := flow.Subscribe(context.Background(), 1); err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	if api.updated == nil || api.updated.Subscriber() != "alice" {
		t.Fatalf("expected alice as subscriber, got %+v", api.updated)
	}
	if !strings.Contains(warning, "Putting basics every MWF from 05/01/2026 to 08/31/2026") {
		t.Fatalf("warning missing lesson info: %q", warning)
	}
}

func TestFlow_Subscribe_Declined(t *testing.T) {
	api := lessonFixture()
	flow := New(api, signedIn("alice"), no(), quiet(), discardLogger)

	if err := flow.Subscribe(context.Background(), 1); err != ErrDeclined {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if api.updated != nil {
		t.Fatalf("declining must not update the lesson")
	}
}

func TestFlow_Subscribe_SignedOut(t *testing.T) {
	api := lessonFixture()
	flow := New(api, session.NewStore(), yes(), quiet(), discardLogger)

	if err := flow.Subscribe(context.Background(), 1); err != ErrNotSignedIn {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if api.updated != nil {
		t.Fatalf("signed-out subscribe must not update the lesson")
	}
}

func TestFlow_Unsubscribe(t *testing.T) {
	api := lessonFixture()
	username := "alice"
	api.lessons[1].Username = &username

	flow := New(api, signedIn("alice"), yes(), quiet(), discardLogger)

	if err := flow.Unsubscribe(context.Background(), 1); err != nil {
		t.Fatalf("Unsubscribe returned error: %v", err)
	}
	if api.updated == nil || api.updated.Username != nil {
		t.Fatalf("expected the slot released, got %+v", api.updated)
	}
}
