// Package booking drives lesson browsing and the single-slot subscribe
// and unsubscribe flows.
package booking

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/storefront/prompt"
	"github.com/discgolf/storefront/internal/storefront/session"
)

var (
	// ErrNotSignedIn means the action was gated off before any remote
	// call was issued.
	ErrNotSignedIn = errors.New("booking: not signed in")
	// ErrDeclined means the user answered no to a confirmation.
	ErrDeclined = errors.New("booking: declined by user")
)

// LessonAPI is the slice of the backend client the flow needs.
type LessonAPI interface {
	Lessons(ctx context.Context) ([]domain.Lesson, error)
	Lesson(ctx context.Context, id int) (*domain.Lesson, error)
	LessonsOnDate(ctx context.Context, date string) ([]domain.Lesson, error)
	LessonsByUser(ctx context.Context, username string) ([]domain.Lesson, error)
	UpdateLesson(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
}

// Flow owns lesson browsing and booking for the signed-in user.
type Flow struct {
	api     LessonAPI
	session *session.Store
	confirm prompt.Confirmer
	notify  prompt.Notifier
	log     zerolog.Logger
}

func New(api LessonAPI, s *session.Store, confirm prompt.Confirmer, notify prompt.Notifier, log zerolog.Logger) *Flow {
	return &Flow{
		api:     api,
		session: s,
		confirm: confirm,
		notify:  notify,
		log:     log,
	}
}

// Browse lists all lessons.
func (f *Flow) Browse(ctx context.Context) ([]domain.Lesson, error) {
	return f.api.Lessons(ctx)
}

// BrowseDate lists lessons meeting on a date given as YYYY-MM-DD (the
// form most date pickers emit); the backend's contract wants MM/DD/YYYY.
func (f *Flow) BrowseDate(ctx context.Context, date string) ([]domain.Lesson, error) {
	return f.api.LessonsOnDate(ctx, ToWireDate(date))
}

// Mine lists the lessons the signed-in user has booked.
func (f *Flow) Mine(ctx context.Context) ([]domain.Lesson, error) {
	if !f.session.IsSignedIn() {
		return nil, ErrNotSignedIn
	}
	return f.api.LessonsByUser(ctx, f.session.Current().Username)
}

// Subscribe claims the lesson's single subscriber slot for the signed-in
// user after confirmation.
func (f *Flow) Subscribe(ctx context.Context, lessonID int) error {
	if !f.session.IsSignedIn() {
		return ErrNotSignedIn
	}

	lesson, err := f.api.Lesson(ctx, lessonID)
	if err != nil {
		return err
	}

	info := describe(lesson)
	warning := "Are you sure you would like to subscribe to:\n" + info +
		"?\n\n----------\nTotal: " + formatPrice(lesson.Price) + "\n----------"
	if !f.confirm.Confirm(warning) {
		return ErrDeclined
	}

	username := f.session.Current().Username
	lesson.Username = &username
	if _, err := f.api.UpdateLesson(ctx, lesson); err != nil {
		return err
	}

	f.notify.Notify("Thank you for subscribing to:\n" + info +
		"\n\n----------\nTotal: " + formatPrice(lesson.Price) +
		"$\nWe hope to see you again soon!\n----------")
	return nil
}

// Unsubscribe releases the lesson's slot after confirmation. The refund
// quoted is a 15% cancellation credit.
func (f *Flow) Unsubscribe(ctx context.Context, lessonID int) error {
	if !f.session.IsSignedIn() {
		return ErrNotSignedIn
	}

	lesson, err := f.api.Lesson(ctx, lessonID)
	if err != nil {
		return err
	}

	info := describe(lesson)
	if !f.confirm.Confirm("Are you sure you'd like to unsubscribe from:\n" + info + "?") {
		return ErrDeclined
	}

	lesson.Username = nil
	if _, err := f.api.UpdateLesson(ctx, lesson); err != nil {
		return err
	}

	f.notify.Notify("We're sorry to see you go... You've unsubscribed from:\n" + info +
		"\n\n----------\nTotal refund: " + formatPrice(lesson.Price*0.15) +
		"$\nBut we hope to see you again soon!\n----------")
	return nil
}

// ToWireDate converts YYYY-MM-DD to the backend's MM/DD/YYYY. Anything
// not in that shape passes through untouched.
func ToWireDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[1] + "/" + parts[2] + "/" + parts[0]
}

func describe(l *domain.Lesson) string {
	return l.Title + " every " + l.Days + " from " + l.StartDate + " to " + l.EndDate
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
