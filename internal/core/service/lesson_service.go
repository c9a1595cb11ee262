package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/discgolf/storefront/internal/api/metrics"
	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/core/ports"
)

// LessonService implements lesson browsing and the single-slot booking
// rule: a lesson belongs to at most one subscriber at a time.
type LessonService struct {
	repo ports.LessonRepository
	log  zerolog.Logger
}

func NewLessonService(repo ports.LessonRepository, log zerolog.Logger) *LessonService {
	return &LessonService{repo: repo, log: log}
}

func (s *LessonService) List(ctx context.Context) ([]domain.Lesson, error) {
	return s.repo.List(ctx)
}

func (s *LessonService) Get(ctx context.Context, id int) (*domain.Lesson, error) {
	return s.repo.Get(ctx, id)
}

func (s *LessonService) OnDate(ctx context.Context, date string) ([]domain.Lesson, error) {
	lessons, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	held := make([]domain.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.HeldOn(date) {
			held = append(held, l)
		}
	}
	return held, nil
}

func (s *LessonService) ByUser(ctx context.Context, username string) ([]domain.Lesson, error) {
	lessons, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]domain.Lesson, 0)
	for _, l := range lessons {
		if l.Subscriber() == username {
			mine = append(mine, l)
		}
	}
	return mine, nil
}

func (s *LessonService) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	created, err := s.repo.Create(ctx, lesson)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("lesson_id", created.ID).Str("title", created.Title).Msg("lesson created")
	return created, nil
}

// Update replaces the lesson wholesale. A subscriber change onto an
// already-claimed lesson is rejected so the slot cannot be stolen.
func (s *LessonService) Update(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	existing, err := s.repo.Get(ctx, lesson.ID)
	if err != nil {
		return nil, err
	}

	if lesson.Claimed() && existing.Claimed() && existing.Subscriber() != lesson.Subscriber() {
		return nil, domain.ErrLessonTaken
	}

	updated, err := s.repo.Update(ctx, lesson)
	if err != nil {
		return nil, err
	}

	if lesson.Claimed() && !existing.Claimed() {
		metrics.LessonsBookedTotal.Inc()
		s.log.Info().Int("lesson_id", lesson.ID).Str("username", lesson.Subscriber()).Msg("lesson booked")
	}
	return updated, nil
}

func (s *LessonService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
