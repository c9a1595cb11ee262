package domain

import "time"

// LessonDateLayout is the wire format for lesson dates (MM/DD/YYYY).
const LessonDateLayout = "01/02/2006"

// dayTokens maps the free-text day abbreviations used in Lesson.Days to
// weekdays. Matching is a case-insensitive substring check, so "MWF"
// covers Monday, Wednesday, and Friday.
var dayTokens = map[string]time.Weekday{
	"M":   time.Monday,
	"Tu":  time.Tuesday,
	"W":   time.Wednesday,
	"Th":  time.Thursday,
	"F":   time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

// Lesson is a coaching session offered by the store. Username is the
// subscriber who claimed it; nil means unclaimed. A lesson has at most
// one subscriber — this is a single slot, not a waitlist.
type Lesson struct {
	ID          int     `json:"id"`
	Username    *string `json:"username"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Days        string  `json:"days"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Price       float64 `json:"price"`
}

// Claimed reports whether the lesson already has a subscriber.
func (l *Lesson) Claimed() bool {
	return l.Username != nil && *l.Username != ""
}

// Subscriber returns the subscriber username, empty when unclaimed.
func (l *Lesson) Subscriber() string {
	if l.Username == nil {
		return ""
	}
	return *l.Username
}

// HeldOn reports whether the lesson meets on the given MM/DD/YYYY date:
// the date falls inside [StartDate, EndDate] and its weekday appears in
// the Days string. Unparseable dates report false.
func (l *Lesson) HeldOn(date string) bool {
	day, err := time.Parse(LessonDateLayout, date)
	if err != nil {
		return false
	}
	start, err := time.Parse(LessonDateLayout, l.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse(LessonDateLayout, l.EndDate)
	if err != nil {
		return false
	}

	if day.Before(start) || day.After(end) {
		return false
	}
	return l.meetsOn(day.Weekday())
}

func (l *Lesson) meetsOn(weekday time.Weekday) bool {
	for token, wd := range dayTokens {
		if wd == weekday && containsFold(l.Days, token) {
			return true
		}
	}
	return false
}
