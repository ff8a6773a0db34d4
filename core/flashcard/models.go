package flashcard

import "time"

// Leitner boxes: a card starts in box 1 and moves up on a correct review,
// back to box 1 on a miss. Each box doubles-ish the review interval.
const (
	MinBox = 1
	MaxBox = 5
)

// boxIntervalDays maps a box to the days between reviews.
var boxIntervalDays = map[int]int{
	1: 1,
	2: 2,
	3: 4,
	4: 7,
	5: 15,
}

// Deck groups a student's cards for one subject.
type Deck struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Subject   string    `json:"subject"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type Card struct {
	ID             string    `json:"id"`
	DeckID         string    `json:"deck_id"`
	Front          string    `json:"front"`
	Back           string    `json:"back"`
	Box            int       `json:"box"`
	LastReviewedAt time.Time `json:"last_reviewed_at"` // UTC; zero for never reviewed
	CreatedAt      time.Time `json:"created_at"`       // UTC
}

// IsDue reports whether the card's box interval has elapsed.
// Never-reviewed cards are always due.
func (c Card) IsDue(now time.Time) bool {
	if c.LastReviewedAt.IsZero() {
		return true
	}
	days, ok := boxIntervalDays[c.Box]
	if !ok {
		days = boxIntervalDays[MinBox]
	}
	return !now.Before(c.LastReviewedAt.AddDate(0, 0, days))
}

// Advance moves the card after a review: up a box when correct, back to
// the first box otherwise.
func (c *Card) Advance(correct bool, now time.Time) {
	if correct {
		if c.Box < MaxBox {
			c.Box++
		}
	} else {
		c.Box = MinBox
	}
	c.LastReviewedAt = now.UTC()
}

// NewDeck contains information needed to create a new Deck.
type NewDeck struct {
	Subject string `json:"subject" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

// NewCard contains information needed to create a new Card.
type NewCard struct {
	DeckID string `json:"deck_id" validate:"required"`
	Front  string `json:"front" validate:"required"`
	Back   string `json:"back" validate:"required"`
}
