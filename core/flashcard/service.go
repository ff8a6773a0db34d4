package flashcard

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/iterhub/eduhub/core"
)

var (
	ErrDeckNotFound = errors.New("deck not found")
	ErrCardNotFound = errors.New("card not found")
)

type (
	Repository interface {
		CreateDeck(ctx context.Context, deck Deck) (Deck, error)
		GetDeckByID(ctx context.Context, id string) (Deck, error)
		QueryStudentDecks(ctx context.Context, studentID string) ([]Deck, error)
		CreateCard(ctx context.Context, card Card) (Card, error)
		GetCardByID(ctx context.Context, id string) (Card, error)
		QueryDeckCards(ctx context.Context, deckID string) ([]Card, error)
		QueryStudentCards(ctx context.Context, studentID string) ([]Card, error)
		UpdateCard(ctx context.Context, card Card) (Card, error)
	}

	ServiceInterface interface {
		CreateDeck(ctx context.Context, studentID string, nd NewDeck) (Deck, error)
		QueryDecks(ctx context.Context, studentID string) ([]Deck, error)
		AddCard(ctx context.Context, studentID string, nc NewCard) (Card, error)
		Due(ctx context.Context, studentID string, now time.Time) ([]Card, error)
		Review(ctx context.Context, studentID, cardID string, correct bool, now time.Time) (Card, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) CreateDeck(ctx context.Context, studentID string, nd NewDeck) (Deck, error) {
	deck := Deck{
		StudentID: studentID,
		Subject:   core.CleanString(nd.Subject),
		Name:      core.CleanString(nd.Name),
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateDeck(ctx, deck)
}

func (svc *service) QueryDecks(ctx context.Context, studentID string) ([]Deck, error) {
	return svc.repo.QueryStudentDecks(ctx, studentID)
}

func (svc *service) AddCard(ctx context.Context, studentID string, nc NewCard) (Card, error) {
	deck, err := svc.repo.GetDeckByID(ctx, nc.DeckID)
	if err != nil {
		return Card{}, errors.Wrap(err, "getting deck")
	}
	if deck.StudentID != studentID {
		return Card{}, ErrDeckNotFound
	}

	card := Card{
		DeckID:    deck.ID,
		Front:     core.CleanString(nc.Front),
		Back:      core.CleanString(nc.Back),
		Box:       MinBox,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateCard(ctx, card)
}

// Due returns the student's cards whose review interval has elapsed.
func (svc *service) Due(ctx context.Context, studentID string, now time.Time) ([]Card, error) {
	cards, err := svc.repo.QueryStudentCards(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying cards")
	}
	due := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}
	return due, nil
}

// Review records a review outcome and moves the card between boxes.
func (svc *service) Review(ctx context.Context, studentID, cardID string, correct bool, now time.Time) (Card, error) {
	card, err := svc.repo.GetCardByID(ctx, cardID)
	if err != nil {
		return Card{}, errors.Wrap(err, "getting card")
	}
	deck, err := svc.repo.GetDeckByID(ctx, card.DeckID)
	if err != nil {
		return Card{}, errors.Wrap(err, "getting deck")
	}
	if deck.StudentID != studentID {
		return Card{}, ErrCardNotFound
	}

	card.Advance(correct, now)
	return svc.repo.UpdateCard(ctx, card)
}
