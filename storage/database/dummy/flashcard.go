package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/iterhub/eduhub/core/flashcard"
)

type flashcardRepository struct {
	db *flashcardTable
}

var _ flashcard.Repository = (*flashcardRepository)(nil) // interface compliance check

func NewFlashcardRepository(db *DB) flashcard.Repository {
	return &flashcardRepository{db: db.flashcard}
}

func (repo *flashcardRepository) CreateDeck(_ context.Context, deck flashcard.Deck) (flashcard.Deck, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	deck.ID = uuid.New().String()
	repo.db.decks[deck.ID] = &deck
	return deck, nil
}

func (repo *flashcardRepository) GetDeckByID(_ context.Context, id string) (flashcard.Deck, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if deck, ok := repo.db.decks[id]; ok {
		return *deck, nil
	}
	return flashcard.Deck{}, flashcard.ErrDeckNotFound
}

func (repo *flashcardRepository) QueryStudentDecks(_ context.Context, studentID string) ([]flashcard.Deck, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var decks []flashcard.Deck
	for _, deck := range repo.db.decks {
		if deck.StudentID == studentID {
			decks = append(decks, *deck)
		}
	}
	sort.Slice(decks, func(i, j int) bool { return decks[i].CreatedAt.Before(decks[j].CreatedAt) })
	return decks, nil
}

func (repo *flashcardRepository) CreateCard(_ context.Context, card flashcard.Card) (flashcard.Card, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	card.ID = uuid.New().String()
	repo.db.cards[card.ID] = &card
	return card, nil
}

func (repo *flashcardRepository) GetCardByID(_ context.Context, id string) (flashcard.Card, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if card, ok := repo.db.cards[id]; ok {
		return *card, nil
	}
	return flashcard.Card{}, flashcard.ErrCardNotFound
}

func (repo *flashcardRepository) QueryDeckCards(_ context.Context, deckID string) ([]flashcard.Card, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var cards []flashcard.Card
	for _, card := range repo.db.cards {
		if card.DeckID == deckID {
			cards = append(cards, *card)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].CreatedAt.Before(cards[j].CreatedAt) })
	return cards, nil
}

func (repo *flashcardRepository) QueryStudentCards(ctx context.Context, studentID string) ([]flashcard.Card, error) {
	decks, err := repo.QueryStudentDecks(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var cards []flashcard.Card
	for _, deck := range decks {
		deckCards, err := repo.QueryDeckCards(ctx, deck.ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, deckCards...)
	}
	return cards, nil
}

func (repo *flashcardRepository) UpdateCard(_ context.Context, card flashcard.Card) (flashcard.Card, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.cards[card.ID]; !ok {
		return flashcard.Card{}, flashcard.ErrCardNotFound
	}
	repo.db.cards[card.ID] = &card
	return card, nil
}
