package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/iterhub/eduhub/core/flashcard"
)

type flashcardRepository struct {
	db *sqlx.DB
}

var _ flashcard.Repository = (*flashcardRepository)(nil) // interface compliance check

func NewFlashcardRepository(db *sqlx.DB) *flashcardRepository {
	return &flashcardRepository{db: db}
}

type deckRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	Subject   string    `db:"subject"`
	Name      string    `db:"name"`
	CreatedAt null.Time `db:"created_at"`
}

type cardRow struct {
	ID             string    `db:"id"`
	DeckID         string    `db:"deck_id"`
	Front          string    `db:"front"`
	Back           string    `db:"back"`
	Box            int       `db:"box"`
	LastReviewedAt null.Time `db:"last_reviewed_at"`
	CreatedAt      null.Time `db:"created_at"`
}

func (repo flashcardRepository) fromDeckRow(row deckRow) flashcard.Deck {
	return flashcard.Deck{
		ID:        row.ID,
		StudentID: row.StudentID,
		Subject:   row.Subject,
		Name:      row.Name,
		CreatedAt: row.CreatedAt.Time,
	}
}

func (repo flashcardRepository) fromCardRow(row cardRow) flashcard.Card {
	return flashcard.Card{
		ID:             row.ID,
		DeckID:         row.DeckID,
		Front:          row.Front,
		Back:           row.Back,
		Box:            row.Box,
		LastReviewedAt: row.LastReviewedAt.Time,
		CreatedAt:      row.CreatedAt.Time,
	}
}

func (repo flashcardRepository) CreateDeck(ctx context.Context, deck flashcard.Deck) (flashcard.Deck, error) {
	deck.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO flashcard_deck (id, student_id, subject, name, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		deck.ID, deck.StudentID, deck.Subject, deck.Name, deck.CreatedAt.UTC(),
	)
	if err != nil {
		return flashcard.Deck{}, errors.Wrap(err, "inserting deck")
	}
	return deck, nil
}

func (repo flashcardRepository) GetDeckByID(ctx context.Context, id string) (flashcard.Deck, error) {
	var row deckRow
	query := `SELECT id, student_id, subject, name, created_at FROM flashcard_deck WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return flashcard.Deck{}, flashcard.ErrDeckNotFound
		}
		return flashcard.Deck{}, errors.Wrap(err, "getting deck")
	}
	return repo.fromDeckRow(row), nil
}

func (repo flashcardRepository) QueryStudentDecks(ctx context.Context, studentID string) ([]flashcard.Deck, error) {
	var rows []deckRow
	query := `SELECT id, student_id, subject, name, created_at FROM flashcard_deck
		WHERE student_id = $1 ORDER BY created_at ASC`
	if err := repo.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, errors.Wrap(err, "querying decks")
	}
	decks := make([]flashcard.Deck, 0, len(rows))
	for _, row := range rows {
		decks = append(decks, repo.fromDeckRow(row))
	}
	return decks, nil
}

func (repo flashcardRepository) CreateCard(ctx context.Context, card flashcard.Card) (flashcard.Card, error) {
	card.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO flashcard_card (id, deck_id, front, back, box, last_reviewed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		card.ID, card.DeckID, card.Front, card.Back, card.Box,
		null.NewTime(card.LastReviewedAt.UTC(), !card.LastReviewedAt.IsZero()), card.CreatedAt.UTC(),
	)
	if err != nil {
		return flashcard.Card{}, errors.Wrap(err, "inserting card")
	}
	return card, nil
}

func (repo flashcardRepository) GetCardByID(ctx context.Context, id string) (flashcard.Card, error) {
	var row cardRow
	query := `SELECT id, deck_id, front, back, box, last_reviewed_at, created_at FROM flashcard_card WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return flashcard.Card{}, flashcard.ErrCardNotFound
		}
		return flashcard.Card{}, errors.Wrap(err, "getting card")
	}
	return repo.fromCardRow(row), nil
}

func (repo flashcardRepository) QueryDeckCards(ctx context.Context, deckID string) ([]flashcard.Card, error) {
	var rows []cardRow
	query := `SELECT id, deck_id, front, back, box, last_reviewed_at, created_at FROM flashcard_card
		WHERE deck_id = $1 ORDER BY created_at ASC`
	if err := repo.db.SelectContext(ctx, &rows, query, deckID); err != nil {
		return nil, errors.Wrap(err, "querying cards")
	}
	cards := make([]flashcard.Card, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, repo.fromCardRow(row))
	}
	return cards, nil
}

func (repo flashcardRepository) QueryStudentCards(ctx context.Context, studentID string) ([]flashcard.Card, error) {
	var rows []cardRow
	query := `SELECT c.id, c.deck_id, c.front, c.back, c.box, c.last_reviewed_at, c.created_at
		FROM flashcard_card c
		JOIN flashcard_deck d ON d.id = c.deck_id
		WHERE d.student_id = $1 ORDER BY c.created_at ASC`
	if err := repo.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, errors.Wrap(err, "querying student cards")
	}
	cards := make([]flashcard.Card, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, repo.fromCardRow(row))
	}
	return cards, nil
}

func (repo flashcardRepository) UpdateCard(ctx context.Context, card flashcard.Card) (flashcard.Card, error) {
	var row cardRow
	query := `UPDATE flashcard_card SET front = $1, back = $2, box = $3, last_reviewed_at = $4
		WHERE id = $5 RETURNING id, deck_id, front, back, box, last_reviewed_at, created_at`
	err := repo.db.GetContext(ctx, &row, query,
		card.Front, card.Back, card.Box,
		null.NewTime(card.LastReviewedAt.UTC(), !card.LastReviewedAt.IsZero()), card.ID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return flashcard.Card{}, flashcard.ErrCardNotFound
		}
		return flashcard.Card{}, errors.Wrap(err, "updating card")
	}
	return repo.fromCardRow(row), nil
}
