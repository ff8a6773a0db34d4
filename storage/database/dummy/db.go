package dummydb

import (
	"sync"

	"github.com/iterhub/eduhub/core/analytics"
	"github.com/iterhub/eduhub/core/assignment"
	"github.com/iterhub/eduhub/core/flashcard"
	"github.com/iterhub/eduhub/core/schedule"
	"github.com/iterhub/eduhub/core/user"
)

// DB is an in-memory database used in tests and local development.
type (
	DB struct {
		user        *userTable
		assignment  *assignmentTable
		analytics   *analyticsTable
		preferences *preferencesTable
		flashcard   *flashcardTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	assignmentTable struct {
		sync.RWMutex
		table map[string]*assignment.Assignment
	}

	analyticsTable struct {
		sync.RWMutex
		marks      map[string][]analytics.Mark              // by student ID
		attendance map[string][]analytics.AttendanceSummary // by student ID
	}

	preferencesTable struct {
		sync.RWMutex
		table map[string]*schedule.Preferences // by student ID
	}

	flashcardTable struct {
		sync.RWMutex
		decks map[string]*flashcard.Deck
		cards map[string]*flashcard.Card
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		assignment: &assignmentTable{table: make(map[string]*assignment.Assignment)},
		analytics: &analyticsTable{
			marks:      make(map[string][]analytics.Mark),
			attendance: make(map[string][]analytics.AttendanceSummary),
		},
		preferences: &preferencesTable{table: make(map[string]*schedule.Preferences)},
		flashcard: &flashcardTable{
			decks: make(map[string]*flashcard.Deck),
			cards: make(map[string]*flashcard.Card),
		},
	}
	return db, nil
}
