package echoapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iterhub/eduhub/core/flashcard"
	"github.com/iterhub/eduhub/core/user"
)

func Test_flashcardApi_lifecycle(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	other := env.createUser(t, "Ravi Das", "ravi", "ravi@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	token := env.getToken(t, student)

	// create a deck
	req, rec := newAuthRequest(http.MethodPost, "/v1/flashcards/decks", token,
		marchallObj(t, flashcard.NewDeck{Subject: "Math", Name: "Graph theory"}))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var deck flashcard.Deck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deck))
	assert.Equal(t, student.ID, deck.StudentID)

	// add a card
	req, rec = newAuthRequest(http.MethodPost, "/v1/flashcards", token,
		marchallObj(t, flashcard.NewCard{DeckID: deck.ID, Front: "Euler path?", Back: "Visits every edge once"}))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var card flashcard.Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
	assert.Equal(t, flashcard.MinBox, card.Box)

	// another student cannot add to this deck
	req, rec = newAuthRequest(http.MethodPost, "/v1/flashcards", env.getToken(t, other),
		marchallObj(t, flashcard.NewCard{DeckID: deck.ID, Front: "x", Back: "y"}))
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)

	// a fresh card is due immediately
	req, rec = newAuthRequest(http.MethodGet, "/v1/flashcards/due", token)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var due struct {
		Success bool             `json:"success"`
		Data    []flashcard.Card `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &due))
	require.Len(t, due.Data, 1)
	assert.Equal(t, card.ID, due.Data[0].ID)

	// a correct review advances the box and clears it from the due list
	req, rec = newAuthRequest(http.MethodPost, fmt.Sprintf("/v1/flashcards/%s/review", card.ID), token,
		marchallObj(t, map[string]bool{"correct": true}))
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var reviewed flashcard.Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviewed))
	assert.Equal(t, flashcard.MinBox+1, reviewed.Box)
	assert.False(t, reviewed.LastReviewedAt.IsZero())

	req, rec = newAuthRequest(http.MethodGet, "/v1/flashcards/due", token)
	env.app.ServeHTTP(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &due))
	assert.Len(t, due.Data, 0)

	// another student cannot review this card
	req, rec = newAuthRequest(http.MethodPost, fmt.Sprintf("/v1/flashcards/%s/review", card.ID), env.getToken(t, other),
		marchallObj(t, map[string]bool{"correct": false}))
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
}
