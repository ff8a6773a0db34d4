package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iterhub/eduhub/core/flashcard"
)

type flashcardApi struct {
	deps ServerDeps

	// mockable
	nowFunc func() time.Time
}

func registerFlashcardAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := flashcardApi{deps: deps, nowFunc: time.Now}

	fg := g.Group("/flashcards", jwt)
	fg.POST("/decks", api.createDeck)
	fg.GET("/decks", api.queryDecks)
	fg.POST("", api.addCard)
	fg.GET("/due", api.due)
	fg.POST("/:id/review", api.review)
}

// Handlers

func (api *flashcardApi) createDeck(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data flashcard.NewDeck
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDeck")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	deck, err := api.deps.CardSvc.CreateDeck(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating deck")
	}
	return ctx.JSON(http.StatusCreated, deck)
}

func (api *flashcardApi) queryDecks(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	decks, err := api.deps.CardSvc.QueryDecks(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying decks")
	}
	if decks == nil {
		decks = []flashcard.Deck{}
	}
	return ctx.JSON(http.StatusOK, newDataResponse(decks))
}

func (api *flashcardApi) addCard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data flashcard.NewCard
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCard")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	card, err := api.deps.CardSvc.AddCard(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		if errors.Cause(err) == flashcard.ErrDeckNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "adding card")
	}
	return ctx.JSON(http.StatusCreated, card)
}

// due returns the cards whose review interval has elapsed.
func (api *flashcardApi) due(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	cards, err := api.deps.CardSvc.Due(ctx.Request().Context(), claims.Subject, api.nowFunc().UTC())
	if err != nil {
		return errors.Wrap(err, "querying due cards")
	}
	if cards == nil {
		cards = []flashcard.Card{}
	}
	return ctx.JSON(http.StatusOK, newDataResponse(cards))
}

func (api *flashcardApi) review(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data ReviewRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReviewRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	card, err := api.deps.CardSvc.Review(ctx.Request().Context(), claims.Subject, ctx.Param("id"), *data.Correct, api.nowFunc().UTC())
	if err != nil {
		if cause := errors.Cause(err); cause == flashcard.ErrCardNotFound || cause == flashcard.ErrDeckNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "reviewing card")
	}
	return ctx.JSON(http.StatusOK, card)
}
