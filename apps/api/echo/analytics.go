package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type analyticsApi struct {
	deps ServerDeps
}

func registerAnalyticsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := analyticsApi{deps: deps}

	ag := g.Group("/analytics", jwt)
	ag.GET("/student-performance/:id", api.studentPerformance, staffOrSelfMiddleware())
}

// studentPerformance returns the student's aggregated marks, attendance
// and risk profile wrapped in the `{success, data}` envelope.
func (api *analyticsApi) studentPerformance(ctx echo.Context) error {
	perf, err := api.deps.AnlSvc.StudentPerformance(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "computing student performance")
	}
	return ctx.JSON(http.StatusOK, newDataResponse(perf))
}
