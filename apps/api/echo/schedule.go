package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iterhub/eduhub/core/schedule"
)

type scheduleApi struct {
	deps ServerDeps

	// mockable
	nowFunc func() time.Time
}

func registerScheduleAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := scheduleApi{deps: deps, nowFunc: time.Now}

	sg := g.Group("/schedule", jwt)
	sg.GET("/plan", api.plan)
	sg.GET("/plan.ics", api.planICS)
	sg.GET("/preferences", api.getPreferences)
	sg.PUT("/preferences", api.savePreferences)
	sg.POST("/email-plan", api.emailPlan)
}

// Handlers

// plan generates the authenticated student's study plan for the coming
// two weeks.
func (api *scheduleApi) plan(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	plan := api.deps.SchedSvc.GeneratePlan(ctx.Request().Context(), claims.Subject, api.nowFunc().UTC())
	return ctx.JSON(http.StatusOK, newDataResponse(plan))
}

// planICS renders the plan as an iCalendar download.
func (api *scheduleApi) planICS(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	ics := api.deps.SchedSvc.ExportPlanICS(ctx.Request().Context(), claims.Subject, api.nowFunc().UTC())
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="study-plan.ics"`)
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", ics)
}

func (api *scheduleApi) getPreferences(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	prefs, err := api.deps.SchedSvc.GetPreferences(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting preferences")
	}
	return ctx.JSON(http.StatusOK, prefs)
}

func (api *scheduleApi) savePreferences(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data schedule.Preferences
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Preferences")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	prefs, err := api.deps.SchedSvc.SavePreferences(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "saving preferences")
	}
	return ctx.JSON(http.StatusOK, prefs)
}

// emailPlan sends the student their weekly study plan digest with the
// calendar attached.
func (api *scheduleApi) emailPlan(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.deps.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.deps.SchedSvc.EmailWeeklyPlan(ctx.Request().Context(), usr, api.nowFunc().UTC()); err != nil {
		return errors.Wrap(err, "emailing plan")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Your study plan is on its way to your inbox."})
}
