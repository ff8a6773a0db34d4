package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iterhub/eduhub/core/assignment"
)

type assignmentApi struct {
	deps ServerDeps
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := assignmentApi{deps: deps}

	ag := g.Group("/assignments", jwt)
	ag.GET("/my-assignments", api.myAssignments)
	ag.PUT("/:id/submit", api.submit)

	// teachers hand out work; admins can too
	ag.POST("", api.create, staffMiddleware())
	ag.GET("/students/:id", api.queryStudent, staffOrSelfMiddleware())
}

// staffMiddleware lets only teachers and admins through.
func staffMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin || claims.IsTeacher {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// Handlers

// myAssignments returns the authenticated student's assignments wrapped in
// the `{success, data}` envelope.
func (api *assignmentApi) myAssignments(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	assignments, err := api.deps.AsgSvc.QueryForStudent(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if assignments == nil {
		assignments = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, newDataResponse(assignments))
}

func (api *assignmentApi) queryStudent(ctx echo.Context) error {
	assignments, err := api.deps.AsgSvc.QueryForStudent(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if assignments == nil {
		assignments = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, newDataResponse(assignments))
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	asg, err := api.deps.AsgSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, asg)
}

// submit marks the authenticated student's own assignment as submitted
// (or not, when they withdraw a submission).
func (api *assignmentApi) submit(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data SubmitRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	asg, err := api.deps.AsgSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding assignment by ID")
	}
	if asg.StudentID != claims.Subject && !(claims.IsAdmin || claims.IsTeacher) {
		return errHttpNotFound
	}

	asg, err = api.deps.AsgSvc.SetSubmitted(ctx.Request().Context(), asg.ID, *data.IsSubmitted)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, asg)
}
