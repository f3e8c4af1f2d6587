package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobportal/internal/errors"
	"jobportal/internal/model"
)

// actorContextKey is where the auth middleware stores the request actor.
const actorContextKey = "actor"

// SetActor stores the authenticated actor on the request context.
func SetActor(c echo.Context, actor model.Actor) {
	c.Set(actorContextKey, actor)
}

// actorFromContext returns the authenticated actor set by the auth middleware.
func actorFromContext(c echo.Context) (model.Actor, error) {
	actor, ok := c.Get(actorContextKey).(model.Actor)
	if !ok {
		return model.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return actor, nil
}

// respondError maps a service error onto the failure envelope.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
}
