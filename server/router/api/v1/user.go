package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sociograph/sociograph/store"
)

// PathResponse is the shortest-path payload: hop-ordered user IDs, endpoints
// included.
type PathResponse struct {
	Path []int32 `json:"path"`
}

func (s *APIV1Service) getUser(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := userIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := s.Store.GetUser(ctx, &store.FindUser{ID: &userID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get user").SetInternal(err)
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	name := user.Name
	return c.JSON(http.StatusOK, UserPayload{UserID: user.ID, Name: &name})
}

func (s *APIV1Service) searchUsers(c echo.Context) error {
	ctx := c.Request().Context()
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	limit, err := limitParam(c)
	if err != nil {
		return err
	}

	users, err := s.Store.SearchUsers(ctx, query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to search users").SetInternal(err)
	}

	payloads := make([]UserPayload, 0, len(users))
	for _, user := range users {
		name := user.Name
		payloads = append(payloads, UserPayload{
			UserID: user.ID,
			Name:   &name,
		})
	}
	return c.JSON(http.StatusOK, payloads)
}

func (s *APIV1Service) shortestPath(c echo.Context) error {
	ctx := c.Request().Context()
	fromID, err := userIDParam(c, "id")
	if err != nil {
		return err
	}
	toID, err := userIDParam(c, "to")
	if err != nil {
		return err
	}

	path, err := s.Store.ShortestFriendPath(ctx, fromID, toID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute path").SetInternal(err)
	}
	if len(path) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no path found")
	}
	return c.JSON(http.StatusOK, PathResponse{Path: path})
}
