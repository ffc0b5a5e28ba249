// Package v1 exposes the recommendation engine over a JSON REST API.
package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	"github.com/sociograph/sociograph/internal/profile"
	"github.com/sociograph/sociograph/server/service/recommend"
	"github.com/sociograph/sociograph/store"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type APIV1Service struct {
	Profile   *profile.Profile
	Store     *store.Store
	Recommend *recommend.Service

	// rankSemaphore bounds concurrent candidate-pool scans; each one walks
	// the whole feature or embedding pool.
	rankSemaphore *semaphore.Weighted
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile:       profile,
		Store:         store,
		Recommend:     recommend.NewService(store),
		rankSemaphore: semaphore.NewWeighted(8),
	}
}

// RegisterRoutes attaches the v1 routes to the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	g := echoServer.Group("/api/v1")

	g.GET("/users/search", s.searchUsers)
	g.GET("/users/:id", s.getUser)
	g.GET("/users/:id/recommendations/friends", s.recommendFriends)
	g.GET("/users/:id/recommendations/people", s.suggestPeople)
	g.GET("/users/:id/recommendations/jobs", s.recommendJobs)
	// Same param name as the recommendation routes; echo requires consistent
	// param names per segment.
	g.GET("/users/:id/path/:to", s.shortestPath)
	g.GET("/debug/stats", s.debugStats)
}

// userIDParam parses a user ID path parameter.
func userIDParam(c echo.Context, name string) (int32, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id").SetInternal(err)
	}
	return int32(id), nil
}

// limitParam parses the optional limit query parameter.
func limitParam(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, nil
}
