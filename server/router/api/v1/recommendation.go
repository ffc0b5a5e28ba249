package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sociograph/sociograph/server/service/recommend"
)

// UserPayload mirrors the user shape in recommendation responses. Score is
// the mutual-friend count or the similarity, depending on the endpoint.
type UserPayload struct {
	UserID int32    `json:"user_id"`
	Name   *string  `json:"name,omitempty"`
	Score  *float64 `json:"score,omitempty"`
}

type JobPayload struct {
	JobID            string   `json:"job_id"`
	Title            string   `json:"title"`
	Company          *string  `json:"company,omitempty"`
	Location         *string  `json:"location,omitempty"`
	JobPostingURL    *string  `json:"job_posting_url,omitempty"`
	NormalizedSalary *float64 `json:"normalized_salary,omitempty"`
	Score            float64  `json:"score"`
}

// RecommendationResponse is the wrapper shared by the three recommendation
// endpoints; only the fields relevant to an endpoint are populated.
type RecommendationResponse struct {
	User                  UserPayload   `json:"user"`
	Friends               []UserPayload `json:"friends,omitempty"`
	PeopleYouMayKnow      []UserPayload `json:"people_you_may_know,omitempty"`
	Jobs                  []JobPayload  `json:"jobs,omitempty"`
	DirectFriendsCount    *int64        `json:"direct_friends_count,omitempty"`
	FriendsOfFriendsCount *int64        `json:"friends_of_friends_count,omitempty"`
}

func (s *APIV1Service) recommendFriends(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := userIDParam(c, "id")
	if err != nil {
		return err
	}
	limit, err := limitParam(c)
	if err != nil {
		return err
	}

	ranked, err := s.Recommend.FriendRecommendations(ctx, userID, limit)
	if err != nil {
		if errors.Is(err, recommend.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no recommendations found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get friend recommendations").SetInternal(err)
	}

	counts, err := s.Recommend.FriendCounts(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get friend counts").SetInternal(err)
	}

	return c.JSON(http.StatusOK, RecommendationResponse{
		User:                  UserPayload{UserID: userID},
		Friends:               rankedUserPayloads(ranked),
		DirectFriendsCount:    &counts.Direct,
		FriendsOfFriendsCount: &counts.FriendsOfFriends,
	})
}

func (s *APIV1Service) suggestPeople(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := userIDParam(c, "id")
	if err != nil {
		return err
	}
	limit, err := limitParam(c)
	if err != nil {
		return err
	}

	if err := s.rankSemaphore.Acquire(ctx, 1); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "server busy").SetInternal(err)
	}
	ranked, err := s.Recommend.PeopleYouMayKnow(ctx, userID, limit)
	s.rankSemaphore.Release(1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get people suggestions").SetInternal(err)
	}
	if len(ranked) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no recommendations found")
	}

	return c.JSON(http.StatusOK, RecommendationResponse{
		User:             UserPayload{UserID: userID},
		PeopleYouMayKnow: rankedUserPayloads(ranked),
	})
}

func (s *APIV1Service) recommendJobs(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := userIDParam(c, "id")
	if err != nil {
		return err
	}
	limit, err := limitParam(c)
	if err != nil {
		return err
	}

	if err := s.rankSemaphore.Acquire(ctx, 1); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "server busy").SetInternal(err)
	}
	ranked, err := s.Recommend.JobRecommendations(ctx, userID, limit)
	s.rankSemaphore.Release(1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get job recommendations").SetInternal(err)
	}
	if len(ranked) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no recommendations found")
	}

	jobs := make([]JobPayload, 0, len(ranked))
	for _, r := range ranked {
		jobs = append(jobs, JobPayload{
			JobID:            r.JobID,
			Title:            r.Title,
			Company:          r.Company,
			Location:         r.Location,
			JobPostingURL:    r.PostingURL,
			NormalizedSalary: r.NormalizedSalary,
			Score:            r.Score,
		})
	}
	return c.JSON(http.StatusOK, RecommendationResponse{
		User: UserPayload{UserID: userID},
		Jobs: jobs,
	})
}

func rankedUserPayloads(ranked []recommend.RankedUser) []UserPayload {
	payloads := make([]UserPayload, 0, len(ranked))
	for _, r := range ranked {
		name := r.Name
		score := r.Score
		payloads = append(payloads, UserPayload{
			UserID: r.UserID,
			Name:   &name,
			Score:  &score,
		})
	}
	return payloads
}
