package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StatsResponse reports store contents for debugging. Failures are reported
// in-band so the endpoint stays useful when the database is down.
type StatsResponse struct {
	Driver             string        `json:"driver"`
	ConnectionOK       bool          `json:"connection_ok"`
	Error              string        `json:"error,omitempty"`
	UserCount          int64         `json:"user_count"`
	FriendshipCount    int64         `json:"friendship_count"`
	JobCount           int64         `json:"job_count"`
	UsersWithFeatures  int64         `json:"users_with_features"`
	UsersWithEmbedding int64         `json:"users_with_embedding"`
	JobsWithEmbedding  int64         `json:"jobs_with_embedding"`
	SampleUsers        []UserPayload `json:"sample_users,omitempty"`
	SampleUsersError   string        `json:"sample_users_error,omitempty"`
}

func (s *APIV1Service) debugStats(c echo.Context) error {
	ctx := c.Request().Context()
	resp := StatsResponse{Driver: s.Profile.Driver}

	stats, err := s.Store.GetGraphStats(ctx)
	if err != nil {
		resp.ConnectionOK = false
		resp.Error = err.Error()
		return c.JSON(http.StatusOK, resp)
	}

	resp.ConnectionOK = true
	resp.UserCount = stats.Users
	resp.FriendshipCount = stats.Friendships
	resp.JobCount = stats.Jobs
	resp.UsersWithFeatures = stats.UsersWithFeatures
	resp.UsersWithEmbedding = stats.UsersWithEmbedding
	resp.JobsWithEmbedding = stats.JobsWithEmbedding

	// Empty query matches everything; this is just a peek at the data.
	users, err := s.Store.SearchUsers(ctx, "", 5)
	if err != nil {
		resp.SampleUsersError = err.Error()
	} else {
		for _, user := range users {
			name := user.Name
			resp.SampleUsers = append(resp.SampleUsers, UserPayload{UserID: user.ID, Name: &name})
		}
	}
	return c.JSON(http.StatusOK, resp)
}
