package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devhub/internal/github"
	"devhub/internal/middleware"
	"devhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("GetByUserID", mock.Anything, uint(9)).
		Return(&models.Profile{UserID: 9, Status: "Developer", Skills: []string{"Go"}}, nil)
	s := newTestServer(new(MockUserRepository), profiles)

	app := fiber.New()
	app.Get("/api/profile/me", s.AuthRequired(), s.GetMyProfile)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.Profile
	decodeBody(t, resp, &body)
	assert.Equal(t, "Developer", body.Status)
	assert.Equal(t, []string{"Go"}, body.Skills)
}

func TestGetMyProfilePropagatesRequestContext(t *testing.T) {
	profiles := new(MockProfileRepository)
	var gotCtx context.Context
	profiles.On("GetByUserID", mock.Anything, uint(9)).
		Run(func(args mock.Arguments) {
			gotCtx = args.Get(0).(context.Context)
		}).
		Return(&models.Profile{UserID: 9, Status: "Developer"}, nil)
	s := newTestServer(new(MockUserRepository), profiles)

	app := fiber.New()
	app.Get("/api/profile/me", s.AuthRequired(), s.GetMyProfile)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The identity attached to the request context must reach the data
	// layer so context-aware logging can attribute queries.
	require.NotNil(t, gotCtx)
	uid, ok := gotCtx.Value(middleware.UserIDKey).(uint)
	require.True(t, ok)
	assert.EqualValues(t, 9, uid)
}

func TestGetMyProfileNotFound(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("GetByUserID", mock.Anything, uint(9)).
		Return(nil, models.NewNotFoundError("Profile not found"))
	s := newTestServer(new(MockUserRepository), profiles)

	app := fiber.New()
	app.Get("/api/profile/me", s.AuthRequired(), s.GetMyProfile)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body models.MessageResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Profile not found", body.Msg)
}

func TestGetAllProfiles(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("GetAll", mock.Anything).Return([]models.Profile{
		{UserID: 2, Status: "Newest", Owner: &models.ProfileOwner{Name: "B"}},
		{UserID: 1, Status: "Oldest", Owner: &models.ProfileOwner{Name: "A"}},
	}, nil)
	s := newTestServer(new(MockUserRepository), profiles)

	app := fiber.New()
	app.Get("/api/profile", s.GetAllProfiles)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Profiles []models.Profile `json:"profiles"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Profiles, 2)
	assert.Equal(t, "Newest", body.Profiles[0].Status)
	require.NotNil(t, body.Profiles[0].Owner)
	assert.Equal(t, "B", body.Profiles[0].Owner.Name)
}

func TestGetProfileByUserID(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("GetByUserID", mock.Anything, uint(4)).
		Return(&models.Profile{UserID: 4, Status: "Developer"}, nil)
	s := newTestServer(new(MockUserRepository), profiles)

	app := fiber.New()
	app.Get("/api/profile/user/:userId", s.AuthRequired(), s.GetProfileByUserID)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/user/4", nil)
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Profile models.Profile `json:"profile"`
	}
	decodeBody(t, resp, &body)
	assert.EqualValues(t, 4, body.Profile.UserID)
}

func TestGetProfileByUserIDInvalidParam(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockProfileRepository))

	app := fiber.New()
	app.Get("/api/profile/user/:userId", s.AuthRequired(), s.GetProfileByUserID)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/user/abc", nil)
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpsertProfileEndpoint(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("GetByUserID", mock.Anything, uint(9)).
		Return(nil, models.NewNotFoundError("Profile not found"))
	profiles.On("Save", mock.Anything, mock.AnythingOfType("*models.Profile")).Return(nil)
	s := newTestServer(new(MockUserRepository), profiles)

	app := fiber.New()
	app.Post("/api/profile", s.AuthRequired(), s.UpsertProfile)

	req := jsonRequest(http.MethodPost, "/api/profile", map[string]string{
		"status":  "Developer",
		"skills":  "Go, React",
		"twitter": "https://twitter.com/jane",
	})
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Profile models.Profile `json:"profile"`
	}
	decodeBody(t, resp, &body)
	assert.EqualValues(t, 9, body.Profile.UserID)
	assert.Equal(t, []string{"Go", "React"}, body.Profile.Skills)
	assert.Equal(t, "https://twitter.com/jane", body.Profile.Social.Twitter)
}

func TestUpsertProfileValidation(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockProfileRepository))

	app := fiber.New()
	app.Post("/api/profile", s.AuthRequired(), s.UpsertProfile)

	req := jsonRequest(http.MethodPost, "/api/profile", map[string]string{"website": "https://example.com"})
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body models.ValidationResponse
	decodeBody(t, resp, &body)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "Status is required", body.Errors[0].Msg)
	assert.Equal(t, "Skills is required", body.Errors[1].Msg)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	profiles := new(MockProfileRepository)
	users := new(MockUserRepository)
	profiles.On("DeleteByUserID", mock.Anything, uint(9)).Return(nil)
	users.On("Delete", mock.Anything, uint(9)).Return(nil)
	s := newTestServer(users, profiles)

	app := fiber.New()
	app.Delete("/api/profile", s.AuthRequired(), s.DeleteAccount)

	req := httptest.NewRequest(http.MethodDelete, "/api/profile", nil)
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.MessageResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "User deleted", body.Msg)
	profiles.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestAddExperienceEndpoint(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("GetByUserID", mock.Anything, uint(9)).
		Return(&models.Profile{UserID: 9, Status: "Developer"}, nil)
	profiles.On("Save", mock.Anything, mock.AnythingOfType("*models.Profile")).Return(nil)
	s := newTestServer(new(MockUserRepository), profiles)

	app := fiber.New()
	app.Post("/api/profile/experience", s.AuthRequired(), s.AddExperience)

	req := jsonRequest(http.MethodPost, "/api/profile/experience", map[string]string{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2022-01-01",
	})
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Profile models.Profile `json:"profile"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Profile.Experience, 1)
	assert.Equal(t, "Engineer", body.Profile.Experience[0].Title)
	assert.NotEmpty(t, body.Profile.Experience[0].ID)
}

func TestAddExperienceValidationEndpoint(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockProfileRepository))

	app := fiber.New()
	app.Post("/api/profile/experience", s.AuthRequired(), s.AddExperience)

	req := jsonRequest(http.MethodPost, "/api/profile/experience", map[string]string{"location": "Remote"})
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body models.ValidationResponse
	decodeBody(t, resp, &body)
	assert.Len(t, body.Errors, 3)
}

func TestRemoveExperienceEndpoint(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("GetByUserID", mock.Anything, uint(9)).
		Return(&models.Profile{
			UserID: 9,
			Experience: []models.Experience{
				{ID: "e1", Title: "Keep"},
				{ID: "e2", Title: "Drop"},
			},
		}, nil)
	profiles.On("Save", mock.Anything, mock.AnythingOfType("*models.Profile")).Return(nil)
	s := newTestServer(new(MockUserRepository), profiles)

	app := fiber.New()
	app.Delete("/api/profile/experience/:id", s.AuthRequired(), s.RemoveExperience)

	req := httptest.NewRequest(http.MethodDelete, "/api/profile/experience/e2", nil)
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Profile models.Profile `json:"profile"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Profile.Experience, 1)
	assert.Equal(t, "e1", body.Profile.Experience[0].ID)
}

func TestAddEducationEndpoint(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("GetByUserID", mock.Anything, uint(9)).
		Return(&models.Profile{UserID: 9, Status: "Developer"}, nil)
	profiles.On("Save", mock.Anything, mock.AnythingOfType("*models.Profile")).Return(nil)
	s := newTestServer(new(MockUserRepository), profiles)

	app := fiber.New()
	app.Put("/api/profile/education", s.AuthRequired(), s.AddEducation)

	req := jsonRequest(http.MethodPut, "/api/profile/education", map[string]string{
		"school":       "Tech",
		"degree":       "BS",
		"fieldofstudy": "CS",
		"from":         "2018-01-01",
	})
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Profile models.Profile `json:"profile"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Profile.Education, 1)
	assert.Equal(t, "Tech", body.Profile.Education[0].School)
	assert.Equal(t, "CS", body.Profile.Education[0].FieldOfStudy)
}

func TestRemoveEducationEndpointUnknownID(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("GetByUserID", mock.Anything, uint(9)).
		Return(&models.Profile{
			UserID:    9,
			Education: []models.Education{{ID: "d1", School: "State"}},
		}, nil)
	s := newTestServer(new(MockUserRepository), profiles)

	app := fiber.New()
	app.Delete("/api/profile/education/:id", s.AuthRequired(), s.RemoveEducation)

	req := httptest.NewRequest(http.MethodDelete, "/api/profile/education/missing", nil)
	req.Header.Set("x-auth-token", authToken(t, s, 9))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Profile models.Profile `json:"profile"`
	}
	decodeBody(t, resp, &body)
	assert.Len(t, body.Profile.Education, 1)
	profiles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetGithubRepos(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/janedoe/repos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		assert.Equal(t, "created:asc", r.URL.Query().Get("sort"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"devhub"},{"name":"dotfiles"}]`))
	}))
	defer upstream.Close()

	s := newTestServer(new(MockUserRepository), new(MockProfileRepository))
	s.githubClient = github.NewClient(upstream.URL, "")

	app := fiber.New()
	app.Get("/api/profile/github/:username", s.GetGithubRepos)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile/github/janedoe", nil), 15000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"devhub"},{"name":"dotfiles"}]`, string(raw))
}

func TestGetGithubReposUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer upstream.Close()

	s := newTestServer(new(MockUserRepository), new(MockProfileRepository))
	s.githubClient = github.NewClient(upstream.URL, "")

	app := fiber.New()
	app.Get("/api/profile/github/:username", s.GetGithubRepos)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile/github/ghost", nil), 15000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body models.MessageResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "No Github profile found", body.Msg)
}
