package server

import (
	"devhub/internal/models"
	"devhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile/me
// @Summary Caller's profile
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.MessageResponse
// @Router /profile/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(profile)
}

// GetAllProfiles handles GET /api/profile
// @Summary List all profiles
// @Tags profile
// @Produce json
// @Success 200 {array} models.Profile
// @Router /profile [get]
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.GetAll(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"profiles": profiles})
}

// GetProfileByUserID handles GET /api/profile/user/:userId
// @Summary Profile by owning user
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Param userId path int true "Owning user ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.MessageResponse
// @Router /profile/user/{userId} [get]
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetByUserID(c.UserContext(), targetID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// UpsertProfile handles POST /api/profile
// @Summary Create or update the caller's profile
// @Description Replaces status, skills, and social links in place; creates the profile on first submission
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body service.UpsertProfileInput true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ValidationResponse
// @Router /profile [post]
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Status    string `json:"status"`
		Skills    string `json:"skills"`
		Website   string `json:"website"`
		Youtube   string `json:"youtube"`
		Twitter   string `json:"twitter"`
		Instagram string `json:"instagram"`
		Linkedin  string `json:"linkedin"`
		Facebook  string `json:"facebook"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Upsert(c.UserContext(), service.UpsertProfileInput{
		UserID:    userID,
		Status:    req.Status,
		Skills:    req.Skills,
		Website:   req.Website,
		Youtube:   req.Youtube,
		Twitter:   req.Twitter,
		Instagram: req.Instagram,
		Linkedin:  req.Linkedin,
		Facebook:  req.Facebook,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// DeleteAccount handles DELETE /api/profile
// @Summary Delete the caller's profile and account
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} object{msg=string}
// @Router /profile [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.profileService.DeleteAccount(c.UserContext(), userID); err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// AddExperience handles POST /api/profile/experience
// @Summary Add a work-history entry
// @Description Inserts the entry at the head of the experience list
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body service.ExperienceInput true "Experience entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ValidationResponse
// @Router /profile/experience [post]
func (s *Server) AddExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string `json:"title"`
		Company  string `json:"company"`
		Location string `json:"location"`
		From     string `json:"from"`
		To       string `json:"to"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), userID, service.ExperienceInput{
		Title:    req.Title,
		Company:  req.Company,
		Location: req.Location,
		From:     req.From,
		To:       req.To,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// RemoveExperience handles DELETE /api/profile/experience/:id
// @Summary Remove a work-history entry by id
// @Description Removing an unknown id is a silent no-op
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} models.Profile
// @Router /profile/experience/{id} [delete]
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	entryID := c.Params("id")

	profile, err := s.profileService.RemoveExperience(c.UserContext(), userID, entryID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// AddEducation handles PUT /api/profile/education
// @Summary Add an education-history entry
// @Description Inserts the entry at the head of the education list
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body service.EducationInput true "Education entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ValidationResponse
// @Router /profile/education [put]
func (s *Server) AddEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		School       string `json:"school"`
		Degree       string `json:"degree"`
		FieldOfStudy string `json:"fieldofstudy"`
		From         string `json:"from"`
		To           string `json:"to"`
		Description  string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), userID, service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Description:  req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// RemoveEducation handles DELETE /api/profile/education/:id
// @Summary Remove an education-history entry by id
// @Description Removing an unknown id is a silent no-op
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} models.Profile
// @Router /profile/education/{id} [delete]
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	entryID := c.Params("id")

	profile, err := s.profileService.RemoveEducation(c.UserContext(), userID, entryID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// GetGithubRepos handles GET /api/profile/github/:username
// @Summary List a user's GitHub repositories
// @Description Relays the upstream GitHub response verbatim; any upstream failure maps to 404
// @Tags profile
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} object
// @Failure 404 {object} models.MessageResponse
// @Router /profile/github/{username} [get]
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	body, err := s.githubClient.ListRepos(username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("No Github profile found"))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
