package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/muhafiz/muhafiz-api/app/models"
	"github.com/muhafiz/muhafiz-api/app/repository"
)

// ============================================================================
// USER CONTROLLER - Repository Pattern
// ============================================================================

// UserController handles the user directory endpoints
type UserController struct {
	userRepo repository.UserRepository
}

// NewUserController creates a new user controller with repository
func NewUserController(userRepo repository.UserRepository) *UserController {
	return &UserController{
		userRepo: userRepo,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleList returns every user, newest first, without password hashes
func (uc *UserController) HandleList(c *fiber.Ctx) error {
	users, err := uc.userRepo.List()
	if err != nil {
		return msg(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(users)
}

// HandleRegister creates a user with a bcrypt hashed password. Registrations
// always get the default role.
func (uc *UserController) HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return msg(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password, "")
	if err != nil {
		if isValidation(err) {
			return msg(c, fiber.StatusBadRequest, err.Error())
		}
		return msg(c, fiber.StatusInternalServerError, err.Error())
	}

	if existing, err := uc.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return msg(c, fiber.StatusConflict, "Email already registered")
	} else if err != nil && !isNotFound(err) {
		return msg(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := uc.userRepo.Create(user); err != nil {
		// a concurrent registration won the unique index
		if isDuplicate(err) {
			return msg(c, fiber.StatusConflict, "Email already registered")
		}
		return msg(c, errorStatus(err), err.Error())
	}

	log.Infof("[User] Registered %s", user.ID)
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleDelete removes a user by id
func (uc *UserController) HandleDelete(c *fiber.Ctx) error {
	if err := uc.userRepo.Delete(c.Params("id")); err != nil {
		if isNotFound(err) {
			return msg(c, fiber.StatusNotFound, "User not found")
		}
		return msg(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"msg": "User deleted successfully"})
}
