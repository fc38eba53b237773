package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muhafiz/muhafiz-api/app/models"
	"github.com/muhafiz/muhafiz-api/app/repository"
	"github.com/muhafiz/muhafiz-api/internal/pkg/usercontext"
)

// ============================================================================
// DISCUSSION CHANNEL CONTROLLER - Repository Pattern
// ============================================================================

type ChannelController struct {
	channelRepo repository.DiscussionChannelRepository
}

func NewChannelController(channelRepo repository.DiscussionChannelRepository) *ChannelController {
	return &ChannelController{
		channelRepo: channelRepo,
	}
}

// HandleCreate stores a channel owned by the token holder
func (cc *ChannelController) HandleCreate(c *fiber.Ctx) error {
	var channel models.DiscussionChannel
	if err := c.BodyParser(&channel); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	channel.ID = ""
	channel.CreatedBy = usercontext.GetUserID(c)

	if err := cc.channelRepo.Create(&channel); err != nil {
		return fail(c, errorStatus(err), err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"channel": channel,
	})
}

func (cc *ChannelController) HandleList(c *fiber.Ctx) error {
	channels, err := cc.channelRepo.List()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"channels": channels,
	})
}

func (cc *ChannelController) HandleGet(c *fiber.Ctx) error {
	channel, err := cc.channelRepo.GetByID(c.Params("id"))
	if err != nil {
		if isNotFound(err) {
			return fail(c, fiber.StatusNotFound, "Channel not found")
		}
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"success": true,
		"channel": channel,
	})
}
