package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muhafiz/muhafiz-api/app/models"
	"github.com/muhafiz/muhafiz-api/app/repository"
)

// ============================================================================
// COMMUNITY CONTROLLER - Repository Pattern
// ============================================================================

// CommunityController serves forum topics and shared resources
type CommunityController struct {
	topicRepo    repository.ForumTopicRepository
	resourceRepo repository.ResourceRepository
}

// NewCommunityController creates a new community controller with repositories
func NewCommunityController(topicRepo repository.ForumTopicRepository, resourceRepo repository.ResourceRepository) *CommunityController {
	return &CommunityController{
		topicRepo:    topicRepo,
		resourceRepo: resourceRepo,
	}
}

// HandleListTopics returns topics ordered by lastActive descending
func (cc *CommunityController) HandleListTopics(c *fiber.Ctx) error {
	topics, err := cc.topicRepo.List()
	if err != nil {
		return msg(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(topics)
}

func (cc *CommunityController) HandleCreateTopic(c *fiber.Ctx) error {
	var topic models.ForumTopic
	if err := c.BodyParser(&topic); err != nil {
		return msg(c, fiber.StatusBadRequest, "Invalid request body")
	}
	topic.ID = ""

	if err := cc.topicRepo.Create(&topic); err != nil {
		return msg(c, errorStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(topic)
}

// HandleListResources returns resources in insertion order
func (cc *CommunityController) HandleListResources(c *fiber.Ctx) error {
	resources, err := cc.resourceRepo.List()
	if err != nil {
		return msg(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(resources)
}

func (cc *CommunityController) HandleCreateResource(c *fiber.Ctx) error {
	var resource models.Resource
	if err := c.BodyParser(&resource); err != nil {
		return msg(c, fiber.StatusBadRequest, "Invalid request body")
	}
	resource.ID = ""

	if err := cc.resourceRepo.Create(&resource); err != nil {
		return msg(c, errorStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(resource)
}
