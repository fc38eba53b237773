package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/muhafiz/muhafiz-api/app/models"
	"github.com/muhafiz/muhafiz-api/app/repository"
	"github.com/muhafiz/muhafiz-api/internal/pkg/upload"
	"github.com/muhafiz/muhafiz-api/internal/pkg/usercontext"
)

// ============================================================================
// POST CONTROLLER - Repository Pattern
// ============================================================================

// PostController handles channel posts, their replies and reactions
type PostController struct {
	postRepo    repository.PostRepository
	channelRepo repository.DiscussionChannelRepository
	ingestor    *upload.Ingestor
}

func NewPostController(postRepo repository.PostRepository, channelRepo repository.DiscussionChannelRepository, ingestor *upload.Ingestor) *PostController {
	return &PostController{
		postRepo:    postRepo,
		channelRepo: channelRepo,
		ingestor:    ingestor,
	}
}

type postRequest struct {
	Message     string             `json:"message"`
	Emotion     string             `json:"emotion"`
	Location    string             `json:"location"`
	Tags        []string           `json:"tags"`
	IsAnonymous bool               `json:"isAnonymous"`
	Severity    string             `json:"severity"`
	ChannelID   string             `json:"channelId"`
	Media       []models.MediaItem `json:"media"`
}

type replyRequest struct {
	Text     string `json:"text"`
	User     string `json:"user"`
	Location string `json:"location"`
}

type reactionRequest struct {
	Reaction string `json:"reaction"`
}

// HandleCreate accepts either a multipart form with "media" files or a JSON body
func (pc *PostController) HandleCreate(c *fiber.Ctx) error {
	var (
		req   postRequest
		files []upload.FieldFile
	)

	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid multipart form")
		}
		req = postRequest{
			Message:     formValue(form, "message"),
			Emotion:     formValue(form, "emotion"),
			Location:    formValue(form, "location"),
			Tags:        formTags(form),
			IsAnonymous: formBool(formValue(form, "isAnonymous")),
			Severity:    formValue(form, "severity"),
			ChannelID:   formValue(form, "channelId"),
		}
		files, err = upload.Collect(form, upload.Field{Name: "media"})
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
	} else if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	post := &models.Post{
		Message:     strings.TrimSpace(req.Message),
		Emotion:     req.Emotion,
		Location:    req.Location,
		Tags:        splitTags(req.Tags),
		IsAnonymous: req.IsAnonymous,
		Severity:    req.Severity,
		ChannelID:   req.ChannelID,
		Media:       req.Media,
		CreatedBy:   usercontext.GetUserID(c),
	}
	if post.Severity == "" {
		post.Severity = models.SEVERITY_LOW
	}
	if err := post.Validate(); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if _, err := pc.channelRepo.GetByID(post.ChannelID); err != nil {
		if isNotFound(err) {
			return fail(c, fiber.StatusNotFound, "Channel not found")
		}
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	batch, err := pc.ingestor.Stage(c.Context(), files)
	if err != nil {
		if errors.Is(err, upload.ErrRejected) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(files) > 0 {
		post.Media = batch.Media()
	}

	if err := pc.postRepo.Create(post); err != nil {
		batch.Discard(c.Context())
		return fail(c, errorStatus(err), err.Error())
	}

	log.Infof("[Post] Created %s in channel %s", post.ID, post.ChannelID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// HandleList returns the posts of one channel. The channelId query is mandatory.
func (pc *PostController) HandleList(c *fiber.Ctx) error {
	channelID := strings.TrimSpace(c.Query("channelId"))
	if channelID == "" {
		return fail(c, fiber.StatusBadRequest, "channelId is required")
	}

	posts, err := pc.postRepo.ListByChannel(channelID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"success": true,
		"posts":   posts,
	})
}

func (pc *PostController) HandleGet(c *fiber.Ctx) error {
	post, err := pc.postRepo.GetByID(c.Params("postId"))
	if err != nil {
		return pc.postError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// HandleReply appends a reply stamped with the caller's identity
func (pc *PostController) HandleReply(c *fiber.Ctx) error {
	var req replyRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return fail(c, fiber.StatusBadRequest, "Reply text is required")
	}

	reply := models.NewReply(strings.TrimSpace(req.User), req.Text, req.Location, usercontext.GetUserID(c))
	post, err := pc.postRepo.AddReply(c.Params("postId"), reply)
	if err != nil {
		return pc.postError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// HandleReact toggles the caller's reaction label on a post
func (pc *PostController) HandleReact(c *fiber.Ctx) error {
	var req reactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	reaction := strings.TrimSpace(req.Reaction)
	if reaction == "" {
		return fail(c, fiber.StatusBadRequest, "Reaction is required")
	}

	post, err := pc.postRepo.ToggleReaction(c.Params("postId"), usercontext.GetUserID(c), reaction)
	if err != nil {
		return pc.postError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

func (pc *PostController) postError(c *fiber.Ctx, err error) error {
	if isNotFound(err) {
		return fail(c, fiber.StatusNotFound, "Post not found")
	}
	return fail(c, errorStatus(err), err.Error())
}
