package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/muhafiz/muhafiz-api/app/models"
	"github.com/muhafiz/muhafiz-api/app/repository"
	"github.com/muhafiz/muhafiz-api/internal/pkg/upload"
	"github.com/muhafiz/muhafiz-api/internal/pkg/usercontext"
)

// ============================================================================
// INCIDENT CONTROLLER - Repository Pattern
// ============================================================================

// IncidentController handles incident reports and their moderation
type IncidentController struct {
	incidentRepo repository.IncidentRepository
	ingestor     *upload.Ingestor
}

func NewIncidentController(incidentRepo repository.IncidentRepository, ingestor *upload.Ingestor) *IncidentController {
	return &IncidentController{
		incidentRepo: incidentRepo,
		ingestor:     ingestor,
	}
}

var incidentFileFields = []upload.Field{
	{Name: "images", Max: models.MaxIncidentImages},
	{Name: "videos", Max: models.MaxIncidentVideos},
	{Name: "audios", Max: models.MaxIncidentAudios},
}

type statusRequest struct {
	Status string `json:"status"`
}

// incidentRequest carries the reporter-supplied fields. Status, media URLs
// and timestamps are owned by the server.
type incidentRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Town             string   `json:"town"`
	Subdivision      string   `json:"subdivision"`
	Zone             string   `json:"zone"`
	Location         string   `json:"location"`
	Category         string   `json:"category"`
	Urgency          string   `json:"urgency"`
	Severity         string   `json:"severity"`
	Date             string   `json:"date"`
	IncidentTime     string   `json:"incidentTime"`
	IsAnonymous      bool     `json:"isAnonymous"`
	Tags             []string `json:"tags"`
	WitnessCount     string   `json:"witnessCount"`
	SuspectInfo      string   `json:"suspectInfo"`
	ReportedToPolice string   `json:"reportedToPolice"`
}

func (r incidentRequest) incident(createdBy string) *models.Incident {
	return &models.Incident{
		Title:            r.Title,
		Description:      r.Description,
		Town:             r.Town,
		Subdivision:      r.Subdivision,
		Zone:             r.Zone,
		Location:         r.Location,
		Category:         r.Category,
		Urgency:          r.Urgency,
		Severity:         r.Severity,
		Date:             r.Date,
		IncidentTime:     r.IncidentTime,
		IsAnonymous:      r.IsAnonymous,
		Tags:             splitTags(r.Tags),
		WitnessCount:     r.WitnessCount,
		SuspectInfo:      r.SuspectInfo,
		ReportedToPolice: r.ReportedToPolice,
		Status:           models.INCIDENT_STATUS_PENDING,
		CreatedBy:        createdBy,
	}
}

// HandleCreate stores a report. The reporter is always the token holder,
// whatever createdBy the client sent, and every report starts out pending.
func (ic *IncidentController) HandleCreate(c *fiber.Ctx) error {
	var (
		req   incidentRequest
		files []upload.FieldFile
	)

	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid multipart form")
		}
		req = incidentRequest{
			Title:            formValue(form, "title"),
			Description:      formValue(form, "description"),
			Town:             formValue(form, "town"),
			Subdivision:      formValue(form, "subdivision"),
			Zone:             formValue(form, "zone"),
			Location:         formValue(form, "location"),
			Category:         formValue(form, "category"),
			Urgency:          formValue(form, "urgency"),
			Severity:         formValue(form, "severity"),
			Date:             formValue(form, "date"),
			IncidentTime:     formValue(form, "incidentTime"),
			IsAnonymous:      formBool(formValue(form, "isAnonymous")),
			Tags:             formTags(form),
			WitnessCount:     formValue(form, "witnessCount"),
			SuspectInfo:      formValue(form, "suspectInfo"),
			ReportedToPolice: formValue(form, "reportedToPolice"),
		}
		files, err = upload.Collect(form, incidentFileFields...)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
	} else if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	incident := req.incident(usercontext.GetUserID(c))

	batch, err := ic.ingestor.Stage(c.Context(), files)
	if err != nil {
		if errors.Is(err, upload.ErrRejected) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	incident.Images = batch.URLs("images")
	incident.Videos = batch.URLs("videos")
	incident.Audios = batch.URLs("audios")

	if err := ic.incidentRepo.Create(incident); err != nil {
		batch.Discard(c.Context())
		return fail(c, errorStatus(err), err.Error())
	}

	log.Infof("[Incident] Reported %s with %d file(s)", incident.ID, len(files))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"incident": incident,
	})
}

// HandleList returns every report newest first. Reporters are expanded
// unless expand=none is given.
func (ic *IncidentController) HandleList(c *fiber.Ctx) error {
	incidents, err := ic.incidentRepo.List(expandCreator(c))
	if err != nil {
		return msg(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(incidents)
}

func (ic *IncidentController) HandleGet(c *fiber.Ctx) error {
	incident, err := ic.incidentRepo.GetByID(c.Params("id"), expandCreator(c))
	if err != nil {
		return incidentError(c, err)
	}
	return c.JSON(incident)
}

// HandleUpdate merges a partial report. Unknown fields reject the request.
func (ic *IncidentController) HandleUpdate(c *fiber.Ctx) error {
	var patch models.IncidentPatch
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		if errors.Is(err, io.EOF) {
			return msg(c, fiber.StatusBadRequest, "Request body is required")
		}
		return msg(c, fiber.StatusBadRequest, err.Error())
	}
	if patch.IsEmpty() {
		return msg(c, fiber.StatusBadRequest, "No fields to update")
	}

	incident, err := ic.incidentRepo.Update(c.Params("id"), patch)
	if err != nil {
		return incidentError(c, err)
	}
	return c.JSON(incident)
}

func (ic *IncidentController) HandleUpdateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return msg(c, fiber.StatusBadRequest, "Invalid request body")
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return msg(c, fiber.StatusBadRequest, "Status is required")
	}

	incident, err := ic.incidentRepo.UpdateStatus(c.Params("id"), status)
	if err != nil {
		return incidentError(c, err)
	}
	return c.JSON(incident)
}

func (ic *IncidentController) HandleDelete(c *fiber.Ctx) error {
	if err := ic.incidentRepo.Delete(c.Params("id")); err != nil {
		return incidentError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Incident deleted successfully"})
}

func expandCreator(c *fiber.Ctx) bool {
	return !strings.EqualFold(c.Query("expand"), "none")
}

func incidentError(c *fiber.Ctx, err error) error {
	if isNotFound(err) {
		return msg(c, fiber.StatusNotFound, "Incident not found")
	}
	return msg(c, errorStatus(err), err.Error())
}
