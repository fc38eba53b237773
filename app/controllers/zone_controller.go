package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/muhafiz/muhafiz-api/internal/pkg/geodata"
)

// GeodataClient is the part of the geodata service the proxy endpoints use
type GeodataClient interface {
	Zones(ctx context.Context, zone, town string) (*geodata.Response, error)
	SafeRoute(ctx context.Context, body []byte) (*geodata.Response, error)
}

// ZoneController relays zone risk data and safe routes from the geodata service
type ZoneController struct {
	client GeodataClient
}

func NewZoneController(client GeodataClient) *ZoneController {
	return &ZoneController{
		client: client,
	}
}

func (zc *ZoneController) HandleZones(c *fiber.Ctx) error {
	resp, err := zc.client.Zones(c.Context(), c.Query("zone"), c.Query("town"))
	if err != nil {
		log.Errorf("[Zone] Zone data request failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to fetch zone data"})
	}
	return relay(c, resp)
}

func (zc *ZoneController) HandleSafeRoute(c *fiber.Ctx) error {
	resp, err := zc.client.SafeRoute(c.Context(), c.Body())
	if err != nil {
		log.Errorf("[Zone] Safe route request failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to fetch safe route"})
	}
	return relay(c, resp)
}

func relay(c *fiber.Ctx, resp *geodata.Response) error {
	c.Set(fiber.HeaderContentType, resp.ContentType)
	return c.Status(fiber.StatusOK).Send(resp.Body)
}
