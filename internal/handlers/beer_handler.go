package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"beerstock/internal/models"
	"beerstock/internal/services"
)

// BeerHandler handles HTTP requests for the beer inventory.
type BeerHandler struct {
	service  *services.BeerService
	validate *validator.Validate
}

// NewBeerHandler creates a new BeerHandler.
func NewBeerHandler(service *services.BeerService) *BeerHandler {
	return &BeerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the beer routes with the Fiber app.
func (h *BeerHandler) RegisterRoutes(router fiber.Router) {
	beerRoutes := router.Group("/beer")
	beerRoutes.Post("/", h.HandleCreateBeer)
	beerRoutes.Get("/", h.HandleListBeers)
	beerRoutes.Get("/:name", h.HandleFindBeerByName)
	beerRoutes.Delete("/:id", h.HandleDeleteBeer)
	beerRoutes.Patch("/:id/increment", h.HandleIncrementStock)
	beerRoutes.Patch("/:id/decrement", h.HandleDecrementStock)
}

// QuantityRequest represents the request body for stock adjustments.
// A pointer makes "quantity" genuinely required: a missing field is
// distinguishable from an explicit zero.
type QuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,max=100"`
}

// HandleCreateBeer registers a new beer in the inventory.
func (h *BeerHandler) HandleCreateBeer(c *fiber.Ctx) error {
	var beer models.Beer
	if err := c.BodyParser(&beer); err != nil {
		log.Printf("Error parsing create beer request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// Validate the beer struct
	if err := h.validate.Struct(beer); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	createdBeer, err := h.service.CreateBeer(&beer)
	if err != nil {
		log.Printf("Error creating beer: %v", err)
		var alreadyRegistered *services.BeerAlreadyRegisteredError
		var stockExceeded *services.BeerStockExceededError
		if errors.As(err, &alreadyRegistered) || errors.As(err, &stockExceeded) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Beer creation failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create beer",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(createdBeer)
}

// HandleFindBeerByName retrieves a single beer by its exact name. Beer
// names may contain spaces, so the path segment arrives percent-encoded.
func (h *BeerHandler) HandleFindBeerByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	beer, err := h.service.FindBeerByName(name)
	if err != nil {
		log.Printf("Error finding beer by name %s: %v", name, err)
		var notFound *services.BeerNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": notFound.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve beer",
			"error":   err.Error(),
		})
	}
	return c.JSON(beer)
}

// HandleListBeers retrieves all registered beers.
func (h *BeerHandler) HandleListBeers(c *fiber.Ctx) error {
	beers, err := h.service.ListAllBeers()
	if err != nil {
		log.Printf("Error listing beers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve beers",
			"error":   err.Error(),
		})
	}
	return c.JSON(beers)
}

// HandleDeleteBeer removes a beer by its ID.
func (h *BeerHandler) HandleDeleteBeer(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteBeerByID(id); err != nil {
		log.Printf("Error deleting beer %s: %v", id, err)
		var notFound *services.BeerNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": notFound.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete beer",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleIncrementStock raises the stock quantity of a beer within its
// capacity bound.
func (h *BeerHandler) HandleIncrementStock(c *fiber.Ctx) error {
	return h.handleStockAdjustment(c, h.service.IncrementStock)
}

// HandleDecrementStock lowers the stock quantity of a beer, never below
// zero.
func (h *BeerHandler) HandleDecrementStock(c *fiber.Ctx) error {
	return h.handleStockAdjustment(c, h.service.DecrementStock)
}

// handleStockAdjustment parses and validates a quantity payload, applies
// the given service operation, and maps domain errors to HTTP statuses.
func (h *BeerHandler) handleStockAdjustment(c *fiber.Ctx, adjust func(id string, qty int) (*models.Beer, error)) error {
	id := c.Params("id")

	var req QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	beer, err := adjust(id, *req.Quantity)
	if err != nil {
		log.Printf("Error adjusting stock for beer %s: %v", id, err)
		var notFound *services.BeerNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": notFound.Error(),
			})
		}
		var stockExceeded *services.BeerStockExceededError
		var insufficientStock *services.BeerInsufficientStockError
		if errors.As(err, &stockExceeded) || errors.As(err, &insufficientStock) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Stock adjustment failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not adjust stock",
			"error":   err.Error(),
		})
	}

	return c.JSON(beer)
}
