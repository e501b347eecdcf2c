package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"beerstock/internal/handlers"
	"beerstock/internal/models"
	"beerstock/internal/repositories"
	"beerstock/internal/services"
)

// setupApp sets up a Fiber app for testing with an isolated in-memory
// SQLite database.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	// A named in-memory database keeps each test isolated while surviving
	// connection pooling within the test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}

	if err := db.AutoMigrate(&models.Beer{}); err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	beerRepo := repositories.NewGORMBeerRepository(db)
	beerService := services.NewBeerService(beerRepo, nil) // nil for RabbitMQ client
	beerHandler := handlers.NewBeerHandler(beerService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	beerHandler.RegisterRoutes(apiV1)

	return app
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func postBeer(t *testing.T, app *fiber.App, payload map[string]interface{}) *http.Response {
	t.Helper()
	jsonBody, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/beer", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)
	return resp
}

func patchQuantity(t *testing.T, app *fiber.App, id, op string, quantity int) *http.Response {
	t.Helper()
	jsonBody, _ := json.Marshal(map[string]int{"quantity": quantity})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/v1/beer/%s/%s", id, op), bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBeer(t *testing.T, resp *http.Response) models.Beer {
	t.Helper()
	var beer models.Beer
	err := json.NewDecoder(resp.Body).Decode(&beer)
	assert.NoError(t, err)
	resp.Body.Close()
	return beer
}

func defaultBeerPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Faxe Witbier",
		"brand":    "Faxe Brewery Denmark",
		"max":      100,
		"quantity": 30,
		"type":     "WITBIER",
	}
}

func TestBeerLifecycle(t *testing.T) {
	app := setupApp(t)

	// --- Create ---
	resp := postBeer(t, app, defaultBeerPayload())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBeer(t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Faxe Witbier", created.Name)
	assert.Equal(t, 100, created.MaxCapacity)
	assert.Equal(t, 30, created.Quantity)
	assert.Equal(t, models.Witbier, created.Type)

	// --- Duplicate name is rejected ---
	resp = postBeer(t, app, defaultBeerPayload())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// --- Find by name ---
	req := httptest.NewRequest(http.MethodGet, "/api/v1/beer/Faxe%20Witbier", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBeer(t, resp)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)

	// --- List all ---
	req = httptest.NewRequest(http.MethodGet, "/api/v1/beer", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var beers []models.Beer
	err = json.NewDecoder(resp.Body).Decode(&beers)
	assert.NoError(t, err)
	assert.Len(t, beers, 1)
	resp.Body.Close()

	// --- Delete ---
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/beer/"+created.ID, nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// --- Lookup after delete fails ---
	req = httptest.NewRequest(http.MethodGet, "/api/v1/beer/Faxe%20Witbier", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// --- Second delete fails: deletion is not idempotent ---
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/beer/"+created.ID, nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// --- The name is free again: re-registering it succeeds ---
	resp = postBeer(t, app, defaultBeerPayload())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	recreated := decodeBeer(t, resp)
	assert.NotEmpty(t, recreated.ID)
	assert.NotEqual(t, created.ID, recreated.ID)
	assert.Equal(t, created.Name, recreated.Name)
}

func TestListBeers_Empty(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/beer", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var beers []models.Beer
	err = json.NewDecoder(resp.Body).Decode(&beers)
	assert.NoError(t, err)
	assert.Empty(t, beers)
	resp.Body.Close()
}

func TestCreateBeer_Validation(t *testing.T) {
	app := setupApp(t)

	cases := []struct {
		name   string
		mutate func(payload map[string]interface{})
	}{
		{"missing name", func(p map[string]interface{}) { delete(p, "name") }},
		{"missing brand", func(p map[string]interface{}) { delete(p, "brand") }},
		{"capacity above limit", func(p map[string]interface{}) { p["max"] = 501 }},
		{"quantity above limit", func(p map[string]interface{}) { p["quantity"] = 101 }},
		{"negative quantity", func(p map[string]interface{}) { p["quantity"] = -1 }},
		{"unknown type", func(p map[string]interface{}) { p["type"] = "PILSNER" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := defaultBeerPayload()
			tc.mutate(payload)
			resp := postBeer(t, app, payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

func TestCreateBeer_QuantityAboveCapacity(t *testing.T) {
	app := setupApp(t)

	payload := defaultBeerPayload()
	payload["max"] = 50
	payload["quantity"] = 90

	resp := postBeer(t, app, payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestIncrementStock(t *testing.T) {
	app := setupApp(t)

	resp := postBeer(t, app, defaultBeerPayload()) // quantity 30, max 100
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBeer(t, resp)

	// Landing exactly on capacity succeeds
	resp = patchQuantity(t, app, created.ID, "increment", 70)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBeer(t, resp)
	assert.Equal(t, 100, updated.Quantity)

	// One more unit exceeds capacity
	resp = patchQuantity(t, app, created.ID, "increment", 1)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The failed increment left the quantity untouched
	req := httptest.NewRequest(http.MethodGet, "/api/v1/beer/Faxe%20Witbier", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	fetched := decodeBeer(t, resp)
	assert.Equal(t, 100, fetched.Quantity)
}

func TestIncrementStock_NotFound(t *testing.T) {
	app := setupApp(t)

	resp := patchQuantity(t, app, "00000000-0000-0000-0000-000000000000", "increment", 10)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestIncrementStock_QuantityValidation(t *testing.T) {
	app := setupApp(t)

	resp := postBeer(t, app, defaultBeerPayload())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBeer(t, resp)

	// quantity above the per-request limit
	resp = patchQuantity(t, app, created.ID, "increment", 101)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// missing quantity field
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/beer/"+created.ID+"/increment", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDecrementStock(t *testing.T) {
	app := setupApp(t)

	resp := postBeer(t, app, defaultBeerPayload()) // quantity 30
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBeer(t, resp)

	// Draining the stock to zero succeeds
	resp = patchQuantity(t, app, created.ID, "decrement", 30)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBeer(t, resp)
	assert.Equal(t, 0, updated.Quantity)

	// One unit below zero fails
	resp = patchQuantity(t, app, created.ID, "decrement", 1)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The failed decrement left the quantity untouched
	req := httptest.NewRequest(http.MethodGet, "/api/v1/beer/Faxe%20Witbier", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	fetched := decodeBeer(t, resp)
	assert.Equal(t, 0, fetched.Quantity)
}

func TestDecrementStock_NotFound(t *testing.T) {
	app := setupApp(t)

	resp := patchQuantity(t, app, "00000000-0000-0000-0000-000000000000", "decrement", 10)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
