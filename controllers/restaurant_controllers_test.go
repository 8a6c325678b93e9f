package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-console/controllers"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/storage"
)

func TestRestaurantEndpoints(t *testing.T) {
	app := newTestApp(t)
	own := app.restaurant(t, "spice-route")
	other := app.restaurant(t, "harbour")

	router := gin.New()
	rc := controllers.NewRestaurantController(app.restaurants)
	router.GET("/public/restaurants/:slug", rc.GetRestaurantBySlug)
	router.GET("/restaurant", as("admin-1", models.RoleAdmin, own.ID), rc.GetCurrentRestaurant)
	router.PUT("/restaurants/:restaurant_id", as("admin-1", models.RoleAdmin, own.ID), rc.UpdateRestaurant)
	router.GET("/platform/restaurants", as("root", models.RoleSuperAdmin, ""), rc.GetRestaurants)
	router.POST("/platform/restaurants", as("root", models.RoleSuperAdmin, ""), rc.CreateRestaurant)
	router.GET("/platform/restaurant", as("root", models.RoleSuperAdmin, ""), rc.GetCurrentRestaurant)

	w, env := doJSON(t, router, http.MethodGet, "/public/restaurants/spice-route", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, own.ID, decode[models.Restaurant](t, env.Data).ID)

	w, _ = doJSON(t, router, http.MethodGet, "/public/restaurants/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = doJSON(t, router, http.MethodGet, "/restaurant", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "spice-route", decode[models.Restaurant](t, env.Data).Slug)

	// a super admin has no tenant of their own
	w, _ = doJSON(t, router, http.MethodGet, "/platform/restaurant", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodPut, "/restaurants/"+other.ID, gin.H{"name": "Taken"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = doJSON(t, router, http.MethodPut, "/restaurants/"+own.ID, gin.H{"name": "Spice Route Cafe"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Spice Route Cafe", decode[models.Restaurant](t, env.Data).Name)

	w, env = doJSON(t, router, http.MethodPost, "/platform/restaurants", gin.H{"name": "Café Madras"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "caf-madras", decode[models.Restaurant](t, env.Data).Slug)

	w, env = doJSON(t, router, http.MethodGet, "/platform/restaurants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Restaurant](t, env.Data), 3)
}

func logoRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("logo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/branding/logo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestBrandingEndpoints(t *testing.T) {
	app := newTestApp(t)
	r := app.restaurant(t, "brand")

	router := gin.New()
	bc := controllers.NewBrandingController(app.branding)
	router.POST("/branding/logo", as("admin-1", models.RoleAdmin, r.ID), bc.UploadLogo)
	router.PUT("/branding/color", as("admin-1", models.RoleAdmin, r.ID), bc.SetColor)

	w := doRequest(router, logoRequest(t, "logo.png", []byte("\x89PNG fake")))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "http://localhost/uploads/branding/"+r.ID+"/logo.png")
	_, err := os.Stat(filepath.Join(app.uploadDir, "branding", r.ID, "logo.png"))
	assert.NoError(t, err)

	w = doRequest(router, logoRequest(t, "logo.exe", []byte("nope")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	big := []byte(strings.Repeat("x", storage.MaxBrandingSize+1))
	w = doRequest(router, logoRequest(t, "big.png", big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w, env := doJSON(t, router, http.MethodPut, "/branding/color", gin.H{"primary_color": "#1a2B3c"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Restaurant](t, env.Data)
	require.NotNil(t, got.PrimaryColor)
	assert.Equal(t, "#1a2B3c", *got.PrimaryColor)

	w, _ = doJSON(t, router, http.MethodPut, "/branding/color", gin.H{"primary_color": "blue"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
