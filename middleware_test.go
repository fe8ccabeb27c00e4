// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMiddlewareLogger(t *testing.T) {
	console, _ := resetState(t)
	Setup(Options{Level: severityPointer(Trace), Root: "app"})

	app := fiber.New()
	app.Use(RequestMiddlewareLogger(New("app"), []string{"/-/"}))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	app.Get("/-/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	output := console.String()
	assert.Contains(t, output, IncomingRequestMessage)
	assert.Contains(t, output, RequestCompletedMessage)
	assert.Contains(t, output, "method=GET")
	assert.Contains(t, output, "path=/ping")
	assert.Contains(t, output, "statusCode=200")
}

func TestRequestMiddlewareLoggerExcludedPrefix(t *testing.T) {
	console, _ := resetState(t)
	Setup(Options{Level: severityPointer(Trace), Root: "app"})

	app := fiber.New()
	app.Use(RequestMiddlewareLogger(New("app"), []string{"/-/"}))
	app.Get("/-/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/-/healthz", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	assert.NotContains(t, console.String(), RequestCompletedMessage)
}

func TestRequestMiddlewareLoggerKeepsInboundRequestID(t *testing.T) {
	console, _ := resetState(t)
	Setup(Options{Level: severityPointer(Trace), Root: "app"})

	app := fiber.New()
	app.Use(RequestMiddlewareLogger(New("app"), nil))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	request := httptest.NewRequest(http.MethodGet, "/ping", nil)
	request.Header.Set("x-request-id", "fixed-id")
	_, err := app.Test(request)
	require.NoError(t, err)

	assert.Contains(t, console.String(), "app.request.fixed-id]")
}

func TestRequestMiddlewareLoggerErrorStatus(t *testing.T) {
	console, _ := resetState(t)
	Setup(Options{Level: severityPointer(Trace), Root: "app"})

	app := fiber.New()
	app.Use(RequestMiddlewareLogger(New("app"), nil))
	app.Get("/broken", func(c *fiber.Ctx) error {
		return fiber.ErrServiceUnavailable
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/broken", nil))
	require.NoError(t, err)

	assert.Contains(t, console.String(), "statusCode=503")
}
