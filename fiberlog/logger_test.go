package fiberlog

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestGetFuncTagMap(t *testing.T) {
	ftm := getFuncTagMap(Config{Tags: []string{TagMethod, TagStatus, "неизвестный"}}, new(data))
	require.Len(t, ftm, 2)
	require.Contains(t, ftm, TagMethod)
	require.Contains(t, ftm, TagStatus)
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagMethod, TagPath, TagStatus, TagLatency, TagBody, TagResBody, RequestID},
	}))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := buf.String()
	require.Contains(t, out, "запрос api")
	require.Contains(t, out, "method=GET")
	require.Contains(t, out, "path=/ping")
	require.Contains(t, out, "status=200")
}
