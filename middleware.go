// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	forwardedHostHeaderKey = "x-forwarded-host"
	forwardedForHeaderKey  = "x-forwarded-for"
	requestIDHeaderName    = "x-request-id"

	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"
)

type fiberLoggingContext struct {
	c          *fiber.Ctx
	handlerErr error
}

func removePort(host string) string {
	return strings.Split(host, ":")[0]
}

// requestID returns the inbound x-request-id header, or generates a
// random uuid when the caller did not send one.
func requestID(ctx *fiberLoggingContext) string {
	if id := ctx.header(requestIDHeaderName); id != "" {
		return id
	}

	id, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating request id: %w", err))
	}
	return id.String()
}

func logIncomingRequest(ctx *fiberLoggingContext, logger Logger) {
	logger.Trace(IncomingRequestMessage,
		"method", ctx.method(),
		"path", ctx.path(),
		"hostname", removePort(ctx.host()),
		"forwardedHost", ctx.header(forwardedHostHeaderKey),
		"ip", ctx.header(forwardedForHeaderKey),
		"userAgent", ctx.header("user-agent"),
	)
}

func logRequestCompleted(ctx *fiberLoggingContext, logger Logger, startTime time.Time) {
	logger.Info(RequestCompletedMessage,
		"method", ctx.method(),
		"path", ctx.path(),
		"statusCode", ctx.statusCode(),
		"bodyBytes", ctx.bodySize(),
		"responseTime", float64(time.Since(startTime).Milliseconds()),
	)
}

func (flc *fiberLoggingContext) header(key string) string {
	return flc.c.Get(key, "")
}

func (flc *fiberLoggingContext) path() string {
	return string(flc.c.Request().URI().RequestURI())
}

func (flc *fiberLoggingContext) host() string {
	return string(flc.c.Request().Host())
}

func (flc *fiberLoggingContext) method() string {
	return flc.c.Method()
}

func (flc *fiberLoggingContext) fiberError() *fiber.Error {
	if fiberErr, ok := flc.handlerErr.(*fiber.Error); flc.handlerErr != nil && ok {
		return fiberErr
	}
	return nil
}

func (flc *fiberLoggingContext) bodySize() int {
	if fiberErr := flc.fiberError(); fiberErr != nil {
		return len(fiberErr.Error())
	}

	if content := flc.c.GetRespHeader("Content-Length"); content != "" {
		if length, err := strconv.Atoi(content); err == nil {
			return length
		}
	}
	return len(flc.c.Response().Body())
}

func (flc *fiberLoggingContext) statusCode() int {
	if fiberErr := flc.fiberError(); fiberErr != nil {
		return fiberErr.Code
	}

	return flc.c.Response().StatusCode()
}

// RequestMiddlewareLogger is a fiber middleware to log all requests.
// It logs the incoming request and, when the request is completed, the
// status and latency, all attributed to a per-request namespace under
// logger's namespace.
func RequestMiddlewareLogger(logger Logger, excludedPrefix []string) func(*fiber.Ctx) error {
	return func(fiberCtx *fiber.Ctx) error {
		loggingContext := &fiberLoggingContext{c: fiberCtx}

		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(loggingContext.path(), prefix) {
				return fiberCtx.Next()
			}
		}

		start := time.Now()

		requestLogger := logger.WithName("request").WithName(requestID(loggingContext))

		ctx := WithContext(fiberCtx.UserContext(), requestLogger)
		fiberCtx.SetUserContext(ctx)

		logIncomingRequest(loggingContext, requestLogger)
		err := fiberCtx.Next()
		loggingContext.handlerErr = err

		logRequestCompleted(loggingContext, requestLogger, start)

		return err
	}
}
