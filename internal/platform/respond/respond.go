// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package respond writes the JSON envelopes every Inkwell endpoint uses.
// Handlers never call json.NewEncoder themselves; funneling all output
// through here keeps the success and error shapes identical across the
// reader, writer, and admin surfaces.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/ctxkey"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// SuccessEnvelope wraps a single resource under a "data" key.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// PaginatedEnvelope wraps a list plus its pagination metadata.
type PaginatedEnvelope struct {
	Data interface{}     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the error shape clients can rely on: a human message,
// a machine code, and optional per-field validation details.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON encodes payload with the given status code. Encoding failures are
// discarded; by the time WriteHeader has run there is nothing useful left
// to tell the client.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 with the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes a 201 with the standard success envelope.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes a 200 carrying list data and its page metadata.
func Paginated(writer http.ResponseWriter, data interface{}, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: metadata})
}

// NoContent writes an empty 204.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

/*
Error renders any error as the standard error envelope.

Errors that are not an [apperr.AppError] are treated as internal faults:
the cause is logged with the request ID for correlation, and the client
sees only a generic message. Server-side (5xx) application errors are
logged as well, since they always indicate something operators should see.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		requestLogger(request).ErrorContext(request.Context(), "unclassified_error_masked",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID(request)),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= 500 {
		requestLogger(request).ErrorContext(request.Context(), "server_side_error",
			slog.String("code", appError.Code),
			slog.String("request_id", requestID(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

func requestLogger(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

func requestID(request *http.Request) string {
	id, _ := request.Context().Value(ctxkey.KeyRequestID).(string)
	return id
}
