// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package requestutil gathers the small extractions every handler repeats:
decoding a JSON body, reading a chi URL parameter, and pulling the
authenticated identity out of the request context.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/ctxutil"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
)

// DecodeJSON unmarshals the request body into target. Any decode
// failure collapses to [validate.ErrInvalidJSON]; clients get one
// consistent message no matter how the body was malformed.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID reads a named URL path parameter, typically a resource UUID.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredClaims returns the caller's verified token claims.

Returns:
  - *sec.AuthClaims: the authenticated identity.
  - error: apperr.Unauthorized when the request carries no identity.
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID is shorthand for the common case where a handler only
// needs the caller's user ID.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
