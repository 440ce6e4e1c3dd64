// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package sec holds the security primitives the rest of Inkwell depends on:
// password hashing, role definitions, and RS256 token issuance. Domain
// packages never touch crypto types directly; they consume this package
// through small interfaces such as [middleware.TokenVerifier].
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

/*
AuthClaims is the payload carried inside an Inkwell access token.

Identity fields ride along in the token itself so that request
authentication never needs a database round trip: the middleware can
rebuild the caller's identity from the signature alone. Claim keys are
abbreviated to keep tokens short.
*/
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// TokenService signs and verifies access tokens with an RS256 key pair.
// Only the public key is needed to verify, so read-only deployments can
// run without the signing key present.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
}

/*
NewTokenService loads the RSA key pair from PEM files on disk and returns
a ready TokenService.

Parameters:
  - privateKeyPath: PEM file with the RS256 signing key.
  - publicKeyPath: PEM file with the matching verification key.
  - issuer: value stamped into the "iss" claim of every issued token.
*/
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privatePEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("token_private_key_read %s: %w", privateKeyPath, err)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("token_private_key_parse: %w", err)
	}

	publicPEM, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("token_public_key_read %s: %w", publicKeyPath, err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("token_public_key_parse: %w", err)
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
	}, nil
}

// GenerateAccessToken issues a signed token identifying the given user,
// valid from now until now plus timeToLive.
func (tokens *TokenService) GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error) {
	issuedAt := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    tokens.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(timeToLive)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(tokens.privateKey)
	if err != nil {
		return "", fmt.Errorf("token_sign: %w", err)
	}
	return signed, nil
}

// VerifyToken validates the signature, expiry, and signing algorithm of
// a token string and returns its claims. The algorithm check guards
// against tokens that swap RS256 for a weaker method.
func (tokens *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("token_alg_mismatch: %v", token.Header["alg"])
		}
		return tokens.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token_invalid: %w", err)
	}

	claims, ok := parsed.Claims.(*AuthClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("token_claims_invalid")
	}
	return claims, nil
}
