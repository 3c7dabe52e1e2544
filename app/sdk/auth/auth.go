// Package auth provides authentication and authorization support.
// Authentication: You are who you say you are.
// Authorization: You have permission to do what you are requesting to do.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/actions"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/resource"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/role"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
)

// Set of error variables for authentication and authorization.
var (
	ErrForbidden      = errors.New("attempted action is not allowed")
	ErrKIDMissing     = errors.New("kid missing from token header")
	ErrKIDMalformed   = errors.New("kid in token header is malformed")
	ErrInvalidRole    = errors.New("token contains an invalid role")
	ErrTenantMismatch = errors.New("token tenant does not match the employee record")
)

// TokenTTL is how long a generated token stays valid.
const TokenTTL = 24 * time.Hour

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// KeyLookup declares a method set of behavior for looking up
// private and public keys for JWT use.
type KeyLookup interface {
	PrivateKey(kid string) (key string, err error)
	PublicKey(kid string) (key string, err error)
}

// ActorResolver resolves the employee record behind an authenticated user.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uuid.UUID) (employeebus.Actor, error)
}

// Config represents information required to initialize auth.
type Config struct {
	Log       *logger.Logger
	KeyLookup KeyLookup
	Actors    ActorResolver
	Issuer    string
}

// Auth is used to authenticate clients.
type Auth struct {
	log       *logger.Logger
	keyLookup KeyLookup
	actors    ActorResolver
	policy    *policy
	method    jwt.SigningMethod
	parser    *jwt.Parser
	issuer    string
}

// New creates an Auth to support authentication/authorization.
func New(cfg Config) (*Auth, error) {
	pol, err := newPolicy(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}

	a := Auth{
		log:       cfg.Log,
		keyLookup: cfg.KeyLookup,
		actors:    cfg.Actors,
		policy:    pol,
		method:    jwt.GetSigningMethod(jwt.SigningMethodRS256.Name),
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}), jwt.WithIssuer(cfg.Issuer)),
		issuer:    cfg.Issuer,
	}

	return &a, nil
}

// Issuer provides the configured issuer used to authenticate tokens.
func (a *Auth) Issuer() string {
	return a.issuer
}

// GenerateToken generates a signed JWT token string for the employee.
func (a *Auth) GenerateToken(kid string, actor employeebus.Actor) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID.String(),
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TenantID: actor.TenantID.String(),
		Role:     actor.Role.String(),
	}

	token := jwt.NewWithClaims(a.method, claims)
	token.Header["kid"] = kid

	privateKeyPEM, err := a.keyLookup.PrivateKey(kid)
	if err != nil {
		return "", fmt.Errorf("private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("parsing private key from PEM: %w", err)
	}

	str, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// Authenticate processes the token to validate the sender's token is valid.
// When an actor resolver is configured the employee record must still exist
// and belong to the tenant named in the token.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (Claims, error) {
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		return Claims{}, errors.New("expected authorization header format: Bearer <token>")
	}

	jwtUnverified := bearerToken[7:]

	var claims Claims
	token, _, err := a.parser.ParseUnverified(jwtUnverified, &claims)
	if err != nil {
		return Claims{}, fmt.Errorf("error parsing token: %w", err)
	}

	kidRaw, exists := token.Header["kid"]
	if !exists {
		return Claims{}, ErrKIDMissing
	}

	kid, ok := kidRaw.(string)
	if !ok {
		return Claims{}, ErrKIDMalformed
	}

	pem, err := a.keyLookup.PublicKey(kid)
	if err != nil {
		return Claims{}, fmt.Errorf("fetching public key for kid %q: %w", kid, err)
	}

	if err := a.verifySignatureAndClaims(jwtUnverified, pem); err != nil {
		a.log.Info(ctx, "**Authenticate-FAILED**", "userID", claims.Subject)
		return Claims{}, fmt.Errorf("authentication failed: %w", err)
	}

	if _, err := role.Parse(claims.Role); err != nil {
		return Claims{}, ErrInvalidRole
	}

	if err := a.isEmployee(ctx, claims); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// Authorize checks the role in the claims is allowed to perform the action
// on the resource.
func (a *Auth) Authorize(ctx context.Context, claims Claims, res resource.Resource, act actions.Action) error {
	r, err := role.Parse(claims.Role)
	if err != nil {
		return ErrInvalidRole
	}

	if err := a.policy.check(ctx, r, res, act); err != nil {
		return fmt.Errorf("%w: role %s may not %s %s", ErrForbidden, r, act, res)
	}

	return nil
}

func (a *Auth) isEmployee(ctx context.Context, claims Claims) error {
	if a.actors == nil {
		return nil
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return fmt.Errorf("parsing user ID %q from claims: %w", claims.Subject, err)
	}

	actor, err := a.actors.ResolveActor(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve actor: %w", err)
	}

	if actor.TenantID.String() != claims.TenantID {
		return ErrTenantMismatch
	}

	return nil
}

// verifySignatureAndClaims parses the token with the public key, validates
// the signature, and checks the issuer claim.
func (a *Auth) verifySignatureAndClaims(tokenStr, pemStr string) error {
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemStr))
	if err != nil {
		return fmt.Errorf("parsing public key: %w", err)
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return publicKey, nil
	})
	if err != nil {
		return fmt.Errorf("validating token: %w", err)
	}

	if !token.Valid {
		return errors.New("token is invalid")
	}

	return nil
}
