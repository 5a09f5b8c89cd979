package middleware

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quarter-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quarter-service/internal/platform/config"
)

// ContextKeyClaims is the gin.Context key holding the caller's *Claims.
const ContextKeyClaims = "claims"

const (
	defaultSubjectHeader = "X-User-ID"
	defaultRolesHeader   = "X-User-Roles"
	defaultScopesHeader  = "X-User-Scopes"
	defaultReadScope     = "quarters:read"
	defaultAdminRole     = "admin"
)

// Claims is the caller identity the API gateway forwards as headers once it
// has validated the token. Roles arrive comma-separated, scopes
// space-separated as in OAuth2.
type Claims struct {
	Subject string
	Roles   []string
	Scopes  []string
}

func (c *Claims) HasRole(role string) bool { return slices.Contains(c.Roles, role) }

func (c *Claims) HasScope(scope string) bool { return slices.Contains(c.Scopes, scope) }

// authSettings is an AuthConfig with empty fields replaced by defaults.
type authSettings struct {
	subjectHeader, rolesHeader, scopesHeader string
	readScope, adminRole                     string
}

func settingsFor(cfg *config.AuthConfig) authSettings {
	if cfg == nil {
		cfg = &config.AuthConfig{}
	}

	return authSettings{
		subjectHeader: cmp.Or(cfg.SubjectHeader, defaultSubjectHeader),
		rolesHeader:   cmp.Or(cfg.RolesHeader, defaultRolesHeader),
		scopesHeader:  cmp.Or(cfg.ScopesHeader, defaultScopesHeader),
		readScope:     cmp.Or(cfg.ReadScope, defaultReadScope),
		adminRole:     cmp.Or(cfg.AdminRole, defaultAdminRole),
	}
}

func (s authSettings) claims(c *gin.Context) *Claims {
	claims := &Claims{Subject: strings.TrimSpace(c.GetHeader(s.subjectHeader))}

	if roles := c.GetHeader(s.rolesHeader); roles != "" {
		claims.Roles = splitRoles(roles)
	}

	if scopes := c.GetHeader(s.scopesHeader); scopes != "" {
		claims.Scopes = strings.Fields(scopes)
	}

	return claims
}

// ExtractClaims reads the identity headers named by cfg. A nil cfg uses the
// default header names.
func ExtractClaims(c *gin.Context, cfg *config.AuthConfig) *Claims {
	return settingsFor(cfg).claims(c)
}

// GetClaims returns the claims stored by RequireAuth, or nil.
func GetClaims(c *gin.Context) *Claims {
	claims, _ := c.Value(ContextKeyClaims).(*Claims)
	return claims
}

// RequireAuth rejects requests without a subject with 401 and stores the
// caller's claims for later handlers.
func RequireAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	s := settingsFor(cfg)

	return func(c *gin.Context) {
		claims := s.claims(c)
		if claims.Subject == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "authentication required")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireAny admits the request when at least one check accepts the
// caller's claims and answers 403 otherwise.
func RequireAny(cfg *config.AuthConfig, checks ...func(*Claims) bool) gin.HandlerFunc {
	s := settingsFor(cfg)

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			claims = s.claims(c)
			c.Set(ContextKeyClaims, claims)
		}

		if slices.ContainsFunc(checks, func(check func(*Claims) bool) bool { return check(claims) }) {
			c.Next()
			return
		}

		abortWithError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "insufficient permissions")
	}
}

// RequireQuarterAccess admits callers holding the read scope or the admin role.
func RequireQuarterAccess(cfg *config.AuthConfig) gin.HandlerFunc {
	s := settingsFor(cfg)

	return RequireAny(cfg,
		func(c *Claims) bool { return c.HasScope(s.readScope) },
		func(c *Claims) bool { return c.HasRole(s.adminRole) },
	)
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message).WithTraceID(dto.GetTraceID(c)))
}

func splitRoles(s string) []string {
	var roles []string

	for role := range strings.SplitSeq(s, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}

	return roles
}
