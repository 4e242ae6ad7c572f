package middleware

import (
	"errors"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/pkg/jwt"
	"github.com/quillpress/core/internal/pkg/response"
	"gorm.io/gorm"
)

const contextKeyActor = "actor"

var (
	errTokenRequired    = errors.New("authentication token required")
	errAccountNotActive = errors.New("account is not active")
)

// Actor is the request-scoped identity every workflow call receives:
// the authenticated user plus the permission set of their role. It is
// built once at the boundary; services never reach into ambient state.
type Actor struct {
	UserID      string
	Username    string
	RoleID      string
	RoleName    string
	permissions map[string]struct{}
}

// Can reports whether the actor holds the named permission.
func (a *Actor) Can(permission string) bool {
	if a == nil {
		return false
	}
	_, ok := a.permissions[permission]
	return ok
}

// Permissions lists the actor's permission names.
func (a *Actor) Permissions() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.permissions))
	for p := range a.permissions {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// CanAny reports whether the actor holds at least one of the permissions.
func (a *Actor) CanAny(permissions ...string) bool {
	for _, p := range permissions {
		if a.Can(p) {
			return true
		}
	}
	return false
}

// Auth returns a middleware that enforces JWT authentication and loads
// the actor with role permissions. An actor already resolved earlier in
// the chain (by OptionalAuth) is reused without a second store lookup.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentActor(c) != nil {
			c.Next()
			return
		}
		actor, err := resolveActor(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(contextKeyActor, actor)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a valid token is present and
// passes anonymously otherwise. It runs ahead of the rate limiter so
// authenticated traffic is visible there; enforcement stays with Auth.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, err := resolveActor(db, extractToken(c)); err == nil {
			c.Set(contextKeyActor, actor)
		}
		c.Next()
	}
}

// RequirePermission gates a route group on a single permission. Runs after
// Auth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentActor(c).Can(permission) {
			response.Forbidden(c, "permission denied")
			return
		}
		c.Next()
	}
}

// CurrentActor extracts the authenticated actor from context, or nil.
func CurrentActor(c *gin.Context) *Actor {
	v, _ := c.Get(contextKeyActor)
	actor, _ := v.(*Actor)
	return actor
}

// IsAuthenticated returns true if the request carries a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentActor(c) != nil
}

func resolveActor(db *gorm.DB, rawToken string) (*Actor, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, errTokenRequired
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}

	var user models.UserModel
	if err := db.Preload("Role.Permissions").
		First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, err
	}
	if user.Status != models.UserActive {
		return nil, errAccountNotActive
	}

	actor := &Actor{
		UserID:      user.ID,
		Username:    user.Username,
		RoleID:      user.RoleID,
		permissions: map[string]struct{}{},
	}
	if user.Role != nil {
		actor.RoleName = user.Role.Name
		for _, p := range user.Role.Permissions {
			actor.permissions[p.Name] = struct{}{}
		}
	}
	return actor, nil
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}

// NewActorForTest builds an actor with the given permissions. Exported for
// service tests only.
func NewActorForTest(userID string, permissions ...string) *Actor {
	set := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	return &Actor{UserID: userID, permissions: set}
}
