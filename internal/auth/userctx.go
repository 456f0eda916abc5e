package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uptask-dev/uptask-backend/internal/users"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUserDBID    = "user_db_id"
)

// WithUser upserts the authenticated identity into the user directory and
// puts the directory id on the context. Everything downstream treats that id
// as the principal.
//
// When no verifier middleware ran (local development without Firebase
// credentials), the identity falls back to X-User-* headers.
func WithUser(dir *users.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := strings.TrimSpace(c.GetString(CtxFirebaseUID))
		if fuid == "" {
			fuid = strings.TrimSpace(c.GetHeader("X-User-Id"))
		}
		if fuid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
			c.Abort()
			return
		}

		email := c.GetString("email")
		if email == "" {
			email = c.GetHeader("X-User-Email")
		}
		name := c.GetString("name")
		if name == "" {
			name = c.GetHeader("X-User-Name")
		}

		uid, err := dir.Ensure(c.Request.Context(), users.UpsertUser{
			FirebaseUID: fuid,
			Email:       email,
			DisplayName: name,
			PhotoURL:    c.GetHeader("X-User-Photo"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxFirebaseUID, fuid)
		c.Set(CtxUserDBID, uid)
		c.Next()
	}
}

// UserDBID returns the directory id of the authenticated principal.
func UserDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}

// UserFirebaseUID returns the identity-provider uid of the principal.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
