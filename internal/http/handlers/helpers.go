package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/christianrafael21/hoopscout/internal/http/response"
	"github.com/christianrafael21/hoopscout/internal/platform/ctxutil"
)

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil || id == uuid.Nil {
		response.AbortError(c, http.StatusBadRequest, "validation", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func requireActor(c *gin.Context) (*ctxutil.Actor, bool) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil || actor.ID == uuid.Nil {
		response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing or invalid token")
		return nil, false
	}
	return actor, true
}

// ifMatchVersion reads an optional If-Match header carrying an evaluation version,
// accepting 3, "3" and W/"3". An unreadable value comes back as version 0, which the
// aggregate rejects once the caller's ownership is known.
func ifMatchVersion(c *gin.Context) *int {
	raw := strings.TrimSpace(c.GetHeader("If-Match"))
	if raw == "" || raw == "*" {
		return nil
	}
	raw = strings.TrimPrefix(raw, "W/")
	raw = strings.Trim(raw, `"`)
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		v = 0
	}
	return &v
}

func setVersionETag(c *gin.Context, version int) {
	c.Header("ETag", `"`+strconv.Itoa(version)+`"`)
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// updateReference is parseOptionalUUID for update bodies: a malformed id becomes
// uuid.Nil so that it is reported after the ownership check.
func updateReference(raw *string) *uuid.UUID {
	id, err := parseOptionalUUID(raw)
	if err != nil {
		nilID := uuid.Nil
		return &nilID
	}
	return id
}
