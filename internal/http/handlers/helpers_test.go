package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestContext(method, path string, header map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, path, nil)
	for k, v := range header {
		c.Request.Header.Set(k, v)
	}
	return c, rec
}

func TestIfMatchVersion(t *testing.T) {
	cases := []struct {
		header string
		want   int
		isNil  bool
	}{
		{header: "", isNil: true},
		{header: "*", isNil: true},
		{header: "3", want: 3},
		{header: `"4"`, want: 4},
		{header: `W/"5"`, want: 5},
		{header: "abc", want: 0},
		{header: `"0"`, want: 0},
		{header: "-2", want: 0},
	}
	for _, tc := range cases {
		c, rec := newTestContext(http.MethodPut, "/", map[string]string{"If-Match": tc.header})
		got := ifMatchVersion(c)
		if c.IsAborted() {
			t.Fatalf("If-Match %q: request aborted with status=%d", tc.header, rec.Code)
		}
		if tc.isNil {
			if got != nil {
				t.Fatalf("If-Match %q: want nil got=%d", tc.header, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Fatalf("If-Match %q: want=%d got=%v", tc.header, tc.want, got)
		}
	}
}

func TestUpdateReference(t *testing.T) {
	if got := updateReference(nil); got != nil {
		t.Fatalf("nil input: want nil got=%s", *got)
	}
	bad := "nope"
	if got := updateReference(&bad); got == nil || *got != uuid.Nil {
		t.Fatalf("malformed input: want uuid.Nil got=%v", got)
	}
	if uuid.Nil != (uuid.UUID{}) {
		t.Fatalf("uuid.Nil was mutated")
	}
	id := uuid.New()
	raw := id.String()
	if got := updateReference(&raw); got == nil || *got != id {
		t.Fatalf("valid input: want=%s got=%v", id, got)
	}
}

func TestPathUUID(t *testing.T) {
	id := uuid.New()
	c, _ := newTestContext(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	got, ok := pathUUID(c, "id")
	if !ok || got != id {
		t.Fatalf("pathUUID: want=%s got=%s ok=%v", id, got, ok)
	}

	for _, raw := range []string{"", "nope", uuid.Nil.String()} {
		c, rec := newTestContext(http.MethodGet, "/", nil)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		if _, ok := pathUUID(c, "id"); ok {
			t.Fatalf("pathUUID(%q): expected rejection", raw)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("pathUUID(%q): status want=400 got=%d", raw, rec.Code)
		}
	}
}

func TestParseOptionalUUID(t *testing.T) {
	if got, err := parseOptionalUUID(nil); got != nil || err != nil {
		t.Fatalf("nil input: got=%v err=%v", got, err)
	}
	bad := "x"
	if _, err := parseOptionalUUID(&bad); err == nil {
		t.Fatalf("expected parse error")
	}
	raw := " " + uuid.NewString() + " "
	got, err := parseOptionalUUID(&raw)
	if err != nil || got == nil {
		t.Fatalf("valid input: got=%v err=%v", got, err)
	}
}
