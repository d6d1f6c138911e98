package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thehowl/godiff/patch"
)

func TestApplyPatchRoute(t *testing.T) {
	r := newServer(t).Router()

	redContent := "a\nb\nc\nd\n"
	rd, header := multipartFiles(
		"red@hello.go", redContent,
		"green@hello.go", "a\nd\ne\n",
	)
	wri, req := httptest.NewRecorder(), httptest.NewRequest("POST", "/", rd)
	req.Header.Set("Content-Type", header)
	r.ServeHTTP(wri, req)
	require.Equal(t, http.StatusFound, wri.Code, wri.Body.String())
	loc := wri.Header().Get("Location")
	require.NotEmpty(t, loc)

	t.Run("RoundTrips", func(t *testing.T) {
		diffText := patch.CreatePatch("hello.go", redContent, "a\nd\ne\n", "", "")

		wri, req := httptest.NewRecorder(), httptest.NewRequest("POST", loc+"/apply", strings.NewReader(diffText))
		r.ServeHTTP(wri, req)
		assert.Equal(t, http.StatusOK, wri.Code, wri.Body.String())
		assert.Equal(t, "a\nd\ne\n", wri.Body.String())
	})

	t.Run("UnparsablePatchIs422", func(t *testing.T) {
		wri, req := httptest.NewRecorder(), httptest.NewRequest("POST", loc+"/apply", strings.NewReader("not a patch"))
		r.ServeHTTP(wri, req)
		assert.Equal(t, http.StatusUnprocessableEntity, wri.Code)
	})

	t.Run("NonMatchingPatchIs422", func(t *testing.T) {
		diffText := patch.CreatePatch("hello.go", "completely\ndifferent\ncontent\n", "other\n", "", "")

		wri, req := httptest.NewRecorder(), httptest.NewRequest("POST", loc+"/apply", strings.NewReader(diffText))
		r.ServeHTTP(wri, req)
		assert.Equal(t, http.StatusUnprocessableEntity, wri.Code, wri.Body.String())
	})

	t.Run("UnknownIDIs404", func(t *testing.T) {
		wri, req := httptest.NewRecorder(), httptest.NewRequest("POST", "/doesnotexist/apply", strings.NewReader(""))
		r.ServeHTTP(wri, req)
		assert.Equal(t, http.StatusNotFound, wri.Code)
	})
}
