package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorpath/internal/app"
	"mentorpath/internal/career"
	"mentorpath/internal/model"
	"mentorpath/internal/transport/http/response"
)

type stubGenerator struct {
	path model.CareerPath
	err  error
	got  model.Profile
}

func (g *stubGenerator) Generate(_ context.Context, profile model.Profile) (model.CareerPath, error) {
	g.got = profile
	return g.path, g.err
}

func careerRouter(generator PathGenerator) *gin.Engine {
	router := gin.New()
	router.POST("/career/paths", NewCareerHandler(generator).Generate)
	router.POST("/resume/check", NewResumeHandler(app.NewResumeService(), 1024).Check)
	return router
}

func TestCareer_Generate(t *testing.T) {
	generator := &stubGenerator{path: model.CareerPath{ID: "p1", Title: "Backend Engineer"}}
	router := careerRouter(generator)

	body := `{"education":"BSc","skills":["go"],"preferredWorkStyle":"remote"}`
	req := httptest.NewRequest(http.MethodPost, "/career/paths", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "remote", generator.got.WorkStyle)
	assert.Contains(t, rec.Body.String(), "Backend Engineer")
}

func TestCareer_UpstreamFailure(t *testing.T) {
	router := careerRouter(&stubGenerator{err: errors.New("dial tcp: refused")})

	req := httptest.NewRequest(http.MethodPost, "/career/paths", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var env response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, response.CodeUpstream, env.Code)
}

func TestCareer_InvalidProfileIsBadRequest(t *testing.T) {
	router := careerRouter(&stubGenerator{err: fmt.Errorf("%w: Profile.Goals max", career.ErrInvalidProfile)})

	req := httptest.NewRequest(http.MethodPost, "/career/paths", strings.NewReader(`{"goals":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Profile.Goals")
}

func uploadRequest(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, form.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func TestResume_Check(t *testing.T) {
	router := careerRouter(&stubGenerator{})
	resume := "Jane Doe\njane@example.com\nExperience\nBuilt APIs in Go\nSkills: Go, SQL\nEducation: BSc"

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/resume/check", "resume.txt", []byte(resume)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data model.ResumeScore `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Positive(t, env.Data.Overall)
	assert.Len(t, env.Data.Sections, 5)
}

func TestResume_RejectsUnsupportedAndOversized(t *testing.T) {
	router := careerRouter(&stubGenerator{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/resume/check", "photo.png", []byte("png")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "40003")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/resume/check", "resume.txt", bytes.Repeat([]byte("a"), 2048)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
