package server

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAssist(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/assistant/summary", AssistRequest{Prompt: "cloud infrastructure"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[AssistResponse](t, w)
	assert.Equal(t, "summary", string(resp.Section))
	assert.Contains(t, resp.Content, "cloud infrastructure")
	assert.NotEmpty(t, resp.Examples)
	assert.Nil(t, resp.Resume)
}

func TestHandleAssist_AppliesToDocument(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		section string
		check   func(t *testing.T, resp AssistResponse)
	}{
		{
			section: "summary",
			check: func(t *testing.T, resp AssistResponse) {
				assert.Equal(t, resp.Content, resp.Resume.ProfessionalSummary)
			},
		},
		{
			section: "experience",
			check: func(t *testing.T, resp AssistResponse) {
				require.Len(t, resp.Resume.WorkExperience, 1)
				assert.Equal(t, resp.Content, resp.Resume.WorkExperience[0].Description)
			},
		},
		{
			section: "skills",
			check: func(t *testing.T, resp AssistResponse) {
				require.NotEmpty(t, resp.Resume.Skills)
				assert.Equal(t, "Data analysis", resp.Resume.Skills[0].Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			body := AssistRequest{Prompt: "Kubernetes", Resume: docJSON(t, sampleDoc())}
			w := ts.do(t, http.MethodPost, "/assistant/"+tt.section, body, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			resp := decodeBody[AssistResponse](t, w)
			require.NotNil(t, resp.Resume)
			tt.check(t, resp)
		})
	}
}

func TestHandleAssist_Errors(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name    string
		section string
		body    any
		want    int
	}{
		{name: "unknown section", section: "hobbies", body: AssistRequest{Prompt: "x"}, want: http.StatusNotFound},
		{name: "empty prompt", section: "summary", body: AssistRequest{Prompt: "   "}, want: http.StatusBadRequest},
		{name: "malformed body", section: "skills", body: "{", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/assistant/"+tt.section, tt.body, "")
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleUploadImage(t *testing.T) {
	ts := newTestServer(t, nil)

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, uploadRequest(t, "image", "me.png", pngBytes(t, 1200, 600)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[ImageResponse](t, w)
	assert.True(t, strings.HasPrefix(resp.DataURL, "data:image/jpeg;base64,"))

	// The data URL can be stored on a document directly.
	doc, err := resume.SetProfileImage(sampleDoc(), resp.DataURL)
	require.NoError(t, err)
	assert.True(t, resume.HasProfileImage(doc))
}

func TestHandleUploadImage_Errors(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.cfg.MaxUploadSize = 2048

	tests := []struct {
		name  string
		field string
		data  []byte
		want  int
	}{
		{name: "too large", field: "image", data: bytes.Repeat([]byte{0x89}, 4096), want: http.StatusRequestEntityTooLarge},
		{name: "not an image", field: "image", data: []byte("just some text"), want: http.StatusUnsupportedMediaType},
		{name: "empty file", field: "image", data: nil, want: http.StatusBadRequest},
		{name: "wrong field", field: "photo", data: []byte("x"), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ts.handler.ServeHTTP(w, uploadRequest(t, tt.field, "file.bin", tt.data))
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}
