package handler

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"community-events/internal/model"
	"community-events/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUploadTestRouter() (*fakeSessions, *storage.MemoryStorage, *gin.Engine) {
	sessions := newFakeSessions()
	store := storage.NewMemoryStorage("http://files.local")
	router := setupTestRouter(sessions, NewUploadHandler(storage.NewUploader(store)))
	return sessions, store, router
}

func multipartRequest(t *testing.T, url, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16))))
	return buf.Bytes()
}

func TestUploadHandler_Upload(t *testing.T) {
	t.Run("Avatar", func(t *testing.T) {
		sessions, store, router := setupUploadTestRouter()
		token, identity := sessions.login(model.RoleParticipant)

		req := multipartRequest(t, "/api/v1/uploads/user-avatars", "me.png", testPNG(t), map[string]string{"folder": "someone-else"})
		w := serve(router, withToken(req, token))

		require.Equal(t, http.StatusCreated, w.Code)
		res := decodeBody[storage.UploadResult](t, w)
		assert.True(t, strings.HasPrefix(res.Path, identity.Permissions.UserID.String()+"/"))
		assert.Equal(t, "http://files.local/user-avatars/"+res.Path, res.URL)
		assert.Len(t, store.Keys(), 1)
	})

	t.Run("Failed - ParticipantEventImage", func(t *testing.T) {
		sessions, store, router := setupUploadTestRouter()
		token, _ := sessions.login(model.RoleParticipant)

		w := serve(router, withToken(multipartRequest(t, "/api/v1/uploads/event-images", "cover.png", testPNG(t), nil), token))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, store.Keys())
	})

	t.Run("Failed - NotAnImage", func(t *testing.T) {
		sessions, store, router := setupUploadTestRouter()
		token, _ := sessions.login(model.RoleOrganizer)

		w := serve(router, withToken(multipartRequest(t, "/api/v1/uploads/event-images", "cover.png", []byte("just text"), nil), token))

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.Empty(t, store.Keys())
	})

	t.Run("Failed - TooLarge", func(t *testing.T) {
		sessions, store, router := setupUploadTestRouter()
		token, _ := sessions.login(model.RoleOrganizer)

		w := serve(router, withToken(multipartRequest(t, "/api/v1/uploads/resource-files", "big.bin",
			make([]byte, storage.MaxUploadSize+1), nil), token))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Empty(t, store.Keys())
	})

	t.Run("Failed - Anonymous", func(t *testing.T) {
		_, _, router := setupUploadTestRouter()

		w := serve(router, multipartRequest(t, "/api/v1/uploads/user-avatars", "me.png", testPNG(t), nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - MissingFile", func(t *testing.T) {
		sessions, _, router := setupUploadTestRouter()
		token, _ := sessions.login(model.RoleOrganizer)

		w := serve(router, withToken(createJSONHTTPRequest("POST", "/api/v1/uploads/resource-files", nil), token))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUploadHandler_Delete(t *testing.T) {
	sessions, store, router := setupUploadTestRouter()
	owner, _ := sessions.login(model.RoleParticipant)
	other, _ := sessions.login(model.RoleParticipant)

	w := serve(router, withToken(multipartRequest(t, "/api/v1/uploads/user-avatars", "me.png", testPNG(t), nil), owner))
	require.Equal(t, http.StatusCreated, w.Code)
	path := decodeBody[storage.UploadResult](t, w).Path

	w = serve(router, withToken(createJSONHTTPRequest("DELETE", "/api/v1/uploads/user-avatars/"+path, nil), other))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Len(t, store.Keys(), 1)

	w = serve(router, withToken(createJSONHTTPRequest("DELETE", "/api/v1/uploads/user-avatars/"+path, nil), owner))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.Keys())
}
