package apiserver

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saxvideo/videogenerator"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	r, err := videogenerator.NewRenderer(videogenerator.DefaultRenderSettings())
	require.NoError(t, err)
	return New(":0", []string{"http://localhost:3000"}, r).Handler()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestFingeringEndpoint(t *testing.T) {
	w := get(newHandler(t), "/fingering/60")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	var resp FingeringResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, FingeringResponse{Pitch: 60, Name: "A4", Keys: []string{"L1", "L2"}}, resp)
}

func TestFingeringEndpointOpenNote(t *testing.T) {
	w := get(newHandler(t), "/fingering/64")
	require.Equal(t, http.StatusOK, w.Code)

	var resp FingeringResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "C#5", resp.Name)
	assert.Empty(t, resp.Keys)
}

func TestFingeringEndpointErrors(t *testing.T) {
	h := newHandler(t)

	w := get(h, "/fingering/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(h, "/fingering/81")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Note 81")

	w = get(h, "/nothing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestKeysEndpoint(t *testing.T) {
	w := get(newHandler(t), "/keys")
	require.Equal(t, http.StatusOK, w.Code)

	var keys []KeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &keys))
	require.Len(t, keys, 22)
	assert.Equal(t, KeyResponse{Name: "Oct", Label: "Oct", X: 60, Y: 20, Radius: 5, LaneY: 60}, keys[0])
	assert.Equal(t, "Low_C", keys[21].Name)
}

func TestKeyUsageEndpoint(t *testing.T) {
	h := newHandler(t)

	w := get(h, "/keys/Low_Eb")
	require.Equal(t, http.StatusOK, w.Code)
	var usage KeyUsageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &usage))
	assert.Equal(t, "Low_Eb", usage.Name)
	assert.Equal(t, []int{54, 66}, usage.Pitches)

	w = get(h, "/keys/Thumb")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unknown key Thumb")
}

func TestChartEndpoint(t *testing.T) {
	w := get(newHandler(t), "/chart/78.png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 900, img.Bounds().Dy())

	// the octave key is pressed for 78 and drawn solid white at (160, 60)
	r, g, b, _ := img.At(160, 60).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/fingering/60", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	newHandler(t).ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}
