package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rocketboost-admin/models"
	"rocketboost-admin/repository"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestOptimizeImage(t *testing.T) {
	src := testPNG(t, 1000, 500)

	thumb, err := OptimizeImage(src, SizeThumb)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 150), decodeJPEG(t, thumb).Bounds())

	medium, err := OptimizeImage(src, SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 400), decodeJPEG(t, medium).Bounds())

	small, err := OptimizeImage(testPNG(t, 120, 200), SizeThumb)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 200), decodeJPEG(t, small).Bounds())

	_, err = OptimizeImage([]byte("not an image"), SizeThumb)
	assert.Error(t, err)
}

func TestSlipService_HTTP(t *testing.T) {
	src := testPNG(t, 600, 900)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(src)
	}))
	defer srv.Close()

	cache, err := NewCache(8 << 20)
	require.NoError(t, err)
	defer cache.Close()

	repo := &fakeTransactionRepo{txs: map[int64]*models.Transaction{
		1: {ID: 1, Type: models.TransactionTypeTopUp, SlipURL: strPtr(srv.URL + "/slip.png")},
	}}
	s := NewSlipService(repo, nil, nil, cache)

	data, err := s.Slip(context.Background(), 1, SizeThumb)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 300), decodeJPEG(t, data).Bounds())
	cache.Wait()

	_, err = s.Slip(context.Background(), 1, SizeThumb)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestSlipService_Drive(t *testing.T) {
	drive := &fakeDrive{files: map[string][]byte{"1AbCdEfGhIjKlMnOp": testPNG(t, 50, 50)}}
	repo := &fakeTransactionRepo{txs: map[int64]*models.Transaction{
		2: {ID: 2, SlipURL: strPtr("https://drive.google.com/file/d/1AbCdEfGhIjKlMnOp/view?usp=sharing")},
	}}
	s := NewSlipService(repo, drive, nil, nil)

	data, err := s.Slip(context.Background(), 2, SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 50), decodeJPEG(t, data).Bounds())
	assert.Equal(t, 1, drive.calls)
}

func TestSlipService_Errors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	repo := &fakeTransactionRepo{txs: map[int64]*models.Transaction{
		3: {ID: 3},
		4: {ID: 4, SlipURL: strPtr(srv.URL)},
	}}
	s := NewSlipService(repo, nil, nil, nil)

	_, err := s.Slip(context.Background(), 3, SizeThumb)
	assert.ErrorIs(t, err, ErrSlipNotAvailable)

	_, err = s.Slip(context.Background(), 4, SizeThumb)
	assert.ErrorContains(t, err, "status 404")

	_, err = s.Slip(context.Background(), 99, SizeThumb)
	assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
}
