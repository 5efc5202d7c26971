package media

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(w, h int) *bytes.Buffer {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return &buf
}

func TestToWebP_DownscalesWideImages(t *testing.T) {
	out, err := ToWebP(pngOf(2560, 1440), MaxCoverWidth)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
}

func TestToWebP_KeepsSmallImages(t *testing.T) {
	out, err := ToWebP(pngOf(640, 480), MaxCoverWidth)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
}

// hugePNG is a valid PNG header claiming w x h pixels, with no image data.
func hugePNG(w, h uint32) []byte {
	b := pngOf(1, 1).Bytes()
	// IHDR data follows the 8-byte signature and the chunk length and type.
	binary.BigEndian.PutUint32(b[16:20], w)
	binary.BigEndian.PutUint32(b[20:24], h)
	binary.BigEndian.PutUint32(b[29:33], crc32.ChecksumIEEE(b[12:29]))
	return b
}

func TestToWebP_RejectsHugeDimensions(t *testing.T) {
	_, err := ToWebP(bytes.NewReader(hugePNG(50_000, 50_000)), MaxCoverWidth)
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.NotErrorIs(t, err, ErrUnsupportedImage)
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("definitely not an image"), MaxCoverWidth)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

type fakePutter struct {
	in *s3.PutObjectInput
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	return &s3.PutObjectOutput{}, nil
}

func TestS3_Put(t *testing.T) {
	api := &fakePutter{}
	up := &S3{api: api, bucket: "covers", publicBase: "https://cdn.example.com"}

	url, err := up.Put(context.Background(), "stores/s1/cover.webp", []byte("x"), "image/webp")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/stores/s1/cover.webp", url)
	assert.Equal(t, "covers", aws.ToString(api.in.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(api.in.ContentType))
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Put(context.Background(), "k", nil, "image/webp")
	assert.ErrorIs(t, err, ErrStorageDisabled)
}
