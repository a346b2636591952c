package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngDataURL gera um PNG sólido w×h como data-URL.
func pngDataURL(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// decodeResult decodifica o data-URL JPEG devolvido pelo normalizador.
func decodeResult(t *testing.T, dataURL string) image.Image {
	t.Helper()
	require.True(t, strings.HasPrefix(dataURL, "data:image/jpeg;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestNormalizeDataURL_PNGViraJPEG(t *testing.T) {
	n := NewNormalizer()

	out, err := n.NormalizeDataURL(pngDataURL(t, 10, 10, color.Black), 512)
	require.NoError(t, err)

	img := decodeResult(t, out)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestNormalizeDataURL_ReduzAoLimite(t *testing.T) {
	n := NewNormalizer()

	out, err := n.NormalizeDataURL(pngDataURL(t, 800, 400, color.Black), 512)
	require.NoError(t, err)

	img := decodeResult(t, out)
	assert.Equal(t, 512, img.Bounds().Dx(), "a maior dimensão deve bater no limite")
	assert.Equal(t, 256, img.Bounds().Dy(), "a proporção deve ser preservada")
}

func TestNormalizeDataURL_TransparenciaSobreFundoBranco(t *testing.T) {
	n := NewNormalizer()

	// PNG totalmente transparente: após achatar, o JPEG deve ser branco.
	out, err := n.NormalizeDataURL(pngDataURL(t, 4, 4, color.RGBA{}), 512)
	require.NoError(t, err)

	img := decodeResult(t, out)
	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Greater(t, r, uint32(60000))
	assert.Greater(t, g, uint32(60000))
	assert.Greater(t, b, uint32(60000))
}

func TestNormalizeDataURL_AceitaBase64SemPrefixo(t *testing.T) {
	n := NewNormalizer()
	full := pngDataURL(t, 4, 4, color.Black)
	payload := strings.TrimPrefix(full, "data:image/png;base64,")

	out, err := n.NormalizeDataURL(payload, 512)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))
}

func TestNormalizeDataURL_FormatoNaoSuportado(t *testing.T) {
	n := NewNormalizer()
	gif := "data:image/gif;base64," + base64.StdEncoding.EncodeToString([]byte("GIF89a\x01\x00\x01\x00"))

	_, err := n.NormalizeDataURL(gif, 512)
	assert.Error(t, err)
}

func TestNormalizeDataURL_EntradaIlegivel(t *testing.T) {
	n := NewNormalizer()

	_, err := n.NormalizeDataURL("data:image/png,sem-base64", 512)
	assert.Error(t, err, "data-URL sem ;base64 deve ser rejeitado")

	_, err = n.NormalizeDataURL("%%%não-é-base64%%%", 512)
	assert.Error(t, err)
}
