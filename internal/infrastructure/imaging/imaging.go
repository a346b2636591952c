// Package imaging normaliza imagens recebidas como data-URL (assinaturas e
// logomarca): valida o formato pelos bytes, reduz ao limite de dimensão e
// reencoda sempre como JPEG sobre fundo branco.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"golang.org/x/image/draw"

	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
)

// Qualidade de compressão do JPEG de saída.
const jpegQuality = 85

// Formatos de entrada aceitos (detectados pelos bytes, não pelo cabeçalho
// declarado no data-URL).
var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var _ usecase.ImageNormalizer = (*Normalizer)(nil)

// Normalizer implementa usecase.ImageNormalizer.
type Normalizer struct{}

// NewNormalizer constrói o normalizador.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// NormalizeDataURL decodifica um data-URL de imagem, valida o formato real,
// reduz para caber em maxDim e devolve um data-URL JPEG.
func (n *Normalizer) NormalizeDataURL(dataURL string, maxDim int) (string, error) {
	data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return "", fmt.Errorf("formato de imagem não suportado: %s (aceitos: JPEG e PNG)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decodificar imagem: %w", err)
	}

	img = downscale(img, maxDim)

	// Achata transparência sobre fundo branco: assinaturas chegam como PNG
	// com alfa e o JPEG não tem canal de transparência.
	flat := image.NewRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("codificar JPEG: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// decodeDataURL extrai os bytes de um data-URL base64; aceita também o
// payload base64 puro, sem prefixo.
func decodeDataURL(s string) ([]byte, error) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, fmt.Errorf("data-URL sem payload")
		}
		if !strings.Contains(s[:idx], ";base64") {
			return nil, fmt.Errorf("data-URL deve ser base64")
		}
		payload = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decodificar base64: %w", err)
	}
	return data, nil
}

// downscale reduz a imagem para que nenhuma dimensão exceda maxDim,
// preservando a proporção. Interpolação Catmull-Rom.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
