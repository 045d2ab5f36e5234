package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/VitalSpaAR/spa-agenda/internal/config"
)

const (
	maxFotoAncho = 1200
	webpCalidad  = 85
)

// S3API es el subconjunto del cliente S3 que usa FotoStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// FotoStore guarda las fotos de tratamientos: decodifica, reescala,
// convierte a webp y sube a S3. Sin bucket configurado queda deshabilitado.
type FotoStore struct {
	client    S3API
	bucket    string
	publicURL string
}

func NewFotoStore(cfg *config.Config) *FotoStore {
	if cfg.S3Bucket == "" || cfg.S3AccessKey == "" {
		return &FotoStore{}
	}

	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	})

	return &FotoStore{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: cfg.S3PublicURL,
	}
}

// NewFotoStoreWithClient permite inyectar un cliente (tests).
func NewFotoStoreWithClient(client S3API, bucket, publicURL string) *FotoStore {
	return &FotoStore{client: client, bucket: bucket, publicURL: publicURL}
}

func (s *FotoStore) Enabled() bool {
	return s != nil && s.client != nil && s.bucket != ""
}

// SubirFoto procesa y sube la imagen; devuelve la URL pública.
func (s *FotoStore) SubirFoto(ctx context.Context, tratamientoID uint, r io.Reader) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("storage: foto store not configured")
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("storage: decode image: %w", err)
	}

	src = reescalar(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpCalidad}); err != nil {
		return "", fmt.Errorf("storage: encode webp: %w", err)
	}

	key := fmt.Sprintf("tratamientos/%d/foto.webp", tratamientoID)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("storage: s3 put %s: %w", key, err)
	}

	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, key), nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

// reescalar limita el ancho a maxFotoAncho manteniendo proporción.
func reescalar(src image.Image) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxFotoAncho {
		return src
	}

	alto := b.Dy() * maxFotoAncho / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxFotoAncho, alto))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
