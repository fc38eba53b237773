package upload

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/muhafiz/muhafiz-api/app/models"
	"github.com/muhafiz/muhafiz-api/internal/pkg/storage"
)

// ErrRejected marks problems with the request itself (too many files,
// unexpected fields). Handlers answer those with 400.
var ErrRejected = errors.New("upload rejected")

const maxExtLen = 8

// Field describes an accepted file field. Max <= 0 means unlimited.
type Field struct {
	Name string
	Max  int
}

// FieldFile is one uploaded part with the field it arrived in.
type FieldFile struct {
	Field  string
	Header *multipart.FileHeader
}

// Classify maps a declared content type to a media kind. Anything that is
// neither image nor video is treated as audio.
func Classify(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return models.MEDIA_IMAGE
	case strings.HasPrefix(ct, "video/"):
		return models.MEDIA_VIDEO
	default:
		return models.MEDIA_AUDIO
	}
}

// Collect picks the files of the accepted fields out of form, enforcing the
// per-field limits. Files in any other field reject the request.
func Collect(form *multipart.Form, fields ...Field) ([]FieldFile, error) {
	if form == nil {
		return nil, nil
	}

	accepted := make(map[string]bool, len(fields))
	for _, f := range fields {
		accepted[f.Name] = true
	}
	for name, headers := range form.File {
		if !accepted[name] && len(headers) > 0 {
			return nil, fmt.Errorf("%w: unexpected file field %q", ErrRejected, name)
		}
	}

	var out []FieldFile
	for _, f := range fields {
		headers := form.File[f.Name]
		if f.Max > 0 && len(headers) > f.Max {
			return nil, fmt.Errorf("%w: too many files for field %q (max %d)", ErrRejected, f.Name, f.Max)
		}
		for _, h := range headers {
			out = append(out, FieldFile{Field: f.Name, Header: h})
		}
	}
	return out, nil
}

// StoredFile is a file that was written to the store.
type StoredFile struct {
	Field       string
	Name        string
	URL         string
	ContentType string
	Type        string
	Size        int64
}

// Batch holds the files written by one request so they can be dropped
// together when the request fails later on.
type Batch struct {
	store storage.Store
	files []StoredFile
}

func (b *Batch) Files() []StoredFile {
	return b.files
}

// URLs returns the URLs of the files uploaded under field, never nil.
func (b *Batch) URLs(field string) []string {
	urls := []string{}
	for _, f := range b.files {
		if f.Field == field {
			urls = append(urls, f.URL)
		}
	}
	return urls
}

// Media returns every stored file as a typed media item, never nil.
func (b *Batch) Media() []models.MediaItem {
	items := make([]models.MediaItem, 0, len(b.files))
	for _, f := range b.files {
		items = append(items, models.MediaItem{URL: f.URL, Type: f.Type})
	}
	return items
}

// Discard deletes every file of the batch. Failures are logged; the
// remaining files are still attempted.
func (b *Batch) Discard(ctx context.Context) {
	for _, f := range b.files {
		if err := b.store.Delete(ctx, f.Name); err != nil {
			log.Errorf("[Upload] Failed to discard %s: %v", f.Name, err)
		}
	}
	b.files = nil
}

// Ingestor writes uploaded files to a store.
type Ingestor struct {
	store storage.Store
}

func NewIngestor(store storage.Store) *Ingestor {
	return &Ingestor{store: store}
}

// Stage writes all files or none: when one write fails, the files already
// written are deleted before the error is returned.
func (in *Ingestor) Stage(ctx context.Context, files []FieldFile) (*Batch, error) {
	batch := &Batch{store: in.store}
	for _, f := range files {
		stored, err := in.save(ctx, f)
		if err != nil {
			batch.Discard(ctx)
			return nil, err
		}
		batch.files = append(batch.files, *stored)
	}
	if len(batch.files) > 0 {
		log.Infof("[Upload] Stored %d file(s) via %s", len(batch.files), in.store.Backend())
	}
	return batch, nil
}

func (in *Ingestor) save(ctx context.Context, f FieldFile) (*StoredFile, error) {
	src, err := f.Header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %q: %w", f.Header.Filename, err)
	}
	defer src.Close()

	ext := Extension(f.Header.Filename)
	contentType := ContentType(f.Header, ext)
	name := uuid.NewString() + ext

	op, err := in.store.Save(ctx, name, src, f.Header.Size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload %q: %w", f.Header.Filename, err)
	}

	return &StoredFile{
		Field:       f.Field,
		Name:        op.Name,
		URL:         op.URL,
		ContentType: contentType,
		Type:        Classify(contentType),
		Size:        op.Size,
	}, nil
}

// Extension returns the lower-cased extension of filename, or "" when it is
// too long or contains anything but letters and digits.
func Extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// ContentType prefers the type declared for the part and falls back to the
// extension.
func ContentType(h *multipart.FileHeader, ext string) string {
	if ct := strings.TrimSpace(h.Header.Get("Content-Type")); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
