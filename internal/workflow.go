package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxImageBytes is the largest screenshot the backend accepts (5 MiB)
const MaxImageBytes = 5 * 1024 * 1024

// ImageAuditor is the backend capability used by ImageAuditController
type ImageAuditor interface {
	SubmitImageAudit(ctx context.Context, img ImageUpload) (*Payload, error)
}

// TextAuditor is the backend capability used by TextAuditController
type TextAuditor interface {
	SubmitTextAudit(ctx context.Context, text string) (*Payload, error)
}

// ValidateImage checks the declared media type and size of an upload
func ValidateImage(mimeType string, size int64) error {
	if !strings.HasPrefix(mimeType, "image/") {
		return &ValidationError{
			Field: "type",
			Key:   KeyImageErrFormat,
			Err:   fmt.Errorf("media type %q is not an image", mimeType),
		}
	}
	if size > MaxImageBytes {
		return &ValidationError{
			Field: "size",
			Key:   KeyImageErrSize,
			Err:   fmt.Errorf("%d bytes exceeds the %d byte limit", size, MaxImageBytes),
		}
	}
	return nil
}

// ImageAuditController drives one image submission form
type ImageAuditController struct {
	backend ImageAuditor
	tr      Translator
	store   *Store[*Payload]
}

// NewImageAuditController creates a controller with its own idle store
func NewImageAuditController(backend ImageAuditor, tr Translator) *ImageAuditController {
	return &ImageAuditController{
		backend: backend,
		tr:      tr,
		store:   NewStore[*Payload](),
	}
}

// Store exposes the controller's state for rendering
func (c *ImageAuditController) Store() *Store[*Payload] {
	return c.store
}

// Submit validates the upload locally and, when valid, sends it. A
// validation failure moves to Errored without touching the network.
func (c *ImageAuditController) Submit(ctx context.Context, img ImageUpload) error {
	if c.store.State().Kind == StateLoading {
		return ErrSubmissionInFlight
	}

	if err := ValidateImage(img.MimeType, img.Size); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.store.Fail(c.tr.T(verr.Key))
		}
		LogDebug("image rejected before upload: %v", err)
		return nil
	}

	if !c.store.TryBegin() {
		return ErrSubmissionInFlight
	}
	payload, err := c.backend.SubmitImageAudit(ctx, img)
	if err != nil {
		LogDebug("image audit failed: %v", err)
		c.store.Fail(c.tr.T(KeyErrorConnect))
		return nil
	}
	c.store.Succeed(payload)
	return nil
}

// Reset returns the form to Idle
func (c *ImageAuditController) Reset() {
	c.store.Reset()
}

// TextAuditController drives one text submission form
type TextAuditController struct {
	backend TextAuditor
	tr      Translator
	store   *Store[*Payload]
}

// NewTextAuditController creates a controller with its own idle store
func NewTextAuditController(backend TextAuditor, tr Translator) *TextAuditController {
	return &TextAuditController{
		backend: backend,
		tr:      tr,
		store:   NewStore[*Payload](),
	}
}

// Store exposes the controller's state for rendering
func (c *TextAuditController) Store() *Store[*Payload] {
	return c.store
}

// Submit sends text for analysis. Blank text is a no-op and reports false;
// the state is left as it was.
func (c *TextAuditController) Submit(ctx context.Context, text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}
	if !c.store.TryBegin() {
		return false, ErrSubmissionInFlight
	}

	payload, err := c.backend.SubmitTextAudit(ctx, text)
	if err != nil {
		LogDebug("text audit failed: %v", err)
		c.store.Fail(c.tr.T(KeyErrorConnect))
		return true, nil
	}
	c.store.Succeed(payload)
	return true, nil
}

// Reset returns the form to Idle
func (c *TextAuditController) Reset() {
	c.store.Reset()
}
