package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/giftwell/giftwell-server/internal/errors"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Title string `json:"title" validate:"required,max=200"`
	URL   string `json:"url,omitempty" validate:"omitempty,url"`
}

func TestValidatePasses(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{
		Email: "alice@example.com",
		Title: "Birthday",
		URL:   "https://example.com/item",
	})
	assert.NoError(t, err)
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{Email: "not-an-email", URL: "::nope"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	// Field names come from JSON tags, options stripped.
	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok, "details should be a field error map")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "url")
	assert.Equal(t, "is required", fields["title"])
}
