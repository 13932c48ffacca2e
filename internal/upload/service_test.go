package upload

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSave_AcceptsAllowedExtensions(t *testing.T) {
	svc := NewService()

	for _, name := range []string{"poster.png", "poster.JPG", "flyer.webp", "schedule.pdf"} {
		var savedTo string
		stored, err := svc.Save(&multipart.FileHeader{Filename: name},
			func(f *multipart.FileHeader, dst string) error {
				savedTo = dst
				return nil
			})

		assert.NoError(t, err, name)
		assert.NotEmpty(t, stored)
		assert.Contains(t, savedTo, stored)
		// Stored name is randomized, only the extension survives
		assert.True(t, strings.HasSuffix(stored, strings.ToLower(name[strings.LastIndex(name, "."):])))
		assert.NotContains(t, stored, "poster")
	}
}

func TestSave_RejectsUnsupportedTypes(t *testing.T) {
	svc := NewService()

	for _, name := range []string{"malware.exe", "script.sh", "noextension", "archive.zip"} {
		_, err := svc.Save(&multipart.FileHeader{Filename: name},
			func(f *multipart.FileHeader, dst string) error { return nil })

		assert.ErrorIs(t, err, ErrUnsupportedType, name)
	}
}

func TestDelete_RejectsPathEscapes(t *testing.T) {
	svc := NewService()

	for _, stored := range []string{"../secrets.env", "a/../../etc/passwd", "dir/file.png", `dir\file.png`} {
		assert.Error(t, svc.Delete(stored), stored)
	}
}

func TestDelete_EmptyPathIsNoOp(t *testing.T) {
	svc := NewService()
	assert.NoError(t, svc.Delete(""))
}

func TestPublicURL(t *testing.T) {
	svc := NewService()
	assert.Equal(t, "", svc.PublicURL(""))
	assert.Contains(t, svc.PublicURL("abc.png"), "/uploads/abc.png")
}
