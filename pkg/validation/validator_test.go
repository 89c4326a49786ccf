package validation

import (
	"errors"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/pkg/apperrors"
)

type sampleDTO struct {
	Name    string      `json:"name" validate:"required"`
	Count   int         `json:"count" validate:"min=1"`
	RoomID  uint64      `json:"room_id" validate:"gt=0"`
	Comment null.String `json:"comment" validate:"omitempty,min=3"`
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(sampleDTO{})
	require.Error(t, err)

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))

	// Имена полей — json-теги, сообщения — человекочитаемые.
	assert.Equal(t, "обязательное поле", vErr.Fields["name"])
	assert.Equal(t, "минимальное значение: 1", vErr.Fields["count"])
	assert.Contains(t, vErr.Fields["room_id"], "больше 0")
}

func TestValidatePassesValidPayload(t *testing.T) {
	v := New()

	err := v.Validate(sampleDTO{Name: "ПК-101", Count: 2, RoomID: 7})
	assert.NoError(t, err)
}

// Null-типы валидируются по внутреннему значению: невалидный null
// пропускается omitempty, заполненный проверяется как обычная строка.
func TestValidateNullTypes(t *testing.T) {
	v := New()

	valid := sampleDTO{Name: "ПК", Count: 1, RoomID: 1}
	assert.NoError(t, v.Validate(valid))

	valid.Comment = null.StringFrom("ок")
	err := v.Validate(valid)
	require.Error(t, err)

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "comment")

	valid.Comment = null.StringFrom("нормальный комментарий")
	assert.NoError(t, v.Validate(valid))
}
