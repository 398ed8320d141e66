package validate

import (
	stderrors "errors"
	"testing"

	"shop-notification-srv/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Title string `json:"title"`
}

type sample struct {
	UserID       string `json:"userId" validate:"required"`
	Notification *inner `json:"notification" validate:"required"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(sample{UserID: "u1", Notification: &inner{}}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := Struct(sample{})
		require.Error(t, err)

		var ve *errors.ValidationError
		require.True(t, stderrors.As(err, &ve))
		require.Len(t, ve.Fields, 2)
		assert.Equal(t, "userId", ve.Fields[0].Field)
		assert.Equal(t, "required", ve.Fields[0].Rule)
		assert.Equal(t, "notification", ve.Fields[1].Field)
	})
}
