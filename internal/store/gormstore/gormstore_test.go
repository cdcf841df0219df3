package gormstore

import (
	"errors"
	"testing"

	"github.com/lovelyapp/backend/internal/store"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	require.NoError(t, TranslateError(nil))
	require.ErrorIs(t, TranslateError(gorm.ErrRecordNotFound), store.ErrNotFound)
	require.ErrorIs(t, TranslateError(gorm.ErrDuplicatedKey), store.ErrDuplicate)

	other := errors.New("connection reset")
	require.Equal(t, other, TranslateError(other))
}
