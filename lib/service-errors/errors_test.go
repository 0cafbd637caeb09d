package serviceerrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := New(NotFound, "заявка не найдена")
	require.Equal(t, NotFound, KindOf(err))
	require.EqualError(t, err, "заявка не найдена")

	t.Run("через обертку", func(t *testing.T) {
		wrapped := errors.Wrap(err, "ошибка операции")
		require.Equal(t, NotFound, KindOf(wrapped))
		require.True(t, Is(wrapped, NotFound))
		require.False(t, Is(wrapped, InvalidState))
	})

	t.Run("обычная ошибка", func(t *testing.T) {
		require.Equal(t, Kind(""), KindOf(errors.New("что-то пошло не так")))
	})
}

func TestErrorf(t *testing.T) {
	err := Errorf(InvalidState, "заявку в статусе \"%v\" нельзя отменить", "Завершена")
	require.Equal(t, InvalidState, KindOf(err))
	require.EqualError(t, err, "заявку в статусе \"Завершена\" нельзя отменить")
}
