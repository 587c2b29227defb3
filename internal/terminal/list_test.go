package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	message := "Users in admin"
	data := []interface{}{
		"michael",
		1,
		1.5,
		[]string{"a", "b"},
		nil,
	}

	t.Run("newList should parse each item", func(t *testing.T) {
		assert.Equal(t, list{
			"Users in admin",
			[]string{"michael", "1", "1.5", "[a b]", ""},
		}, newList(message, data))
	})

	t.Run("list.Message should indent each item", func(t *testing.T) {
		out, err := newList(message, data[:2]).Message()
		assert.Nil(t, err)
		assert.Equal(t, "Users in admin\n  michael\n  1", out)
	})

	t.Run("list.Payload should return the message and items", func(t *testing.T) {
		keys, payload, err := newList(message, data[:1]).Payload()
		assert.Nil(t, err)
		assert.Equal(t, []string{"message", "data"}, keys)
		assert.Equal(t, map[string]interface{}{
			"message": message,
			"data":    []string{"michael"},
		}, payload)
	})
}
