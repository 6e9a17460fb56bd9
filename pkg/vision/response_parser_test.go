package vision

import (
	"Menu-Builder-Backend/domain"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMenu(t *testing.T) {
	validate := validator.New()

	t.Run("plain json", func(t *testing.T) {
		menu, err := ParseMenu(`{"categories":[{"name":"Appetizers","items":[{"name":"Caesar Salad","price":"12.99"}]}]}`, validate)
		require.NoError(t, err)
		require.Len(t, menu.Categories, 1)
		assert.Equal(t, "Appetizers", menu.Categories[0].Name)
		assert.Equal(t, 12.99, menu.Categories[0].Items[0].Price.Float64())
	})

	t.Run("fenced with prose", func(t *testing.T) {
		text := "Here is the menu:\n```json\n{\"categories\":[{\"name\":\"Drinks\",\"items\":[]}]}\n```\nLet me know {if} you need more."
		menu, err := ParseMenu(text, validate)
		require.NoError(t, err)
		assert.Equal(t, "Drinks", menu.Categories[0].Name)
	})

	t.Run("skips undecodable brace", func(t *testing.T) {
		menu, err := ParseMenu(`{oops} {"categories":[{"name":"Mains","items":[{"name":"Steak","price":30}]}]}`, validate)
		require.NoError(t, err)
		assert.Equal(t, 1, menu.ItemCount())
	})

	failures := map[string]string{
		"refusal":          "Sorry, I can't process this.",
		"wrong shape":      `{"categories":"none"}`,
		"empty categories": `{"categories":[]}`,
		"missing key":      `{"menu":[]}`,
		"blank item name":  `{"categories":[{"name":"Mains","items":[{"name":"   ","price":3}]}]}`,
		"blank category":   `{"categories":[{"name":"","items":[]}]}`,
	}
	for name, text := range failures {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMenu(text, validate)
			var malformed *domain.MalformedResponseError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}
