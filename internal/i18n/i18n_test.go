package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("Should create translations for a bundled language", func(t *testing.T) {
		trans, err := NewTranslations("es")

		require.NoError(t, err)
		assert.Equal(t, "¡Listo!", trans.GetMessage("sync_done", 0, nil))
	})

	t.Run("Should fail with empty language", func(t *testing.T) {
		trans, err := NewTranslations("")

		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("Should fail with an unknown language", func(t *testing.T) {
		_, err := NewTranslations("fr")

		assert.Error(t, err)
	})
}

func TestGetMessage(t *testing.T) {
	trans, err := NewTranslations("en")
	require.NoError(t, err)

	t.Run("Should render template data", func(t *testing.T) {
		msg := trans.GetMessage("sync_org_events", 0, map[string]interface{}{"Org": "acme", "Count": 3})

		assert.Equal(t, "acme : 3 events in period", msg)
	})

	t.Run("Should pick the plural form", func(t *testing.T) {
		one := trans.GetMessage("sync_found", 1, map[string]interface{}{"Count": 1})
		many := trans.GetMessage("sync_found", 2, map[string]interface{}{"Count": 2})

		assert.Equal(t, "1 suggestion found, sending to Range", one)
		assert.Equal(t, "2 suggestions found, sending to Range", many)
	})

	t.Run("Should report missing messages", func(t *testing.T) {
		assert.Equal(t, "Translation missing: nope", trans.GetMessage("nope", 0, nil))
	})

	t.Run("Should switch language", func(t *testing.T) {
		require.NoError(t, trans.SetLanguage("es"))
		t.Cleanup(func() { _ = trans.SetLanguage("en") })

		assert.Equal(t, "Modo de prueba, no se envió nada", trans.GetMessage("sync_dry_run", 0, nil))
	})
}
