package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: 1
name: warung-pack
widgets:
  - definition:
      code: warung.widget.stock_alert
      name: Stock Alerts
      name_localized:
        id: Peringatan Stok
      description: Lists products whose stock dropped below the threshold.
      category: inventory
      schema:
        type: object
        properties:
          threshold:
            type: integer
    provider:
      name: Stock Alert Provider
      summary: Reads stock levels from the POS items endpoint.
      entry: github.com/example/warung.NewStockAlertProvider
      package: github.com/example/warung
      capabilities: ["html","json"]
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 1)

	widget := doc.Widgets[0]
	assert.Equal(t, "warung.widget.stock_alert", widget.Definition.Code)
	assert.Equal(t, "Stock Alerts", widget.Definition.Name)
	assert.Equal(t, "Peringatan Stok", widget.Definition.NameLocalized["id"])
	assert.Equal(t, "Stock Alert Provider", widget.Provider.Name)
	assert.Equal(t, "github.com/example/warung.NewStockAlertProvider", widget.Provider.Entry)
	assert.Equal(t, "inventory", widget.Definition.Category)
}

func TestDecodeManifestRejectsUnknownFields(t *testing.T) {
	const payload = `
version: 1
widgets:
  - definition:
      code: warung.widget.stock_alert
      name: Stock Alerts
    binary: /usr/local/bin/evil
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
}

func TestDecodeManifestRejectsEmptyDocument(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestManifestDuplicateCodes(t *testing.T) {
	const payload = `
widgets:
  - definition:
      code: dup.widget
      name: First
  - definition:
      code: dup.widget
      name: Second
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates widget code")
}

func TestManifestValidateRequiresNames(t *testing.T) {
	doc := &WidgetManifestDocument{
		Version: manifestVersionV1,
		Widgets: []ManifestWidget{
			{Definition: WidgetDefinition{Code: "warung.widget.nameless"}},
		},
	}
	require.Error(t, doc.Validate())
}

func TestRegistryLoadManifestDocument(t *testing.T) {
	doc := &WidgetManifestDocument{
		Version: manifestVersionV1,
		Widgets: []ManifestWidget{
			{
				Definition: WidgetDefinition{
					Code: "warung.widget.stock_alert",
					Name: "Stock Alerts",
				},
				Provider: ManifestProvider{
					Name:    "Stock Alert Provider",
					Summary: "Reads stock levels from the POS items endpoint",
					Entry:   "github.com/example/warung.NewStockAlertProvider",
				},
			},
		},
	}
	reg := NewRegistry()

	err := reg.LoadManifestDocument(doc)
	require.NoError(t, err)

	def, ok := reg.Definition("warung.widget.stock_alert")
	require.True(t, ok)
	assert.Equal(t, "Stock Alerts", def.Name)

	meta, ok := reg.ProviderMetadata("warung.widget.stock_alert")
	require.True(t, ok)
	assert.Equal(t, "Stock Alert Provider", meta.Name)
	assert.Equal(t, "github.com/example/warung.NewStockAlertProvider", meta.Entry)
}

func TestRegistryLoadManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	const payload = `
version: 1
widgets:
  - definition:
      code: warung.widget.stock_alert
      name: Stock Alerts
`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	reg := NewRegistry()
	doc, err := reg.LoadManifestFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	_, ok := reg.Definition("warung.widget.stock_alert")
	require.True(t, ok)
}
