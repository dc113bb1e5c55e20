package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pceshop_back_end/internal/models"
)

func TestBuildFacetsWithoutBrand(t *testing.T) {
	products := []models.Product{
		{Specification: specOf(t, `{"ram": "32GB"}`)},
		{Specification: specOf(t, `{"ram": "16GB"}`)},
	}

	facets := BuildFacets(products)
	require.Len(t, facets, 1)
	assert.Equal(t, Facet{ID: "ram", Label: "Ram", Options: []string{"16GB", "32GB"}}, facets[0])
}

func TestBuildFacetsBrandFirstAndKeyOrder(t *testing.T) {
	products := []models.Product{
		{Brand: "MSI", Specification: specOf(t, `{"socket": "AM5", "cores": 8}`)},
		{Brand: "", Specification: specOf(t, `{"cpu_family": "Ryzen 7", "cores": "8"}`)},
		{Brand: "ASUS", Specification: specOf(t, `{"socket": "AM5", "smt": true}`)},
	}

	facets := BuildFacets(products)
	require.Len(t, facets, 5)

	assert.Equal(t, Facet{ID: "brand", Label: "Brand", Options: []string{"ASUS", "MSI"}}, facets[0])

	ids := make([]string, 0, len(facets))
	for _, f := range facets {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"brand", "socket", "cores", "cpu_family", "smt"}, ids)

	assert.Equal(t, []string{"AM5"}, facets[1].Options)
	assert.Equal(t, []string{"8"}, facets[2].Options, "8 and \"8\" collapse once stringified")
	assert.Equal(t, "Cpu Family", facets[3].Label)
	assert.Equal(t, []string{"true"}, facets[4].Options)
}

func TestBuildFacetsCanonicalNumbers(t *testing.T) {
	products := []models.Product{
		{Specification: specOf(t, `{"clock": 1.50, "tdp": 1e2}`)},
		{Specification: specOf(t, `{"clock": 1.5, "tdp": 100.0}`)},
	}

	facets := BuildFacets(products)
	require.Len(t, facets, 2)
	assert.Equal(t, []string{"1.5"}, facets[0].Options)
	assert.Equal(t, []string{"100.0"}, facets[1].Options)

	got := Apply(products, ParseConstraints("clock:1.5"))
	assert.Len(t, got, 2)
}

func TestBuildFacetsEmpty(t *testing.T) {
	facets := BuildFacets(nil)
	assert.NotNil(t, facets)
	assert.Empty(t, facets)
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"cpu_family": "Cpu Family",
		"ram":        "Ram",
		"RAM_type":   "Ram Type",
		"gpu_model":  "Gpu Model",
		"ddr5x":      "Ddr5X",
	}
	for in, want := range cases {
		assert.Equal(t, want, Label(in), in)
	}
}
