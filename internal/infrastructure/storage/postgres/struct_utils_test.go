package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"logiprofit/internal/core/entity"
	"logiprofit/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Plate    string `db:"plate" json:"plate"`
	Internal string `db:"-" json:"-"`
	NoTag    string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "deletion_mark", "version", "code", "name", "plate"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}

	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected))
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		Catalog: entity.Catalog{
			BaseCatalog: entity.BaseCatalog{
				BaseEntity: entity.BaseEntity{
					ID:           id.New(),
					DeletionMark: true,
					Version:      5,
				},
			},
			Code: "VEH-00001",
			Name: "Kenworth T680",
		},
		Plate:    "ABC-1234",
		Internal: "hidden",
		NoTag:    "ignored",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "VEH-00001", m["code"])
	assert.Equal(t, "Kenworth T680", m["name"])
	assert.Equal(t, "ABC-1234", m["plate"])

	_, hasInternal := m["-"]
	assert.False(t, hasInternal)
	assert.Len(t, m, 6)
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &mockCatalog{Plate: "XYZ-9876"}

	m := StructToMap(cat)
	assert.Equal(t, "XYZ-9876", m["plate"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("not a struct"))
}
