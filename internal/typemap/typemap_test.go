package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name     string
		typeName string
		expected Kind
		matched  bool
	}{
		{
			name:     "Computer",
			typeName: "Компьютер",
			expected: KindComputer,
			matched:  true,
		},
		{
			name:     "Monoblok wins over computer keyword",
			typeName: "Моноблок (компьютер)",
			expected: KindMonoblok,
			matched:  true,
		},
		{
			name:     "Case insensitive",
			typeName: "ПРОЕКТОР Epson",
			expected: KindProjector,
			matched:  true,
		},
		{
			name:     "MFU maps to printer family",
			typeName: "МФУ лазерное",
			expected: KindPrinter,
			matched:  true,
		},
		{
			name:     "Marshrutizator synonym",
			typeName: "Маршрутизатор TP-Link",
			expected: KindRouter,
			matched:  true,
		},
		{
			name:     "Whiteboard",
			typeName: "Электронная доска",
			expected: KindWhiteboard,
			matched:  true,
		},
		{
			name:     "Monitor",
			typeName: "Монитор 24\"",
			expected: KindMonitor,
			matched:  true,
		},
		{
			name:     "Notebook",
			typeName: "ноутбук Lenovo",
			expected: KindNotebook,
			matched:  true,
		},
		{
			name:     "No keyword",
			typeName: "Стол письменный",
			matched:  false,
		},
		{
			name:     "Empty name",
			typeName: "",
			matched:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info, ok := Resolve(tc.typeName)
			if !tc.matched {
				assert.False(t, ok)
				assert.Nil(t, info)
				return
			}
			require.True(t, ok)
			require.NotNil(t, info)
			assert.Equal(t, tc.expected, info.Kind)
		})
	}
}

func TestResolveFieldNames(t *testing.T) {
	info, ok := Resolve("Компьютер")
	require.True(t, ok)
	assert.Equal(t, "computer_specification_id", info.FieldName)
	assert.Equal(t, KindComputer, info.Kind)
	assert.Equal(t, "computer-specifications", info.Resource)
}

func TestByKindCoversAllKinds(t *testing.T) {
	for _, kind := range Kinds {
		info, ok := ByKind(kind)
		require.True(t, ok, "нет записи для семейства %s", kind)
		assert.Equal(t, kind, info.Kind)
	}
}
