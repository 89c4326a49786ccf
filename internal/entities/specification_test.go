package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiskDisplay(t *testing.T) {
	testCases := []struct {
		name     string
		disks    []DiskSpecification
		expected string
	}{
		{
			name:     "Single disk",
			disks:    []DiskSpecification{{DiskType: "SSD", CapacityGB: 512}},
			expected: "512GB SSD",
		},
		{
			name: "Two disks keep array order",
			disks: []DiskSpecification{
				{DiskType: "SSD", CapacityGB: 256},
				{DiskType: "HDD", CapacityGB: 1000},
			},
			expected: "256GB SSD, 1000GB HDD",
		},
		{
			name:     "Empty array",
			disks:    nil,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DiskDisplay(tc.disks))
		})
	}
}

func TestGPUDisplay(t *testing.T) {
	gpus := []GPUSpecification{{Model: "GTX 1650"}, {Model: "Intel UHD"}}
	assert.Equal(t, "GTX 1650, Intel UHD", GPUDisplay(gpus))
	assert.Equal(t, "", GPUDisplay(nil))
}

func TestEquipmentStatusValid(t *testing.T) {
	assert.True(t, StatusWorking.Valid())
	assert.True(t, StatusDisposed.Valid())
	assert.False(t, EquipmentStatus("UNKNOWN").Valid())
}
