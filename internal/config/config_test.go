package config

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSpace_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *Space)
		wantErr string
	}{
		{name: "defaults", modify: func(*Space) {}},
		{name: "missing name", modify: func(s *Space) { s.Name = "" }, wantErr: "missing name"},
		{name: "zero address bits", modify: func(s *Space) { s.AddressBits = 0 }, wantErr: "address bits 0"},
		{name: "too many address bits", modify: func(s *Space) { s.AddressBits = 33 }, wantErr: "address bits 33"},
		{name: "shift too large", modify: func(s *Space) { s.Shift = 4 }, wantErr: "address shift 4"},
		{name: "word addressed", modify: func(s *Space) { s.Shift = -1 }},
		{name: "unknown unmap", modify: func(s *Space) { s.Unmap = "middle" }, wantErr: "unsupported unmap value"},
		{name: "negative limit", modify: func(s *Space) { s.LogLimit = -1 }, wantErr: "negative log limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpace("program", 16)
			tt.modify(&s)

			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSpace_UnmapValue(t *testing.T) {
	s := NewSpace("program", 16)
	assert.Equal(t, ^uint64(0), s.UnmapValue())

	s.Unmap = UnmapLow
	assert.Equal(t, uint64(0), s.UnmapValue())
}

func TestSpace_AddressMask(t *testing.T) {
	assert.Equal(t, uint32(0xffff), NewSpace("program", 16).AddressMask())
	assert.Equal(t, uint32(0xffffff), NewSpace("program", 24).AddressMask())
	assert.Equal(t, ^uint32(0), NewSpace("program", 32).AddressMask())
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
