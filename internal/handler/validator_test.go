package handler

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type playerStruct struct {
	PlayerID string  `validate:"playerid"`
	Progress float64 `validate:"finite,gte=0,lte=1"`
}

func TestValidator_PlayerID(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple id", "player-42", false},
		{"unicode letters", "größe_7", false},
		{"max length", strings.Repeat("a", MaxPlayerIDLength), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxPlayerIDLength+1), true},
		{"contains space", "player 42", true},
		{"contains newline", "player\n42", true},
		{"contains non-breaking space", "player\u00a042", true},
		{"contains bell", "player\a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(playerStruct{PlayerID: tt.id, Progress: 0.5})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, err != nil, v.ValidateVar(tt.id, "playerid") != nil)
		})
	}
}

func TestValidator_Finite(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(playerStruct{PlayerID: "p", Progress: 1}))
	assert.Error(t, v.ValidateStruct(playerStruct{PlayerID: "p", Progress: math.NaN()}))
	assert.Error(t, v.ValidateStruct(playerStruct{PlayerID: "p", Progress: 1.1}))
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(playerStruct{PlayerID: "", Progress: math.Inf(1)})

	fields := FormatValidationError(err)
	assert.Equal(t, "Invalid player id", fields["playerid"])
	assert.Equal(t, "Must be a finite number", fields["progress"])
	assert.Nil(t, FormatValidationError(nil))
}

func TestFormatValidationError_UsesJSONNames(t *testing.T) {
	err := GetValidator().ValidateStruct(ProgressRequest{PlayerID: "p1", Progress: 2, ItemID: "old_boot"})

	fields := FormatValidationError(err)
	assert.Equal(t, "Must be at most 1", fields["progress"])
}
