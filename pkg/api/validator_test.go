package api

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload Validator
		wantErr bool
	}{
		{"move right", MovePayload{Right: true}, false},
		{"empty move", MovePayload{}, true},
		{"aim", AimPayload{X: 1}, false},
		{"zero aim uses facing", AimPayload{}, false},
		{"nan aim", AimPayload{X: math.NaN()}, true},
		{"position", PositionPayload{X: 3, Y: -2}, false},
		{"infinite position", PositionPayload{Y: math.Inf(1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
