package dungeon

import (
	"math/rand"
	"os"
	"testing"

	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Silence()
	os.Exit(m.Run())
}

func TestGenerate(t *testing.T) {
	level, err := Generate(DefaultConfig(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	// 1. Размеры
	assert.Equal(t, MapWidth, level.Matrix.Width)
	assert.Equal(t, MapHeight, level.Matrix.Height)

	// 2. Хотя бы одна комната, центры - пол
	require.NotEmpty(t, level.Rooms)
	for _, p := range level.SpawnPoints() {
		assert.Equal(t, FloorCode, level.Matrix.At(p.X, p.Y), "room center %v must be floor", p)
	}

	// 3. Край карты - сплошная стена
	for x := 0; x < MapWidth; x++ {
		assert.Equal(t, WallCode, level.Matrix.At(x, 0))
		assert.Equal(t, WallCode, level.Matrix.At(x, MapHeight-1))
	}
	for y := 0; y < MapHeight; y++ {
		assert.Equal(t, WallCode, level.Matrix.At(0, y))
		assert.Equal(t, WallCode, level.Matrix.At(MapWidth-1, y))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(DefaultConfig(), rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Generate(DefaultConfig(), rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, a.Matrix.Cells, b.Matrix.Cells)
	assert.Equal(t, a.Rooms, b.Rooms)
}

func TestGenerate_OnlyKnownCodes(t *testing.T) {
	level, err := Generate(Config{Width: 30, Height: 20, MaxRooms: 12}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	for _, c := range level.Matrix.Cells {
		assert.Contains(t, []int{WallCode, FloorCode, PillarCode}, c)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"rooms too small", Config{Width: 40, Height: 25, MaxRooms: 4, MinSize: 2, MaxSize: 5}},
		{"inverted sizes", Config{Width: 40, Height: 25, MaxRooms: 4, MinSize: 8, MaxSize: 5}},
		{"map too small", Config{Width: 8, Height: 25, MaxRooms: 4, MinSize: 4, MaxSize: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
			_, err := Generate(tt.cfg, rand.New(rand.NewSource(1)))
			assert.Error(t, err)
		})
	}
}

// Тест вспомогательной функции пересечения комнат
func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается

	assert.True(t, r1.Intersects(r2))
	assert.False(t, r1.Intersects(r3))
}
