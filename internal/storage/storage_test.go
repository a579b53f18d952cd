package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	storagemock "github.com/Zanice/2D-Game-Framework/internal/storage/mock"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/Zanice/2D-Game-Framework/pkg/mapfile"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const roomMap = "{2,2,2}\n{2,1,2}\n{2,2,2}\n"

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestMapRepositoryCachesLastLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := storagemock.NewMockMapSource(ctrl)
	ctx := context.Background()

	source.EXPECT().
		Fetch(gomock.Any(), "levels", "room").
		Return(io.NopCloser(strings.NewReader(roomMap)), nil).
		Times(1)

	repo := NewMapRepository(source)

	first, err := repo.Load(ctx, "levels", "room", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int(domain.TileFloor), first.At(1, 1))

	// Same key: served from cache, no second fetch
	second, err := repo.Load(ctx, "levels", "room", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Callers get their own copy
	second.Set(1, 1, int(domain.TileWall))
	third, err := repo.Load(ctx, "levels", "room", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int(domain.TileFloor), third.At(1, 1))
}

func TestMapRepositoryReloadsOnDifferentKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := storagemock.NewMockMapSource(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		source.EXPECT().Fetch(gomock.Any(), "levels", "room").
			Return(io.NopCloser(strings.NewReader(roomMap)), nil),
		source.EXPECT().Fetch(gomock.Any(), "levels", "other").
			Return(io.NopCloser(strings.NewReader("{1}\n")), nil),
	)

	repo := NewMapRepository(source)
	_, err := repo.Load(ctx, "levels", "room", 3, 3)
	require.NoError(t, err)
	m, err := repo.Load(ctx, "levels", "other", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, m.At(0, 0))
}

func TestMapRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := storagemock.NewMockMapSource(ctrl)
	ctx := context.Background()

	source.EXPECT().Fetch(gomock.Any(), "levels", "missing").
		Return(nil, domain.NotFoundf("map levels/missing not found"))
	source.EXPECT().Fetch(gomock.Any(), "levels", "broken").
		Return(io.NopCloser(strings.NewReader("{1,a}\n")), nil)

	repo := NewMapRepository(source)

	_, err := repo.Load(ctx, "levels", "missing", 1, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Load(ctx, "levels", "broken", 2, 1)
	assert.ErrorIs(t, err, domain.ErrFormat)
	var fe *mapfile.FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestFileSource(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "levels"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "levels", "room.map"), []byte(roomMap), 0o644))

	repo := NewMapRepository(NewFileSource(root))
	m, err := repo.Load(context.Background(), "levels", "room", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int(domain.TileWall), m.At(0, 0))

	_, err = NewFileSource(root).Fetch(context.Background(), "levels", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisSource(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")
	defer mr.Close()

	source, err := NewRedisSource(mr.Addr())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, source.Put(ctx, "levels", "room", []byte(roomMap)))
	assert.True(t, mr.Exists("map:levels:room"))

	rc, err := source.Fetch(ctx, "levels", "room")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, roomMap, string(data))

	_, err = source.Fetch(ctx, "levels", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Seeded directly in redis
	mr.Set(MapKey("levels", "dot"), "{1}")
	m, err := NewMapRepository(source).Load(ctx, "levels", "dot", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, m.At(0, 0))
}

func TestNewRedisSourceRequiresAddr(t *testing.T) {
	_, err := NewRedisSource("")
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestReplayRoundTrip(t *testing.T) {
	actor := domain.PackEntityID(domain.KindPlayer, domain.AllegianceCop, 1)
	move, err := domain.NewCommand(0, actor, domain.ActionMove, api.MovePayload{Right: true})
	require.NoError(t, err)
	knife, err := domain.NewCommand(3, actor, domain.ActionKnife, api.AimPayload{X: 0, Y: 1})
	require.NoError(t, err)
	wait, err := domain.NewCommand(4, actor, domain.ActionWait, nil)
	require.NoError(t, err)

	session := &domain.ReplaySession{
		RunID:     uuid.NewString(),
		Seed:      42,
		Timestamp: time.Now().Unix(),
		Ticks:     5,
		Commands:  []domain.Command{move, knife, wait},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReplay(&buf, session))
	assert.Equal(t, MagicHeader, buf.String()[:4])

	loaded, err := ReadReplay(&buf)
	require.NoError(t, err)
	assert.Equal(t, session.RunID, loaded.RunID)
	assert.Equal(t, session.Seed, loaded.Seed)
	assert.Equal(t, session.Ticks, loaded.Ticks)
	require.Len(t, loaded.Commands, 3)
	assert.Equal(t, session.Commands[0], loaded.Commands[0])
	assert.Equal(t, session.Commands[1], loaded.Commands[1])
	assert.Empty(t, loaded.Commands[2].Payload)

	var aim api.AimPayload
	require.NoError(t, loaded.Commands[1].Decode(&aim))
	assert.Equal(t, 1.0, aim.Y)
}

func TestReplayServiceSaveLoad(t *testing.T) {
	svc, err := NewReplayService(filepath.Join(t.TempDir(), "replays"))
	require.NoError(t, err)

	session := &domain.ReplaySession{RunID: uuid.NewString(), Seed: 7, Ticks: 1}
	path, err := svc.Save(session)
	require.NoError(t, err)
	assert.Equal(t, ReplayExtension, filepath.Ext(path))

	loaded, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, session.RunID, loaded.RunID)
	assert.Empty(t, loaded.Commands)
}

func TestReadReplayRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReplay(&buf, &domain.ReplaySession{Seed: 1}))
	data := buf.Bytes()
	copy(data, "XXXX")

	_, err := ReadReplay(bytes.NewReader(data))
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestReadReplayHugeCommandCount(t *testing.T) {
	header := ReplayFileHeader{Version: Version1, Seed: 3, CommandCount: 0xFFFFFFFF}
	copy(header.Magic[:], MagicHeader)

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &header))

	// Заголовок обещает 4 млрд команд, а за ним пусто
	_, err := ReadReplay(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read command 0")
}

func TestReadReplayTruncatedCommands(t *testing.T) {
	session := &domain.ReplaySession{Seed: 5}
	for i := 0; i < 3; i++ {
		cmd, err := domain.NewCommand(uint64(i), domain.EntityID(7), domain.ActionWait, nil)
		require.NoError(t, err)
		session.Record(cmd)
	}
	var buf bytes.Buffer
	require.NoError(t, WriteReplay(&buf, session))

	data := buf.Bytes()
	_, err := ReadReplay(bytes.NewReader(data[:len(data)-5]))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read command 2")
}

func TestHistoryRoundTrip(t *testing.T) {
	db, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	older := RunRow{RunID: "a", Seed: 1, Ticks: 100, Survivors: 2, Deaths: 1,
		ReplayPath: "replays/a.gsrp", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := RunRow{RunID: "b", Seed: 2, Ticks: 50, Survivors: 3,
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.RecordRun(older))
	require.NoError(t, db.RecordRun(newer))

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].RunID)
	assert.Equal(t, "a", runs[1].RunID)
	assert.Equal(t, uint64(100), runs[1].Ticks)
	assert.Equal(t, "replays/a.gsrp", runs[1].ReplayPath)
	assert.True(t, older.CreatedAt.Equal(runs[1].CreatedAt))

	// Duplicate run id is rejected
	assert.Error(t, db.RecordRun(older))

	limited, err := db.ListRuns(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
