package membership

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/save"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.Empty(t, tracker.Names())
	require.Nil(t, tracker.Bricks("Health"))
}

func TestTracker_TrackComponent_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackComponent("Health"))
	err := tracker.TrackComponent("Health")
	require.ErrorIs(t, err, errs.ErrDuplicateComponent)
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_TrackBrick(t *testing.T) {
	tracker := NewTracker()

	tracker.TrackBrick("Light", 1)
	tracker.TrackBrick("Health", 0)
	tracker.TrackBrick("Health", 2)

	require.Equal(t, 2, tracker.Count())
	require.Equal(t, []string{"Health", "Light"}, tracker.Names())
	require.Equal(t, []uint32{0, 2}, tracker.Bricks("Health"))
	require.True(t, tracker.Equal("Light", []uint32{1}))
	require.False(t, tracker.Equal("Light", []uint32{1, 2}))
}

func TestDerive(t *testing.T) {
	health := map[string]save.Value{"value": save.Integer(10)}
	bricks := []save.Brick{
		{Components: map[string]map[string]save.Value{"Health": health}},
		{},
		{Components: map[string]map[string]save.Value{
			"Health": health,
			"Tag":    {"label": save.String("door")},
		}},
	}

	tracker := Derive(bricks)
	require.Equal(t, []uint32{0, 2}, tracker.Bricks("Health"))
	require.Equal(t, []uint32{2}, tracker.Bricks("Tag"))
	require.Equal(t, []string{"Health", "Tag"}, tracker.Names())
}

func TestDerive_NoComponents(t *testing.T) {
	tracker := Derive(make([]save.Brick, 3))
	require.Equal(t, 0, tracker.Count())
}
