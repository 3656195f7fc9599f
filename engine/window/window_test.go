package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow()

	assert.Equal(t, "oxy-raymarch", w.title)
	assert.Equal(t, 1280, w.Width())
	assert.Equal(t, 720, w.Height())
	assert.Equal(t, 1.0, w.DevicePixelRatio())
	assert.Equal(t, DefaultWheelLinePixels, w.wheelLinePixels)
	assert.Equal(t, time.Second/60, w.RefreshInterval())
	assert.False(t, w.IsRunning(), "no platform window has been spawned")
	assert.False(t, w.PollEvents())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestWindowOptions(t *testing.T) {
	w := newEngineWindow(
		WithTitle("viewer"),
		WithWidth(800),
		WithHeight(600),
		WithMinWidth(100),
		WithMinHeight(50),
		WithMaxWidth(1920),
		WithMaxHeight(1080),
		WithWheelLinePixels(40),
		WithWheelLinePixels(-1),
	)

	assert.Equal(t, "viewer", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 50, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 1080, w.maxHeight)
	assert.Equal(t, 40.0, w.wheelLinePixels)
}

func TestScrollDeltaFollowsBrowserConvention(t *testing.T) {
	w := newEngineWindow()
	var got []float64
	w.SetScrollCallback(func(deltaY float64) {
		got = append(got, deltaY)
	})

	w.scrolled(1)    // wheel away from the user
	w.scrolled(-0.5) // towards the user
	w.scrolled(0)

	assert.Equal(t, []float64{-100, 50}, got)
}

func TestPrimaryButtonEvents(t *testing.T) {
	w := newEngineWindow()
	var events []string
	w.SetPointerDownCallback(func(id int, x, y float64) {
		assert.Equal(t, PrimaryPointer, id)
		assert.Equal(t, 10.0, x)
		assert.Equal(t, 20.0, y)
		events = append(events, "down")
	})
	w.SetPointerUpCallback(func(id int) {
		assert.Equal(t, PrimaryPointer, id)
		events = append(events, "up")
	})
	w.SetPointerMoveCallback(func(id int, x, y float64) {
		events = append(events, "move")
	})

	w.primaryButton(false, 0, 0)
	w.primaryButton(true, 10, 20)
	w.cursorMoved(15, 25)
	w.primaryButton(false, 15, 25)
	w.primaryButton(false, 15, 25)

	assert.Equal(t, []string{"down", "move", "up"}, events, "release without a press is dropped")
}

func TestDragStaysCapturedOutsideWindow(t *testing.T) {
	w := newEngineWindow(WithWidth(800), WithHeight(600))
	var moves [][2]float64
	ups := 0
	w.SetPointerMoveCallback(func(id int, x, y float64) {
		moves = append(moves, [2]float64{x, y})
	})
	w.SetPointerUpCallback(func(id int) { ups++ })

	w.primaryButton(true, 790, 300)
	w.cursorMoved(850, 300)
	w.cursorMoved(-40, 700)
	assert.Equal(t, 0, ups, "leaving the window does not end the drag")

	w.primaryButton(false, -40, 700)
	assert.Equal(t, [][2]float64{{850, 300}, {-40, 700}}, moves)
	assert.Equal(t, 1, ups)
}

func TestGeometryChanged(t *testing.T) {
	w := newEngineWindow()
	type geometry struct {
		w, h int
		dpr  float64
	}
	var got []geometry
	w.SetResizeCallback(func(logicalWidth, logicalHeight int, dpr float64) {
		got = append(got, geometry{logicalWidth, logicalHeight, dpr})
	})

	w.geometryChanged(1280, 720, 1)
	w.geometryChanged(1024, 768, 1)
	w.geometryChanged(1024, 768, 2)
	w.geometryChanged(1024, 768, 2)

	require.Len(t, got, 2, "unchanged geometry is not reported")
	assert.Equal(t, geometry{1024, 768, 1}, got[0])
	assert.Equal(t, geometry{1024, 768, 2}, got[1])
	assert.Equal(t, 2.0, w.DevicePixelRatio())
}

func TestKeyEvents(t *testing.T) {
	w := newEngineWindow()
	var down, up, repeat []uint32
	w.SetKeyDownCallback(func(keyCode uint32) { down = append(down, keyCode) })
	w.SetKeyUpCallback(func(keyCode uint32) { up = append(up, keyCode) })

	w.key(49, true)
	w.keyRepeated(49)
	w.key(49, false)

	assert.Equal(t, []uint32{49}, down, "repeats are not reported as presses")
	assert.Equal(t, []uint32{49}, up)

	w.SetKeyRepeatCallback(func(keyCode uint32) { repeat = append(repeat, keyCode) })
	w.keyRepeated(61)
	w.keyRepeated(61)
	assert.Equal(t, []uint32{61, 61}, repeat)
	assert.Equal(t, []uint32{49}, down)
}

func TestPixelRatio(t *testing.T) {
	assert.Equal(t, 2.0, pixelRatio(800, 1600, 1))
	assert.Equal(t, 1.5, pixelRatio(0, 0, 1.5))
	assert.Equal(t, 1.0, pixelRatio(0, 0, 0))
}

func TestRefreshInterval(t *testing.T) {
	assert.Equal(t, time.Second/144, refreshInterval(144))
	assert.Equal(t, time.Second/60, refreshInterval(0))
}
