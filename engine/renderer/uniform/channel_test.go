package uniform

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	writes [][]byte
	err    error
}

func (q *fakeQueue) WriteBuffer(_ *wgpu.Buffer, _ uint64, data []byte) error {
	if q.err != nil {
		return q.err
	}
	q.writes = append(q.writes, append([]byte(nil), data...))
	return nil
}

func newTestChannel(q queueWriter, size int) *channel {
	return &channel{
		mu:    &sync.Mutex{},
		label: "test",
		size:  size,
		queue: q,
	}
}

func TestWriteFullReplacement(t *testing.T) {
	q := &fakeQueue{}
	c := newTestChannel(q, 48)

	payload := make([]byte, 48)
	payload[0] = 7
	require.NoError(t, c.Write(payload))

	require.Len(t, q.writes, 1)
	assert.Equal(t, payload, q.writes[0])
	assert.Equal(t, uint64(1), c.Writes())
}

func TestWriteSizeMismatch(t *testing.T) {
	q := &fakeQueue{}
	c := newTestChannel(q, 48)

	for _, n := range []int{0, 47, 49, 96} {
		err := c.Write(make([]byte, n))

		var mismatch *common.SizeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 48, mismatch.Expected)
		assert.Equal(t, n, mismatch.Actual)
	}
	assert.Empty(t, q.writes)
	assert.Equal(t, uint64(0), c.Writes())
}

func TestWriteQueueError(t *testing.T) {
	boom := errors.New("device lost")
	c := newTestChannel(&fakeQueue{err: boom}, 4)

	err := c.Write(make([]byte, 4))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(0), c.Writes())
}

func TestGeneratedLayoutDescriptor(t *testing.T) {
	c := newTestChannel(&fakeQueue{}, 48)
	c.spec = BindingSpec{Group: 0, Binding: 0}

	desc := c.layoutDescriptorFor()
	require.Len(t, desc.Entries, 1)
	entry := desc.Entries[0]
	assert.Equal(t, uint32(0), entry.Binding)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entry.Buffer.Type)
	assert.Equal(t, uint64(48), entry.Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entry.Visibility)
	assert.NoError(t, checkLayout(desc, c.spec, 48))
}

func TestCheckLayout(t *testing.T) {
	uniformEntry := func(binding uint32, size uint64) wgpu.BindGroupLayoutEntry {
		e := wgpu.BindGroupLayoutEntry{Binding: binding}
		e.Buffer.Type = wgpu.BufferBindingTypeUniform
		e.Buffer.MinBindingSize = size
		return e
	}
	spec := BindingSpec{Group: 0, Binding: 0}

	t.Run("matching", func(t *testing.T) {
		desc := wgpu.BindGroupLayoutDescriptor{Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, 48)}}
		assert.NoError(t, checkLayout(desc, spec, 48))
	})

	t.Run("size mismatch", func(t *testing.T) {
		desc := wgpu.BindGroupLayoutDescriptor{Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, 64)}}
		var mismatch *common.SizeMismatchError
		assert.ErrorAs(t, checkLayout(desc, spec, 48), &mismatch)
	})

	t.Run("wrong binding", func(t *testing.T) {
		desc := wgpu.BindGroupLayoutDescriptor{Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(3, 48)}}
		assert.Error(t, checkLayout(desc, spec, 48))
	})

	t.Run("not a uniform", func(t *testing.T) {
		e := uniformEntry(0, 48)
		e.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		desc := wgpu.BindGroupLayoutDescriptor{Entries: []wgpu.BindGroupLayoutEntry{e}}
		assert.Error(t, checkLayout(desc, spec, 48))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Error(t, checkLayout(wgpu.BindGroupLayoutDescriptor{}, spec, 48))
	})
}

func TestNewChannelRejectsEmptyContents(t *testing.T) {
	_, err := NewChannel(nil, nil, nil, BindingSpec{})
	assert.Error(t, err)
}

func TestReleaseWithoutGPUObjects(t *testing.T) {
	c := newTestChannel(&fakeQueue{}, 4)
	c.Release()
	assert.Nil(t, c.Buffer())
	assert.Nil(t, c.BindGroup())
	assert.Nil(t, c.BindGroupLayout())
}
