package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, bb.Cap(), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(ColumnBufferDefaultSize)
	bb.MustWrite([]byte("hello"))

	b := bb.Bytes()
	assert.Equal(t, []byte("hello"), b)
	assert.True(t, &bb.B[0] == &b[0], "Bytes() should return the same underlying slice")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(ColumnBufferDefaultSize)
	bb.MustWriteString("some data")
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_MustWriteString(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWriteString("abc")
	bb.MustWriteString("")
	bb.MustWriteString("défg")

	require.Equal(t, "abcdéfg", string(bb.Bytes()))
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWriteString("ab")

	region := bb.ExtendOrGrow(8)
	require.Len(t, region, 8)
	require.Equal(t, 10, bb.Len())

	copy(region, "01234567")
	require.Equal(t, "ab01234567", string(bb.Bytes()))
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		assert.Equal(t, 100, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		bb.MustWriteString("0123456789")
		bb.Grow(1)
		assert.Equal(t, 10+ColumnBufferDefaultSize, bb.Cap())
		assert.Equal(t, "0123456789", string(bb.Bytes()))
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * ColumnBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.ExtendOrGrow(size)
		bb.Grow(1)
		assert.Equal(t, size+size/4, bb.Cap())
	})

	t.Run("request larger than growth step", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(3 * ColumnBufferDefaultSize)
		assert.GreaterOrEqual(t, bb.Cap(), 3*ColumnBufferDefaultSize)
	})
}

func TestColumnBufferPool_Reuse(t *testing.T) {
	bb := GetColumnBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	bb.MustWriteString("payload")
	PutColumnBuffer(bb)

	again := GetColumnBuffer()
	require.Equal(t, 0, again.Len(), "pooled buffers must come back empty")
	PutColumnBuffer(again)

	PutColumnBuffer(nil)
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	big := NewByteBuffer(128)
	big.MustWriteString("x")
	p.Put(big)

	got := p.Get()
	require.NotSame(t, big, got, "buffers above the threshold must be dropped")
	require.Equal(t, 16, got.Cap())
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	p := NewByteBufferPool(32, 0)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for range 100 {
				bb := p.Get()
				bb.MustWrite([]byte{byte(id)})
				assert.Equal(t, 1, bb.Len())
				p.Put(bb)
			}
		}(i)
	}
	wg.Wait()
}
