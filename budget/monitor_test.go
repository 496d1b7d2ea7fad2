package budget

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestExpires(t *testing.T) {
	is := is.New(t)
	m := New(context.Background(), 20*time.Millisecond)
	defer m.Release()
	is.True(!m.Expired())
	time.Sleep(40 * time.Millisecond)
	is.True(m.Expired())
	is.Equal(m.Remaining(), time.Duration(0))
	is.True(m.Elapsed() >= 20*time.Millisecond)
}

func TestSubExpiresWithParent(t *testing.T) {
	is := is.New(t)
	m := New(context.Background(), time.Hour)
	sub := m.Sub(0.5)
	defer sub.Release()
	is.True(sub.Remaining() <= 30*time.Minute+time.Second)
	is.True(!sub.Expired())
	m.Release()
	is.True(sub.Expired())
	is.True(m.Expired())
}

func TestParentCancellation(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	m := New(ctx, time.Hour)
	defer m.Release()
	cancel()
	is.True(m.Expired())
	is.True(m.Context().Err() != nil)
}
