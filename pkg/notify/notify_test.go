package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferNotifierKeepsRecent(t *testing.T) {
	buf := NewBufferNotifier(3, nil)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		buf.Notify(ctx, Notification{
			Title:    "Stock low",
			Message:  fmt.Sprintf("item %d", i),
			Severity: SeverityWarning,
		})
	}

	recent := buf.Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, "item 3", recent[0].Message)
	assert.Equal(t, "item 5", recent[2].Message)
}

func TestBufferNotifierForwardsToNext(t *testing.T) {
	var forwarded []Notification
	next := notifierFunc(func(ctx context.Context, n Notification) {
		forwarded = append(forwarded, n)
	})

	buf := NewBufferNotifier(10, next)
	buf.Notify(context.Background(), Notification{Title: "Stock critical", Severity: SeverityError})

	require.Len(t, forwarded, 1)
	assert.Equal(t, "Stock critical", forwarded[0].Title)
}

type notifierFunc func(ctx context.Context, n Notification)

func (f notifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }
