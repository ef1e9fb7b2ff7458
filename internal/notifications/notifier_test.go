package notifications

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"nutrition-catalog-service/internal/models"
)

func newTestNotifier() *Notifier {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewNotifier(logger)
}

func TestNotifierRecordsInOrder(t *testing.T) {
	n := newTestNotifier()

	n.Success("loaded")
	n.Error("failed")

	recent := n.Recent()
	assert.Len(t, recent, 2)
	assert.Equal(t, "loaded", recent[0].Message)
	assert.Equal(t, models.NotificationSuccess, recent[0].Type)
	assert.Equal(t, "failed", recent[1].Message)
	assert.Equal(t, models.NotificationError, recent[1].Type)
}

func TestNotifierIDsAreUniqueAndIncreasing(t *testing.T) {
	n := newTestNotifier()

	var lastID int64
	for i := 0; i < 50; i++ {
		entry := n.Success("tick")
		assert.Greater(t, entry.ID, lastID)
		lastID = entry.ID
	}
}

func TestNotifierRemove(t *testing.T) {
	n := newTestNotifier()

	a := n.Success("a")
	b := n.Error("b")

	assert.True(t, n.Remove(a.ID))
	assert.False(t, n.Remove(a.ID))

	recent := n.Recent()
	assert.Len(t, recent, 1)
	assert.Equal(t, b.ID, recent[0].ID)
}

func TestNotifierDropsOldestBeyondCapacity(t *testing.T) {
	n := newTestNotifier()

	for i := 0; i < maxRetained+10; i++ {
		n.Success(fmt.Sprintf("msg %d", i))
	}

	recent := n.Recent()
	assert.Len(t, recent, maxRetained)
	assert.Equal(t, "msg 10", recent[0].Message)
}
