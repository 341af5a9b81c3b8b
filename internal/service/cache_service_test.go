package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheServiceDisabledIsInert(t *testing.T) {
	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())

	svc := NewCacheService(nil, 0, nil)
	assert.False(t, svc.Enabled())

	var out map[string]string
	assert.False(t, svc.GetJSON(context.Background(), "k", &out))
	svc.SetJSON(context.Background(), "k", map[string]string{"a": "b"})
}

func TestCacheServiceKeyIsRevisionVersioned(t *testing.T) {
	svc := NewCacheService(nil, 0, nil)

	k1 := svc.TimetableKey("tutor", "t1", 1)
	k2 := svc.TimetableKey("tutor", "t1", 2)
	k3 := svc.TimetableKey("room", "t1", 1)

	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Equal(t, "timetable:tutor:t1:rev1", k1)
}
