package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAlert_ExpiresAfterTTL(t *testing.T) {
	c, timers := newTestController(&mockAPI{})

	c.ShowAlert("hello", AlertSuccess)

	require.Len(t, c.Snapshot().Alerts, 1)
	require.Len(t, timers.delays, 1)
	assert.Equal(t, 5000*time.Millisecond, timers.delays[0])

	timers.FireAll()
	assert.Empty(t, c.Snapshot().Alerts)
}

func TestDismissAlert_Idempotent(t *testing.T) {
	c, timers := newTestController(&mockAPI{})

	first := c.ShowAlert("one", AlertInfo)
	c.ShowAlert("two", AlertWarning)

	c.DismissAlert(first)
	c.DismissAlert(first)
	timers.FireAll()
	timers.FireAll()

	assert.Empty(t, c.Snapshot().Alerts)
}

func TestShowAlert_ContainerLookup(t *testing.T) {
	tests := []struct {
		name    string
		present []string
		want    string
	}{
		{name: "import result wins", present: []string{ContainerMainContent, ContainerImportResult}, want: ContainerImportResult},
		{name: "export result", present: []string{ContainerExportResult, ContainerOrderDetail}, want: ContainerExportResult},
		{name: "order detail", present: []string{ContainerOrderDetail, ContainerMainContent}, want: ContainerOrderDetail},
		{name: "fallback main content", present: nil, want: ContainerMainContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(&mockAPI{}, WithContainers(tt.present...))
			c.ShowAlert("x", AlertInfo)
			assert.Equal(t, tt.want, c.Snapshot().Alerts[0].Container)
		})
	}
}

func TestShowAlert_UnknownLevelFallsBackToInfo(t *testing.T) {
	c, _ := newTestController(&mockAPI{})
	c.ShowAlert("x", AlertLevel("fatal"))
	assert.Equal(t, AlertInfo, c.Snapshot().Alerts[0].Level)
}

func TestShowAlert_RealTimerRemoves(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the alert lifetime")
	}
	c := NewController(&mockAPI{}, nil)
	start := time.Now()
	c.ShowAlert("x", AlertInfo)

	assert.Eventually(t, func() bool { return len(c.Snapshot().Alerts) == 0 }, AlertTTL+time.Second, 50*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), AlertTTL)
}
