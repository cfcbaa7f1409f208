package dashboard

import (
	"time"

	"go.uber.org/zap"
)

// AlertLevel is the severity of a banner
type AlertLevel string

const (
	AlertSuccess AlertLevel = "success"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
	AlertInfo    AlertLevel = "info"
)

// Valid reports whether the level is one of the four severities
func (l AlertLevel) Valid() bool {
	switch l {
	case AlertSuccess, AlertWarning, AlertDanger, AlertInfo:
		return true
	}
	return false
}

// AlertTTL is how long a banner stays on the page
const AlertTTL = 5 * time.Second

// Alert containers in lookup order
const (
	ContainerImportResult = "import-result"
	ContainerExportResult = "export-result"
	ContainerOrderDetail  = "order-detail"
	ContainerMainContent  = "main-content"
)

var containerOrder = []string{
	ContainerImportResult, ContainerExportResult, ContainerOrderDetail, ContainerMainContent,
}

// Alert is a transient banner
type Alert struct {
	ID        int64
	Level     AlertLevel
	Message   string
	Container string
	// ExpiresAt is informational; removal is driven by the scheduler
	ExpiresAt time.Time
}

// AfterFunc schedules f to run once after d
type AfterFunc func(d time.Duration, f func())

func timeAfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ShowAlert appends a banner to the first present container and schedules its removal
func (c *Controller) ShowAlert(message string, level AlertLevel) int64 {
	if !level.Valid() {
		c.logger.Warn("unknown alert level, using info", zap.String("level", string(level)))
		level = AlertInfo
	}

	c.mu.Lock()
	c.nextAlertID++
	id := c.nextAlertID
	c.state.Alerts = append(c.state.Alerts, Alert{
		ID:        id,
		Level:     level,
		Message:   message,
		Container: c.alertContainer(),
		ExpiresAt: c.now().Add(AlertTTL),
	})
	c.mu.Unlock()

	c.afterFunc(AlertTTL, func() { c.DismissAlert(id) })
	return id
}

// DismissAlert removes a banner; removing one that is already gone does nothing
func (c *Controller) DismissAlert(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, a := range c.state.Alerts {
		if a.ID == id {
			c.state.Alerts = append(c.state.Alerts[:i], c.state.Alerts[i+1:]...)
			return
		}
	}
}

// alertContainer must be called with c.mu held
func (c *Controller) alertContainer() string {
	for _, id := range containerOrder {
		if c.containers[id] {
			return id
		}
	}
	return ContainerMainContent
}
