package services

import (
	"fmt"
	"time"

	"github.com/n8hotnews-a11y/Smart-Frigde/models"
	"github.com/n8hotnews-a11y/Smart-Frigde/utils"
)

// AlertService turns the inventory's expiry state into notifications: the
// websocket hub for open apps, SNS push for registered devices, and an
// optional email digest.
type AlertService struct {
	inv  *InventoryService
	hub  *RealtimeHub
	push *PushService

	criticalDays int
}

// NewAlertService builds the fan-out. The notification window itself lives
// in the inventory store; criticalDays only decides the alert wording tier.
func NewAlertService(inv *InventoryService, hub *RealtimeHub, push *PushService, criticalDays int) *AlertService {
	return &AlertService{
		inv:          inv,
		hub:          hub,
		push:         push,
		criticalDays: criticalDays,
	}
}

// ScanExpiring builds the alerts for everything inside the notification
// window at ref. Pure read; nothing is sent.
func (s *AlertService) ScanExpiring(ref time.Time) []models.Alert {
	items := s.inv.ListExpiringSoon(ref)
	alerts := make([]models.Alert, 0, len(items))
	for _, it := range items {
		days := utils.DaysUntilExpiry(ref, it.ExpiryDate)

		typ := "warning"
		if days <= s.criticalDays {
			typ = "critical"
		}

		var msg string
		switch {
		case days == 0:
			msg = fmt.Sprintf("%s hết hạn hôm nay!", it.Name)
		case days == 1:
			msg = fmt.Sprintf("%s sẽ hết hạn vào ngày mai.", it.Name)
		default:
			msg = fmt.Sprintf("%s sẽ hết hạn trong %d ngày.", it.Name, days)
		}

		alerts = append(alerts, models.Alert{
			ItemID:    it.ID,
			ItemName:  it.Name,
			Type:      typ,
			DaysLeft:  days,
			Message:   msg,
			CreatedAt: ref,
		})
	}
	return alerts
}

// Notify runs a scan and fans the result out to every surface.
func (s *AlertService) Notify(ref time.Time) []models.Alert {
	alerts := s.ScanExpiring(ref)
	if len(alerts) == 0 {
		return alerts
	}

	if s.hub != nil {
		s.hub.Broadcast(map[string]any{
			"kind":   "expiry.alerts",
			"alerts": alerts,
		})
	}
	if s.push != nil {
		for _, a := range alerts {
			s.push.PushAll("Thực phẩm sắp hết hạn", a.Message, map[string]string{
				"type":   a.Type,
				"itemId": a.ItemID,
			})
		}
	}
	return alerts
}

// SendDigest emails the current scan to the given address.
func (s *AlertService) SendDigest(ref time.Time, to string) error {
	return utils.SendExpiryDigest(to, s.ScanExpiring(ref))
}

// BindAuth makes a fresh sign-in trigger one notification pass, the same
// once-per-session nudge the app shows after login. Returns the
// subscription's cancel func.
func (s *AlertService) BindAuth(gw *IdentityGateway) (cancel func()) {
	return gw.OnAuthChange(func(id *Identity) {
		if id == nil {
			return
		}
		s.Notify(time.Now())
	})
}
