// controllers/webhook.go
package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonbook-backend/models"
)

// SignatureVerifier checks a webhook payload against its signature header.
type SignatureVerifier interface {
	VerifySignature(payload []byte, signature string) bool
}

// PaidNotifier is told about checkouts that just got paid.
type PaidNotifier interface {
	NotifyGroupPaid(group *models.BookingGroup)
}

type WebhookController struct {
	DB       *gorm.DB
	Verifier SignatureVerifier
	Notifier PaidNotifier
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID       string              `json:"id"`
		Metadata []map[string]string `json:"metadata"`
	} `json:"data"`
}

// HandleCheckoutEvent processes payment provider callbacks. The signature is
// verified over the raw body before anything else; a bad signature changes
// no state.
func (wc *WebhookController) HandleCheckoutEvent(c *gin.Context) {
	signature := c.GetHeader("signature")
	if signature == "" {
		log.Println("webhook: signature header is missing")
		c.Status(http.StatusBadRequest)
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if !wc.Verifier.VerifySignature(payload, signature) {
		log.Println("webhook: signature is invalid")
		c.Status(http.StatusForbidden)
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.paid":
		wc.transitionGroups(c, event, models.BookingStatusPaid)
	case "checkout.failed", "checkout.expired":
		wc.transitionGroups(c, event, models.BookingStatusCancelled)
	default:
		log.Printf("webhook: unknown event type %q", event.Type)
		c.Status(http.StatusOK)
	}
}

// transitionGroups walks the event metadata for checkout group ids and moves
// each still-pending group (and its bookings) to the target status.
func (wc *WebhookController) transitionGroups(c *gin.Context, event webhookEvent, status string) {
	var paidGroups []models.BookingGroup

	for _, entry := range event.Data.Metadata {
		rawID, ok := entry["groupId"]
		if !ok {
			continue
		}
		groupID, err := uuid.Parse(rawID)
		if err != nil {
			log.Printf("webhook: invalid group id %q in metadata", rawID)
			continue
		}

		var group models.BookingGroup
		if err := wc.DB.First(&group, "id = ?", groupID).Error; err != nil {
			log.Printf("webhook: checkout group %s not found", groupID)
			c.Status(http.StatusNotFound)
			return
		}

		err = wc.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.BookingGroup{}).
				Where("id = ? AND status = ?", groupID, models.BookingStatusPending).
				Update("status", status).Error; err != nil {
				return err
			}
			return tx.Model(&models.Booking{}).
				Where("group_id = ? AND status = ?", groupID, models.BookingStatusPending).
				Update("status", status).Error
		})
		if err != nil {
			log.Printf("webhook: failed to update checkout group %s: %v", groupID, err)
			c.Status(http.StatusInternalServerError)
			return
		}

		if status == models.BookingStatusPaid {
			group.Status = status
			paidGroups = append(paidGroups, group)
		}
	}

	if wc.Notifier != nil {
		for i := range paidGroups {
			wc.Notifier.NotifyGroupPaid(&paidGroups[i])
		}
	}

	c.Status(http.StatusOK)
}
