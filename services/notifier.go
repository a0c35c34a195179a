// services/notifier.go
package services

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

// Notifier sends booking confirmation SMS via Twilio. When the Twilio
// credentials are not configured it degrades to logging only.
type Notifier struct {
	db      *gorm.DB
	client  *twilio.RestClient
	from    string
	enabled bool
}

func NewNotifier(db *gorm.DB) *Notifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_FROM_NUMBER")

	n := &Notifier{
		db:      db,
		from:    from,
		enabled: accountSid != "" && authToken != "" && from != "",
	}
	if n.enabled {
		n.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}
	return n
}

// NotifyGroupPaid sends a confirmation SMS to the customer of a paid
// checkout. Failures are logged; payment processing never depends on it.
func (n *Notifier) NotifyGroupPaid(group *models.BookingGroup) {
	var customer models.User
	if err := n.db.First(&customer, "id = ?", group.CustomerID).Error; err != nil {
		log.Printf("notifier: customer %s not found: %v", group.CustomerID, err)
		return
	}

	body := fmt.Sprintf("Your booking for %s is confirmed. See you soon!",
		group.StartTime.Format("Jan 2 at 15:04"))

	if !n.enabled {
		log.Printf("notifier: SMS disabled, would send to %s: %s", customer.PhoneNumber, body)
		return
	}

	if !utils.ValidatePhone(customer.PhoneNumber) {
		log.Printf("notifier: invalid phone number for customer %s", customer.ID)
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.PhoneNumber)
	params.SetFrom(n.from)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		log.Printf("notifier: failed to send SMS to %s: %v", customer.PhoneNumber, err)
	}
}
