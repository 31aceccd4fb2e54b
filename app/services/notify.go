package services

import (
	"fmt"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/config"
	"github.com/tracechain/tracechain/pkg/event"
	"github.com/tracechain/tracechain/pkg/notification"
)

// FeedbackNotification tells a farmer that a shopper rated one of their
// products.
type FeedbackNotification struct {
	Product  models.Product
	Feedback models.FeedbackEvent
}

func (n *FeedbackNotification) Via() []string { return []string{"mail"} }

func (n *FeedbackNotification) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("New feedback on %s (%d/5)", n.Product.Name, n.Feedback.Rating),
		Body: fmt.Sprintf(
			"<p><strong>%s</strong> rated <strong>%s</strong> %d/5:</p><blockquote>%s</blockquote>",
			n.Feedback.UserName, n.Product.Name, n.Feedback.Rating, n.Feedback.Comment,
		),
		Text: fmt.Sprintf("%s rated %s %d/5: %s",
			n.Feedback.UserName, n.Product.Name, n.Feedback.Rating, n.Feedback.Comment),
	}
}

// RegisterNotifications mails the originating farmer when feedback lands.
// Only active when SMTP credentials are configured; local development
// stays silent.
func RegisterNotifications(dir *repositories.Directory) {
	if config.Get("MAIL_USERNAME", "") == "" {
		return
	}

	event.Listen(EventFeedbackCreated, func(payload interface{}) {
		fb, ok := payload.(models.FeedbackEvent)
		if !ok {
			return
		}
		product, ok := dir.Product(fb.ProductID)
		if !ok {
			return
		}
		farmer, ok := dir.User(product.FarmerID)
		if !ok || farmer.Email == "" {
			return
		}
		notification.SendAsync(farmer.Email, &FeedbackNotification{Product: product, Feedback: fb})
	})
}
