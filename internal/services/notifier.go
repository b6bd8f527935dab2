package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"creatorhub/internal/config"
	"creatorhub/internal/models"
	"creatorhub/pkg/logging"

	brevo "github.com/getbrevo/brevo-go/lib"
)

// Notifier delivers creator-facing side effects after a payment is
// recorded: a transactional email and, when the creator configured one,
// a signed webhook. Both are best-effort and run off the request path.
type Notifier struct {
	email      *brevo.APIClient
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

func NewNotifier() *Notifier {
	var client *brevo.APIClient
	if config.AppConfig.BrevoAPIKey != "" {
		cfg := brevo.NewConfiguration()
		cfg.AddDefaultHeader("api-key", config.AppConfig.BrevoAPIKey)
		client = brevo.NewAPIClient(cfg)
	}

	return &Notifier{
		email:     client,
		fromEmail: config.AppConfig.BrevoFromEmail,
		fromName:  config.AppConfig.BrevoFromName,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// PaymentReceived notifies the creator about a completed payment.
func (n *Notifier) PaymentReceived(creator, payer *models.User, tx *models.Transaction) {
	go n.sendEmail(creator, payer, tx)
	go n.sendWebhook(creator, tx)
}

func (n *Notifier) sendEmail(creator, payer *models.User, tx *models.Transaction) {
	if n.email == nil || creator.Email == "" {
		return
	}

	var subject, line string
	switch tx.Type {
	case models.TransactionSubscription:
		subject = "New subscriber on CreatorHub"
		line = fmt.Sprintf("%s subscribed to you for %s %s.", payer.Username, tx.Amount.String(), tx.Currency)
	case models.TransactionPurchase:
		subject = "Content purchase on CreatorHub"
		line = fmt.Sprintf("%s purchased your content for %s %s.", payer.Username, tx.Amount.String(), tx.Currency)
	default:
		subject = "You received a tip on CreatorHub"
		line = fmt.Sprintf("%s tipped you %s %s.", payer.Username, tx.Amount.String(), tx.Currency)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _, err := n.email.TransactionalEmailsApi.SendTransacEmail(ctx, brevo.SendSmtpEmail{
		Sender: &brevo.SendSmtpEmailSender{
			Name:  n.fromName,
			Email: n.fromEmail,
		},
		To: []brevo.SendSmtpEmailTo{
			{Email: creator.Email, Name: creator.Username},
		},
		Subject:     subject,
		TextContent: line,
		HtmlContent: fmt.Sprintf("<p>%s</p>", line),
	})
	if err != nil {
		logging.Errorf("Failed to send payment email to %s: %v", creator.Email, err)
		return
	}
	logging.Infof("Payment email sent to creator %d for transaction %d", creator.ID, tx.ID)
}

// WebhookPayload is the body posted to a creator's webhook URL.
type WebhookPayload struct {
	Event          string `json:"event"`
	TransactionID  uint   `json:"transaction_id"`
	TxHash         string `json:"tx_hash"`
	Type           string `json:"type"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	SenderID       uint   `json:"sender_id"`
	SubscriptionID *uint  `json:"subscription_id,omitempty"`
	Timestamp      string `json:"timestamp"`
}

func (n *Notifier) sendWebhook(creator *models.User, tx *models.Transaction) {
	if creator.WebhookURL == "" {
		return
	}

	payload := WebhookPayload{
		Event:          "payment.completed",
		TransactionID:  tx.ID,
		TxHash:         tx.TxHash,
		Type:           tx.Type,
		Amount:         tx.Amount.String(),
		Currency:       tx.Currency,
		SenderID:       tx.SenderID,
		SubscriptionID: tx.SubscriptionID,
		Timestamp:      time.Now().Format(time.RFC3339),
	}

	n.sendWithRetry(creator.WebhookURL, creator.WebhookSecret, payload)
}

// sendWithRetry delivers the webhook with a fixed retry ladder:
// 1s, 5s, 30s.
func (n *Notifier) sendWithRetry(callbackURL, secret string, payload WebhookPayload) {
	retryDelays := []time.Duration{1 * time.Second, 5 * time.Second, 30 * time.Second}

	for attempt := 0; attempt < len(retryDelays); attempt++ {
		err := n.postWebhook(callbackURL, secret, payload)
		if err == nil {
			logging.Infof("Webhook delivered - url: %s, transaction: %d, attempt: %d",
				callbackURL, payload.TransactionID, attempt+1)
			return
		}

		logging.Errorf("Webhook delivery failed - url: %s, transaction: %d, attempt: %d, error: %v",
			callbackURL, payload.TransactionID, attempt+1, err)

		if attempt < len(retryDelays)-1 {
			time.Sleep(retryDelays[attempt])
		}
	}

	logging.Errorf("Webhook delivery gave up after %d attempts - url: %s, transaction: %d",
		len(retryDelays), callbackURL, payload.TransactionID)
}

func (n *Notifier) postWebhook(callbackURL, secret string, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", callbackURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "CreatorHub-Webhook/1.0")
	if secret != "" {
		req.Header.Set("X-CreatorHub-Signature", signPayload(jsonData, secret))
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

func signPayload(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
