package twilio

import (
	"encoding/xml"
	"fmt"
	"log"
	"strings"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Client wraps the Twilio operations the reminder engine needs:
// placing a voice call that speaks a text, and sending an SMS.
type Client struct {
	client *twilio.RestClient
	from   string
	dryRun bool
	logger *log.Logger
}

// New creates a Twilio client bound to the configured sender number.
// With dryRun set, deliveries are logged instead of dialed.
func New(accountSID, authToken, from string, dryRun bool, logger *log.Logger) *Client {
	return &Client{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{Username: accountSID, Password: authToken}),
		from:   from,
		dryRun: dryRun,
		logger: logger,
	}
}

// PlaceCall dials the recipient and speaks text via TwiML <Say>.
func (c *Client) PlaceCall(to, text string) error {
	if c.client == nil {
		return fmt.Errorf("twilio client not initialised")
	}

	sender := normalizeNumber(c.from)
	if sender == "" {
		return fmt.Errorf("twilio sender number is not configured")
	}
	recipient := normalizeNumber(to)
	if recipient == "" {
		return fmt.Errorf("recipient number missing or invalid")
	}

	twiml, err := sayDocument(text)
	if err != nil {
		return fmt.Errorf("build twiml: %w", err)
	}

	if c.dryRun {
		c.logger.Printf("twilio: dry run, would call %s from %s saying %q", recipient, sender, text)
		return nil
	}

	params := &openapi.CreateCallParams{}
	params.SetTo(recipient)
	params.SetFrom(sender)
	params.SetTwiml(twiml)

	resp, err := c.client.Api.CreateCall(params)
	if err != nil {
		return fmt.Errorf("twilio create call: %w", err)
	}
	if resp.Sid != nil {
		c.logger.Printf("twilio: call initiated, SID %s", *resp.Sid)
	}
	return nil
}

// SendMessage delivers the reminder text as an SMS instead of a call.
func (c *Client) SendMessage(to, body string) error {
	if c.client == nil {
		return fmt.Errorf("twilio client not initialised")
	}

	sender := normalizeNumber(c.from)
	if sender == "" {
		return fmt.Errorf("twilio sender number is not configured")
	}
	recipient := normalizeNumber(to)
	if recipient == "" {
		return fmt.Errorf("recipient number missing or invalid")
	}

	if c.dryRun {
		c.logger.Printf("twilio: dry run, would text %s from %s: %q", recipient, sender, body)
		return nil
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(recipient)
	params.SetFrom(sender)
	params.SetBody(body)

	resp, err := c.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send message: %w", err)
	}
	if resp.Sid != nil {
		c.logger.Printf("twilio: message sent, SID %s", *resp.Sid)
	}
	return nil
}

// sayDocument renders <Response><Say>text</Say></Response> with the
// text XML-escaped.
func sayDocument(text string) (string, error) {
	doc := struct {
		XMLName xml.Name `xml:"Response"`
		Say     string   `xml:"Say"`
	}{
		Say: text,
	}
	out, err := xml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func normalizeNumber(number string) string {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "+") {
		return trimmed
	}
	return "+" + trimmed
}
