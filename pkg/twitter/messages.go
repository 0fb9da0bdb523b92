package twitter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/oauth1"
)

// dmEnvelope wraps a direct message event on the wire.
type dmEnvelope struct {
	Event DirectMessage `json:"event"`
}

// SendDirectMessage sends a private message. The recipient is a numeric user
// ID or a screen name; screen names are resolved with LoadUserInfo first.
func (c *Client) SendDirectMessage(ctx context.Context, recipient, text string) (*DirectMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "message text cannot be empty")
	}
	recipientID, err := c.resolveUserID(ctx, recipient)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(dmEnvelope{Event: DirectMessage{
		Type: "message_create",
		MessageCreate: MessageCreate{
			Target:      MessageTarget{RecipientID: recipientID},
			MessageData: MessageData{Text: text},
		},
	}})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode direct message")
	}

	data, err := c.send(ctx, c.creds, oauth1.Request{
		Method: http.MethodPost,
		URL:    c.endpoint("direct_messages/events/new.json"),
		JSON:   body,
	})
	if err != nil {
		return nil, err
	}
	var out dmEnvelope
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	return &out.Event, nil
}

func (c *Client) resolveUserID(ctx context.Context, recipient string) (string, error) {
	if errs.ValidateID(recipient) == nil {
		return recipient, nil
	}
	if err := errs.ValidateScreenName(recipient); err != nil {
		return "", errs.New(errs.ErrCodeInvalidInput, "recipient must be a user ID or screen name: %q", recipient)
	}
	u, err := c.LoadUserInfo(ctx, recipient)
	if err != nil {
		return "", err
	}
	return u.IDStr, nil
}
