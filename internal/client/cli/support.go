package cli

import (
	"context"
	"fmt"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
)

// Contact sends a message to customer support. Signed-in users are not
// asked for their name and email again.
func (a *App) Contact(ctx context.Context) error {
	var m models.ContactMessage
	if u := a.store.State().Auth.User; u != nil {
		m.Name, m.Email = u.FullName(), u.Email
	}

	var err error
	if m.Email == "" {
		if m.Name, err = getSimpleText(a.reader, "Your name", a.out); err != nil {
			return err
		}
		if m.Email, err = getSimpleText(a.reader, "Your email", a.out); err != nil {
			return err
		}
	}
	if m.Subject, err = getSimpleText(a.reader, "Subject", a.out); err != nil {
		return err
	}
	if m.Message, err = GetMultiline(a.reader, "Message", a.out); err != nil {
		return err
	}

	res, err := a.api.Support.Contact(ctx, m)
	if err != nil {
		return a.failed(err, describe(err, "Failed to send message"))
	}
	fmt.Fprintln(a.out, successStyle.Render(orDefault(res.Message, "Message sent. We will get back to you soon.")))
	return nil
}
