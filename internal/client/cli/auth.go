package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
	"github.com/batyok32/shipyuusell-sub001/internal/client/oauth"
	"github.com/batyok32/shipyuusell-sub001/internal/client/store"
	"github.com/batyok32/shipyuusell-sub001/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates the account. The
// backend then emails a verification code; the user is not signed in until
// they run verify and log in.
//
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	first, err := getSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return err
	}
	last, err := getSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return err
	}

	_, err = a.thunks.Register(ctx, models.Registration{
		Email:     email,
		Password:  string(password),
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		return a.failed(err, store.ErrorMessage(store.OpRegister, err))
	}

	fmt.Fprintln(a.out, successStyle.Render("Account created."))
	fmt.Fprintf(a.out, "We sent a verification code to %s. Run 'verify' to activate the account.\n", email)
	return nil
}

// Login prompts for credentials and signs in. When the backend refuses the
// login because the email is unverified, the user is pointed at verify.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.thunks.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		msg, verificationEmail := store.LoginError(err)
		_ = a.failed(err, msg)
		if verificationEmail != "" {
			fmt.Fprintf(a.out, "Check %s for a verification code, then run 'verify'.\n", verificationEmail)
		}
		return err
	}

	a.welcome(ctx, res)
	return nil
}

// Verify confirms the emailed code. An empty code asks the backend to
// send a new one.
func (a *App) Verify(ctx context.Context) error {
	auth := a.store.State().Auth
	email := auth.PendingVerification
	if email == "" && auth.User != nil {
		email = auth.User.Email
	}
	if email == "" {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	code, err := getSimpleText(a.reader, fmt.Sprintf("Verification code for %s (empty to resend)", email), a.out)
	if err != nil {
		return err
	}

	if code == "" {
		msg, err := a.api.Auth.ResendVerificationCode(ctx, email)
		if err != nil {
			return a.failed(err, describe(err, "Failed to resend verification code"))
		}
		fmt.Fprintln(a.out, orDefault(msg.Message, "A new code is on its way."))
		return nil
	}

	res, err := a.thunks.VerifyEmail(ctx, models.EmailVerification{Email: email, Code: code})
	if err != nil {
		return a.failed(err, store.ErrorMessage(store.OpVerifyEmail, err))
	}

	fmt.Fprintln(a.out, successStyle.Render("Email verified."))
	if res.HasTokens() {
		a.welcome(ctx, res)
	} else {
		fmt.Fprintln(a.out, "You can now log in.")
	}
	return nil
}

// OAuthLogin signs in through Google or Facebook. The provider page is
// opened by the user; the URL it redirects to is pasted back.
func (a *App) OAuthLogin(ctx context.Context, provider string) error {
	var (
		p   oauth.Provider
		err error
	)
	switch provider {
	case oauth.GoogleName:
		p, err = oauth.NewGoogle(a.config.GoogleClientID, oauth.DefaultRedirectURI, a.pasteCallback)
	case oauth.FacebookName:
		p, err = oauth.NewFacebook(a.config.FacebookAppID, oauth.DefaultRedirectURI, a.pasteCallback)
	default:
		err = fmt.Errorf("unknown provider %q", provider)
	}
	if err != nil {
		return a.failed(err, err.Error())
	}

	token, err := p.Token(ctx)
	if err != nil {
		return a.failed(err, oauthMessage(p.Name(), err))
	}

	var res *models.AuthResponse
	op := store.OpGoogleLogin
	if p.Name() == oauth.FacebookName {
		op = store.OpFacebookLogin
		res, err = a.thunks.FacebookLogin(ctx, token)
	} else {
		res, err = a.thunks.GoogleLogin(ctx, token)
	}
	if err != nil {
		return a.failed(err, store.ErrorMessage(op, err))
	}

	a.welcome(ctx, res)
	return nil
}

func (a *App) pasteCallback(_ context.Context, authURL string) (string, error) {
	fmt.Fprintln(a.out, "Open this address in your browser and sign in:")
	fmt.Fprintln(a.out, "  "+authURL)
	return getSimpleText(a.reader, "Paste the address you were redirected to", a.out)
}

func oauthMessage(provider string, err error) string {
	name := strings.ToUpper(provider[:1]) + provider[1:]
	switch {
	case errors.Is(err, oauth.ErrDenied):
		return name + " login was cancelled"
	case errors.Is(err, oauth.ErrNoToken):
		return name + " login failed: no access token returned"
	}
	return fmt.Sprintf("%s OAuth error: %v", name, err)
}

// Logout clears the stored tokens and any in-progress hand-off data.
func (a *App) Logout(ctx context.Context) error {
	a.handoff.Clear()
	if err := a.thunks.Logout(ctx); err != nil {
		return a.failed(err, err.Error())
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Profile refreshes and prints the signed-in user along with the warehouse
// address their parcels should be sent to.
func (a *App) Profile(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	u, err := a.thunks.FetchProfile(ctx)
	if err != nil {
		return a.failed(err, store.ErrorMessage(store.OpFetchProfile, err))
	}

	verified := warnStyle.Render("unverified")
	if u.EmailVerified {
		verified = successStyle.Render("verified")
	}
	fmt.Fprintln(a.out, titleStyle.Render(u.FullName()))
	fmt.Fprintf(a.out, "  Email:        %s (%s)\n", u.Email, verified)
	fmt.Fprintf(a.out, "  Phone:        %s\n", orDash(u.Phone))
	fmt.Fprintf(a.out, "  Warehouse ID: %s\n", orDash(u.WarehouseID))

	wh, err := a.api.Logistics.WarehouseAddress(ctx)
	if err != nil {
		a.log.Warn(ctx, "warehouse address unavailable", "err", err)
		return nil
	}
	fmt.Fprintln(a.out, mutedStyle.Render("Ship your parcels to:"))
	fmt.Fprintf(a.out, "  %s\n", formatAddress(wh.Address))
	fmt.Fprintf(a.out, "  Mark every parcel with %s\n", orDash(orDefault(u.WarehouseID, wh.WarehouseID)))
	return nil
}

// welcome greets the user after a sign-in, loading the profile when the
// response did not carry one.
func (a *App) welcome(ctx context.Context, res *models.AuthResponse) {
	user := res.User
	if user == nil {
		if u, err := a.thunks.FetchProfile(ctx); err == nil {
			user = u
		}
	}
	msg := "Welcome back!"
	if user != nil {
		msg = "Welcome, " + user.FullName() + "!"
	}
	fmt.Fprintln(a.out, successStyle.Render(msg))
}
