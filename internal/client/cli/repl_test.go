package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeExec) isLoggedIn() bool                     { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error       { return f.record("register") }
func (f *fakeExec) Verify(context.Context) error         { return f.record("verify") }
func (f *fakeExec) Profile(context.Context) error        { return f.record("profile") }
func (f *fakeExec) Quote(context.Context) error          { return f.record("quote") }
func (f *fakeExec) Shipments(context.Context) error      { return f.record("shipments") }
func (f *fakeExec) CreateShipment(context.Context) error { return f.record("create-shipment") }
func (f *fakeExec) Packages(context.Context) error       { return f.record("packages") }
func (f *fakeExec) Buying(context.Context) error         { return f.record("buying") }
func (f *fakeExec) Buy(context.Context) error            { return f.record("buy") }
func (f *fakeExec) Dashboard(context.Context) error      { return f.record("dashboard") }
func (f *fakeExec) Contact(context.Context) error        { return f.record("contact") }

func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}

func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) OAuthLogin(_ context.Context, provider string) error {
	f.loggedIn = true
	return f.record("oauth:" + provider)
}

func (f *fakeExec) Shipment(_ context.Context, id string) error {
	return f.record("shipment:" + id)
}

func (f *fakeExec) Pay(_ context.Context, id string) error {
	return f.record("pay:" + id)
}

func (f *fakeExec) Track(_ context.Context, number string) error {
	return f.record("track:" + number)
}

func (f *fakeExec) ApproveQuote(_ context.Context, id string) error {
	return f.record("approve-quote:" + id)
}

// capturePrintln replaces printlnFn and returns everything printed.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := rdr(strings.Join([]string{
		"help",
		"login",
		"help",
		"quote",
		"create-shipment",
		"pay",
		"shipments",
		"shipment 42",
		"track ys123",
		"packages",
		"buying",
		"buy",
		"approve-quote 9",
		"dashboard",
		"whoami",
		"foobar",
		"logout",
		"exit",
		"shipments",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, input)

	want := []string{
		"login", "quote", "create-shipment", "pay:", "shipments", "shipment:42",
		"track:ys123", "packages", "buying", "buy", "approve-quote:9", "dashboard",
		"profile", "logout",
	}
	assert.Equal(t, want, exec.calls)
}

func TestRunREPL_GuestCannotRunMemberCommands(t *testing.T) {
	lines := capturePrintln(t)

	input := rdr("shipments\npay 5\nquote\ntrack T1\ncontact\nquit\n")
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(guest)" }, input)

	assert.Equal(t, []string{"quote", "track:T1", "contact"}, exec.calls)
	assert.Contains(t, *lines, "Please log in first (login, google or facebook).")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	lines := capturePrintln(t)

	input := rdr("shipment\ntrack\napprove-quote\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, input)

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: shipment <id>")
	assert.Contains(t, *lines, "Usage: track <tracking-number>")
	assert.Contains(t, *lines, "Usage: approve-quote <quote-id>")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, rdr("help\nexit\n"))
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, rdr("help\nexit\n"))

	assert.Contains(t, *lines, guestHelp)
	assert.Contains(t, *lines, memberHelp)
}

func TestRunREPL_OAuthAndPromptStatus(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(guest)" }, rdr("google\nfacebook\nverify\nregister"))

	assert.Equal(t, []string{"oauth:google", "oauth:facebook", "verify", "register"}, exec.calls)
	assert.Equal(t, "yuusell (guest) > ", (*lines)[0])
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	silencePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("login\n"))
	assert.Empty(t, exec.calls)
}
