package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Verify(ctx context.Context) error
	Logout(ctx context.Context) error
	OAuthLogin(ctx context.Context, provider string) error
	Profile(ctx context.Context) error
	Quote(ctx context.Context) error
	Shipments(ctx context.Context) error
	Shipment(ctx context.Context, id string) error
	CreateShipment(ctx context.Context) error
	Pay(ctx context.Context, shipmentID string) error
	Packages(ctx context.Context) error
	Track(ctx context.Context, trackingNumber string) error
	Buying(ctx context.Context) error
	Buy(ctx context.Context) error
	ApproveQuote(ctx context.Context, quoteID string) error
	Dashboard(ctx context.Context) error
	Contact(ctx context.Context) error
}

const (
	guestHelp  = "Available commands: register, login, verify, google, facebook, quote, track <number>, contact, exit"
	memberHelp = "Available commands: profile, dashboard, quote, create-shipment, pay [id], shipments, shipment <id>, " +
		"track <number>, packages, buying, buy, approve-quote <id>, contact, logout, exit"
)

// memberOnly lists the commands that need a session.
var memberOnly = map[string]bool{
	"profile":         true,
	"dashboard":       true,
	"shipments":       true,
	"shipment":        true,
	"create-shipment": true,
	"pay":             true,
	"packages":        true,
	"buying":          true,
	"buy":             true,
	"approve-quote":   true,
}

// runREPL starts a simple read–eval–print loop for the YuuSell CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as arguments, and dispatches to methods on 'a'. Unknown commands
// are reported back to the user. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// The same reader is shared with the interactive prompts, so commands that
// ask follow-up questions consume the following lines.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("yuusell %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if memberOnly[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first (login, google or facebook).")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(memberHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "google", "facebook":
			_ = a.OAuthLogin(ctx, cmd)

		case "logout":
			_ = a.Logout(ctx)

		case "profile", "whoami":
			_ = a.Profile(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "quote":
			_ = a.Quote(ctx)

		case "shipments":
			_ = a.Shipments(ctx)

		case "shipment":
			if len(args) == 0 {
				printlnFn("Usage: shipment <id>")
				continue
			}
			_ = a.Shipment(ctx, args[0])

		case "create-shipment":
			_ = a.CreateShipment(ctx)

		case "pay":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			_ = a.Pay(ctx, id)

		case "packages":
			_ = a.Packages(ctx)

		case "track":
			if len(args) == 0 {
				printlnFn("Usage: track <tracking-number>")
				continue
			}
			_ = a.Track(ctx, args[0])

		case "buying":
			_ = a.Buying(ctx)

		case "buy":
			_ = a.Buy(ctx)

		case "approve-quote":
			if len(args) == 0 {
				printlnFn("Usage: approve-quote <quote-id>")
				continue
			}
			_ = a.ApproveQuote(ctx, args[0])

		case "contact":
			_ = a.Contact(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
