package cli

import (
	"context"
	"fmt"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
)

// Buying lists the user's buy-and-ship requests with their agent quotes.
func (a *App) Buying(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	entries, err := a.api.Buying.Dashboard(ctx)
	if err != nil {
		return a.failed(err, describe(err, "Failed to load buying requests"))
	}
	writeBuying(a.out, entries)
	return nil
}

// Buy creates a buy-and-ship request. An agent quotes it later; approve
// the quote with approve-quote.
func (a *App) Buy(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	productURL, err := getSimpleText(a.reader, "Product link (optional)", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Describe the product (size, colour, quantity)", a.out)
	if err != nil {
		return err
	}
	budget, err := a.promptAmount("Maximum budget in USD (optional)")
	if err != nil {
		return err
	}
	addr, err := a.promptAddress("Ship to", "")
	if err != nil {
		return err
	}

	req, err := a.api.Buying.CreateRequest(ctx, models.BuyingDraft{
		ProductURL:         productURL,
		ProductDescription: description,
		MaxBudget:          budget,
		ShippingAddress:    addr,
	})
	if err != nil {
		return a.failed(err, describe(err, "Failed to create buying request"))
	}

	fmt.Fprintln(a.out, successStyle.Render("Request "+orDash(req.ReferenceNumber)+" submitted."), badge(string(req.Status)))
	fmt.Fprintln(a.out, "An agent will quote it shortly. Check progress with 'buying'.")
	return nil
}

// ApproveQuote accepts an agent quote and shows the checkout address.
func (a *App) ApproveQuote(ctx context.Context, quoteID string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	res, err := a.api.Buying.ApproveQuote(ctx, quoteID)
	if err != nil {
		return a.failed(err, describe(err, "Failed to approve quote"))
	}

	fmt.Fprintf(a.out, "Quote %s approved: %s.\n", orDefault(res.Quote.ID.String(), quoteID), money(res.Quote.TotalCost))
	if res.CheckoutURL != "" {
		fmt.Fprintln(a.out, "Complete the payment in your browser:")
		fmt.Fprintln(a.out, "  "+res.CheckoutURL)
	}
	return nil
}
