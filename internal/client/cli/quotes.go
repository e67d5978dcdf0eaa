package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
	"github.com/batyok32/shipyuusell-sub001/internal/client/repositories/handoff"
	"github.com/batyok32/shipyuusell-sub001/internal/client/store"
	"github.com/batyok32/shipyuusell-sub001/internal/common"
)

// Quote asks for a route and weight, prints the shipping options and lets
// the user pick one for create-shipment.
func (a *App) Quote(ctx context.Context) error {
	p, err := a.promptQuoteParams()
	if err != nil {
		return err
	}

	batch, err := a.thunks.CalculateQuotes(ctx, p)
	if err != nil {
		return a.failed(err, store.ErrorMessage(store.OpCalculateQuotes, err))
	}
	writeQuotes(a.out, *batch)
	if len(batch.Quotes) == 0 {
		return nil
	}

	choice, err := getSimpleText(a.reader, "Select an option number to book it (empty to skip)", a.out)
	if err != nil || choice == "" {
		return err
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(batch.Quotes) {
		fmt.Fprintf(a.out, "Invalid option %q.\n", choice)
		return nil
	}

	selected := batch.Quotes[n-1]
	a.handoff.Put(common.SelectedQuoteKey, selected)
	fmt.Fprintf(a.out, "Selected %s for %s. Run 'create-shipment' to book it.\n",
		orDefault(selected.TransportModeName, selected.TransportMode), money(selected.Total))
	return nil
}

func (a *App) promptQuoteParams() (models.QuoteParams, error) {
	var p models.QuoteParams

	origin, err := getSimpleText(a.reader, "Origin country code (e.g. US)", a.out)
	if err != nil {
		return p, err
	}
	dest, err := getSimpleText(a.reader, "Destination country code", a.out)
	if err != nil {
		return p, err
	}
	weight, err := a.promptAmount("Weight in kg")
	if err != nil {
		return p, err
	}
	value, err := a.promptAmount("Declared value in USD (optional)")
	if err != nil {
		return p, err
	}

	p.OriginCountry = strings.ToUpper(origin)
	p.DestinationCountry = strings.ToUpper(dest)
	p.Weight = weight
	p.DeclaredValue = value
	return p, nil
}

// promptAmount re-asks until the input parses as a non-negative number.
func (a *App) promptAmount(prompt string) (float64, error) {
	for {
		s, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return 0, err
		}
		v, err := ParseAmount(s)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
	}
}

// promptAddress asks for an address. country pre-fills the country when
// the quote already fixed it.
func (a *App) promptAddress(label, country string) (models.Address, error) {
	fmt.Fprintln(a.out, titleStyle.Render(label))

	var addr models.Address
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Full name", &addr.FullName},
		{"Street address", &addr.StreetAddress},
		{"City", &addr.City},
		{"State / province (optional)", &addr.StateProvince},
		{"Postal code", &addr.PostalCode},
		{"Phone (optional)", &addr.Phone},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return addr, err
		}
		*f.dst = v
	}

	addr.Country = country
	if addr.Country == "" {
		v, err := getSimpleText(a.reader, "Country code", a.out)
		if err != nil {
			return addr, err
		}
		addr.Country = strings.ToUpper(v)
	}
	return addr, nil
}

// selectedQuote returns the quote picked in the last quote run.
func (a *App) selectedQuote() (models.Quote, bool) {
	return handoff.GetAs[models.Quote](a.handoff, common.SelectedQuoteKey)
}
