package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
	"github.com/batyok32/shipyuusell-sub001/internal/client/repositories/handoff"
	"github.com/batyok32/shipyuusell-sub001/internal/client/store"
	"github.com/batyok32/shipyuusell-sub001/internal/common"
)

var (
	errNoQuote    = errors.New("no quote selected")
	errNotPayable = errors.New("shipment is not awaiting payment")
)

func (a *App) Shipments(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	list, err := a.thunks.FetchShipments(ctx)
	if err != nil {
		return a.failed(err, store.ErrorMessage(store.OpFetchShipments, err))
	}
	writeShipments(a.out, list)
	return nil
}

// Shipment prints one shipment with its tracking history. A tracking
// failure still shows the shipment itself.
func (a *App) Shipment(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	s, err := a.thunks.FetchShipment(ctx, id)
	if err != nil {
		return a.failed(err, store.ErrorMessage(store.OpFetchShipment, err))
	}
	a.store.Dispatch(store.SetSelectedShipment{Shipment: s})

	tr, err := a.thunks.TrackShipment(ctx, id)
	if err != nil {
		a.log.Warn(ctx, "tracking unavailable", "shipment", id, "err", err)
		writeShipment(a.out, *s)
		return nil
	}
	writeTracking(a.out, *tr)
	return nil
}

// CreateShipment books the quote selected in the last quote run. The
// destination address is checked by the backend first. Quote requests the
// backend recorded are converted in place; otherwise a shipment is created
// from the quote's figures.
func (a *App) CreateShipment(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	q, ok := a.selectedQuote()
	quotes := a.store.State().Quotes
	if !ok || quotes.Request == nil {
		fmt.Fprintln(a.out, "No quote selected. Run 'quote' first.")
		return errNoQuote
	}

	origin, err := a.promptAddress("Origin address", quotes.Request.OriginCountry)
	if err != nil {
		return err
	}
	dest, err := a.promptAddress("Destination address", quotes.Request.DestinationCountry)
	if err != nil {
		return err
	}

	v, err := a.api.Logistics.ValidateAddress(ctx, dest, true)
	if err != nil {
		return a.failed(err, describe(err, "Address validation failed"))
	}
	dest = mergeAddress(dest, v.ValidatedAddress)

	var shipment *models.Shipment
	if quotes.QuoteRequestID != "" {
		res, err := a.thunks.ProceedWithQuote(ctx, models.ProceedRequest{
			QuoteRequestID:     quotes.QuoteRequestID,
			SelectedQuote:      q,
			OriginAddress:      origin,
			DestinationAddress: dest,
		})
		if err != nil {
			return a.failed(err, store.ErrorMessage(store.OpCreateShipment, err))
		}
		if res.AlreadyConverted {
			fmt.Fprintln(a.out, warnStyle.Render(orDefault(res.Message, "This quote was already booked.")))
		}
		s := res.Created()
		shipment = &s
	} else {
		shipment, err = a.thunks.CreateShipment(ctx, models.ShipmentDraft{
			SourceType:         models.SourceDirect,
			ShippingCategory:   quotes.ShippingCategory,
			ServiceLevel:       q.ServiceLevel,
			TransportMode:      q.TransportMode,
			ActualWeight:       quotes.Request.Weight,
			OriginAddress:      &origin,
			DestinationAddress: &dest,
			ShippingCost:       q.BaseRate.InexactFloat64(),
			TotalCost:          q.Total.InexactFloat64(),
		})
		if err != nil {
			return a.failed(err, store.ErrorMessage(store.OpCreateShipment, err))
		}
	}

	a.handoff.Delete(common.SelectedQuoteKey)
	a.handoff.Put(common.ShipmentDataKey, *shipment)

	fmt.Fprintln(a.out, successStyle.Render("Shipment "+orDash(shipment.ShipmentNumber)+" created."))
	if quotes.PickupRequired {
		if err := a.offerPickup(ctx, origin, quotes.Request.Weight); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.out, "Run 'pay' to check out.")
	return nil
}

// offerPickup schedules a courier pickup from origin when the user agrees.
// A failed booking is reported but does not undo the shipment.
func (a *App) offerPickup(ctx context.Context, origin models.Address, weight float64) error {
	answer, err := getSimpleText(a.reader, "This route needs a pickup to our warehouse. Schedule it now? (y/N)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, mutedStyle.Render("Skipped. Contact support to arrange the pickup later."))
		return nil
	}

	date, err := getSimpleText(a.reader, "Pickup date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	phone := origin.Phone
	if phone == "" {
		if phone, err = getSimpleText(a.reader, "Contact phone", a.out); err != nil {
			return err
		}
	}

	res, err := a.api.Support.SchedulePickup(ctx, models.PickupRequest{
		PickupAddress:    origin,
		PickupDate:       date,
		Weight:           weight,
		NumberOfPackages: 1,
		ContactName:      origin.FullName,
		ContactPhone:     phone,
	})
	if err != nil {
		_ = a.failed(err, describe(err, "Failed to schedule pickup"))
		return nil
	}
	fmt.Fprintf(a.out, "Pickup %s booked for %s %s.\n", orDash(res.PickupNumber), res.PickupDate, res.PickupTimeSlot)
	return nil
}

// mergeAddress overlays the non-empty fields of the normalised address.
func mergeAddress(entered, normalised models.Address) models.Address {
	out := entered
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&out.StreetAddress, normalised.StreetAddress},
		{&out.StreetAddress2, normalised.StreetAddress2},
		{&out.City, normalised.City},
		{&out.StateProvince, normalised.StateProvince},
		{&out.PostalCode, normalised.PostalCode},
		{&out.Country, normalised.Country},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	return out
}

// Pay opens a checkout for shipmentID, or for the shipment created last
// when it is empty. Checkout happens in the browser; the client only shows
// the address.
func (a *App) Pay(ctx context.Context, shipmentID string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	if shipmentID == "" {
		s, ok := handoff.GetAs[models.Shipment](a.handoff, common.ShipmentDataKey)
		if !ok {
			fmt.Fprintln(a.out, "Usage: pay <shipment-id>")
			return nil
		}
		shipmentID = s.ID.String()
	}

	for _, s := range a.store.State().Shipments.Shipments {
		if s.ID.String() == shipmentID && s.Status != "" && !s.Status.Payable() {
			fmt.Fprintf(a.out, "Shipment %s is %s and cannot be paid.\n", orDefault(s.ShipmentNumber, shipmentID), badge(string(s.Status)))
			return errNotPayable
		}
	}

	sess, err := a.api.Logistics.CreatePaymentSession(ctx, models.PaymentSessionRequest{ShipmentID: models.ID(shipmentID)})
	if err != nil {
		return a.failed(err, describe(err, "Failed to create payment session"))
	}
	a.handoff.Delete(common.ShipmentDataKey)

	fmt.Fprintln(a.out, "Complete the payment in your browser:")
	fmt.Fprintln(a.out, "  "+sess.CheckoutURL)
	return nil
}

// Track looks a shipment up by tracking number. It needs no session.
func (a *App) Track(ctx context.Context, trackingNumber string) error {
	r, err := a.api.Logistics.TrackByNumber(ctx, trackingNumber)
	if err != nil {
		return a.failed(err, describe(err, "Failed to track shipment"))
	}
	writeTracking(a.out, *r)
	return nil
}

func (a *App) Packages(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	list, err := a.thunks.FetchPackages(ctx)
	if err != nil {
		return a.failed(err, store.ErrorMessage(store.OpFetchPackages, err))
	}
	writePackages(a.out, list)
	return nil
}

// Dashboard loads the profile, shipments and packages together and prints
// a summary. Slices that failed are reported individually.
func (a *App) Dashboard(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	err := a.thunks.LoadDashboard(ctx)
	st := a.store.State()

	for _, msg := range []string{st.Auth.Error, st.Shipments.Error, st.Packages.Error} {
		if msg != "" {
			fmt.Fprintln(a.out, errorStyle.Render("Error: "+msg))
		}
	}

	if st.Auth.User != nil {
		fmt.Fprintln(a.out, titleStyle.Render("Hello, "+st.Auth.User.FullName()))
	}

	active, awaitingPayment := 0, 0
	for _, s := range st.Shipments.Shipments {
		if !s.Status.Final() {
			active++
		}
		if s.Status.Payable() && !s.IsPaid {
			awaitingPayment++
		}
	}
	ready := 0
	for _, p := range st.Packages.Packages {
		if p.Status == models.PackageReady {
			ready++
		}
	}

	fmt.Fprintf(a.out, "  Shipments:        %d (%d active)\n", len(st.Shipments.Shipments), active)
	fmt.Fprintf(a.out, "  Awaiting payment: %d\n", awaitingPayment)
	fmt.Fprintf(a.out, "  Packages:         %d (%d ready to ship)\n", len(st.Packages.Packages), ready)
	return err
}
