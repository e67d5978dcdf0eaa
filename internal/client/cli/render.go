package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
)

var (
	green  = lipgloss.Color("#22C55E")
	amber  = lipgloss.Color("#F59E0B")
	blue   = lipgloss.Color("#3B82F6")
	red    = lipgloss.Color("#F87171")
	gray   = lipgloss.Color("#9CA3AF")
	cyan   = lipgloss.Color("#06B6D4")
	purple = lipgloss.Color("#A855F7")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(cyan)
	mutedStyle   = lipgloss.NewStyle().Foreground(gray)
	errorStyle   = lipgloss.NewStyle().Foreground(red)
	warnStyle    = lipgloss.NewStyle().Foreground(amber)
	successStyle = lipgloss.NewStyle().Foreground(green)
)

// statusColor groups the backend statuses into a handful of colours.
func statusColor(status string) lipgloss.Color {
	switch status {
	case "delivered", "completed", "payment_received", "received", "ready", "ready_to_ship", "approved":
		return green
	case "in_transit", "dispatched", "out_for_delivery", "shipped", "customs_clearance",
		"in_transit_to_warehouse", "purchasing", "purchased":
		return blue
	case "quote_requested", "quote_approved", "quoted", "payment_pending", "pending",
		"label_generating", "processing", "inspected":
		return amber
	case "cancelled", "returned", "rejected", "expired":
		return red
	case "received_at_warehouse":
		return purple
	}
	return gray
}

// badge renders a status as a coloured label with underscores spaced out.
func badge(status string) string {
	label := strings.ReplaceAll(status, "_", " ")
	if label == "" {
		label = "unknown"
	}
	return lipgloss.NewStyle().Foreground(statusColor(status)).Render(label)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatAddress(a models.Address) string {
	var parts []string
	for _, s := range []string{a.FullName, a.StreetAddress, a.StreetAddress2, a.City, a.StateProvince, a.PostalCode, a.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return orDash(strings.Join(parts, ", "))
}

// writeQuotes prints a numbered quote table, marking the cheapest option.
func writeQuotes(w io.Writer, batch models.QuoteBatch) {
	if len(batch.Quotes) == 0 {
		fmt.Fprintln(w, "No shipping options available for this route.")
		return
	}
	cheapest, _ := batch.Cheapest()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tMODE\tCARRIER\tTRANSIT\tTOTAL\t")
	for i, q := range batch.Quotes {
		mode := q.TransportModeName
		if mode == "" {
			mode = q.TransportMode
		}
		mark := ""
		if q.Total.Equal(cheapest.Total) {
			mark = successStyle.Render("cheapest")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, mode, orDash(q.Carrier), q.TransitDays, money(q.Total), mark)
	}
	_ = tw.Flush()

	if batch.PickupRequired {
		fmt.Fprintln(w, mutedStyle.Render("A pickup to the warehouse is required for this route."))
	}
	if batch.IsLocalShipping {
		fmt.Fprintln(w, mutedStyle.Render("Local shipping: origin and destination are in the same country."))
	}
}

func writeShipments(w io.Writer, shipments []models.Shipment) {
	if len(shipments) == 0 {
		fmt.Fprintln(w, "No shipments yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tSTATUS\tDESTINATION\tTOTAL\tPAID")
	for _, s := range shipments {
		paid := "no"
		if s.IsPaid {
			paid = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, orDash(s.ShipmentNumber), badge(string(s.Status)),
			orDash(s.DestinationAddress.Country), money(s.TotalCost), paid)
	}
	_ = tw.Flush()
}

func writeShipment(w io.Writer, s models.Shipment) {
	fmt.Fprintln(w, titleStyle.Render("Shipment "+orDash(s.ShipmentNumber)), badge(string(s.Status)))
	fmt.Fprintf(w, "  Tracking:    %s\n", orDash(s.TrackingNumber))
	fmt.Fprintf(w, "  Carrier:     %s\n", orDash(s.Carrier))
	fmt.Fprintf(w, "  From:        %s\n", formatAddress(s.OriginAddress))
	fmt.Fprintf(w, "  To:          %s\n", formatAddress(s.DestinationAddress))
	fmt.Fprintf(w, "  Weight:      %s kg\n", s.ActualWeight.String())
	fmt.Fprintf(w, "  Total:       %s\n", money(s.TotalCost))
	if s.EstimatedDelivery != nil {
		fmt.Fprintf(w, "  Estimated:   %s\n", s.EstimatedDelivery.Format("2006-01-02"))
	}
	if s.Status.Payable() && !s.IsPaid {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("  Awaiting payment: run 'pay %s'", s.ID)))
	}
}

func writeTracking(w io.Writer, r models.TrackingResult) {
	writeShipment(w, r.Shipment)

	updates := r.TrackingUpdates
	if len(updates) == 0 {
		updates = r.Shipment.TrackingUpdates
	}
	if len(updates) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  No tracking events yet."))
		return
	}
	if latest, ok := r.Latest(); ok {
		fmt.Fprintf(w, "  Latest:      %s %s\n", badge(latest.Status), orDash(latest.Location))
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  TIME\tSTATUS\tLOCATION")
	for _, u := range updates {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", u.Timestamp.Format("2006-01-02 15:04"), badge(u.Status), orDash(u.Location))
	}
	_ = tw.Flush()
}

func writePackages(w io.Writer, packages []models.Package) {
	if len(packages) == 0 {
		fmt.Fprintln(w, "No packages at the warehouse yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREFERENCE\tSTATUS\tWEIGHT\tDESCRIPTION")
	for _, p := range packages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s kg\t%s\n",
			p.ID, orDash(p.ReferenceNumber), badge(string(p.Status)), p.Weight.String(), orDash(p.Description))
	}
	_ = tw.Flush()
}

func writeBuying(w io.Writer, entries []models.DashboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No buy-and-ship requests yet. Run 'buy' to create one.")
		return
	}
	for _, e := range entries {
		r := e.BuyingRequest
		name := r.ProductName
		if name == "" {
			name = r.ProductDescription
		}
		fmt.Fprintln(w, titleStyle.Render(orDash(r.ReferenceNumber)), badge(string(r.Status)), name)

		quotes := e.Quotes
		if len(quotes) == 0 {
			quotes = r.Quotes
		}
		for _, q := range quotes {
			fmt.Fprintf(w, "  quote %s: %s via %s, %s\n",
				q.ID, money(q.TotalCost), orDash(q.ShippingServiceName), badge(string(q.Status)))
		}
	}
}

func writeCountries(w io.Writer, countries []models.Country) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME")
	for _, c := range countries {
		fmt.Fprintf(tw, "%s\t%s\n", c.Code, c.Name)
	}
	_ = tw.Flush()
}
