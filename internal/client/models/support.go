package models

// PickupRequest asks for a courier pickup to the warehouse.
type PickupRequest struct {
	PickupAddress       Address     `json:"pickup_address"`
	PickupDate          string      `json:"pickup_date"`
	PickupTimeSlot      string      `json:"pickup_time_slot,omitempty"`
	Weight              float64     `json:"weight"`
	Dimensions          *Dimensions `json:"dimensions,omitempty"`
	NumberOfPackages    int         `json:"number_of_packages,omitempty"`
	ContactName         string      `json:"contact_name"`
	ContactPhone        string      `json:"contact_phone"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
}

// Missing returns the names of required fields that are unset.
func (p PickupRequest) Missing() []string {
	var missing []string
	if p.PickupAddress == (Address{}) {
		missing = append(missing, "pickup_address")
	}
	if p.PickupDate == "" {
		missing = append(missing, "pickup_date")
	}
	if p.Weight <= 0 {
		missing = append(missing, "weight")
	}
	if p.ContactName == "" {
		missing = append(missing, "contact_name")
	}
	if p.ContactPhone == "" {
		missing = append(missing, "contact_phone")
	}
	return missing
}

// PickupResult acknowledges a scheduled pickup.
type PickupResult struct {
	PickupID       ID     `json:"pickup_id"`
	PickupNumber   string `json:"pickup_number"`
	PickupDate     string `json:"pickup_date"`
	PickupTimeSlot string `json:"pickup_time_slot"`
	Status         string `json:"status"`
}

// ContactMessage is the public contact form body.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
