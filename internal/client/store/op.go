package store

import "strings"

// Slice names, also the prefix of every Op.
const (
	SliceAuth      = "auth"
	SlicePackages  = "packages"
	SliceShipments = "shipments"
	SliceQuotes    = "quotes"
)

// Op names an asynchronous operation, "<slice>/<name>".
type Op string

const (
	OpLogin         Op = "auth/login"
	OpRegister      Op = "auth/register"
	OpVerifyEmail   Op = "auth/verifyEmail"
	OpFetchProfile  Op = "auth/fetchProfile"
	OpGoogleLogin   Op = "auth/googleLogin"
	OpFacebookLogin Op = "auth/facebookLogin"

	OpFetchPackages Op = "packages/fetchAll"
	OpFetchPackage  Op = "packages/fetchById"
	OpCreatePackage Op = "packages/create"

	OpFetchShipments Op = "shipments/fetchAll"
	OpFetchShipment  Op = "shipments/fetchById"
	OpTrackShipment  Op = "shipments/track"
	OpCreateShipment Op = "shipments/create"

	OpCalculateQuotes Op = "quotes/calculate"
)

// Slice returns the slice the operation belongs to.
func (o Op) Slice() string {
	s, _, _ := strings.Cut(string(o), "/")
	return s
}

// fallbackMessages is what a rejected operation reports when the server
// gave no usable message.
var fallbackMessages = map[Op]string{
	OpLogin:         "Login failed. Please check your credentials.",
	OpRegister:      "Registration failed",
	OpVerifyEmail:   "Verification failed",
	OpFetchProfile:  "Failed to fetch profile",
	OpGoogleLogin:   "Google login failed",
	OpFacebookLogin: "Facebook login failed",

	OpFetchPackages: "Failed to fetch packages",
	OpFetchPackage:  "Failed to fetch package",
	OpCreatePackage: "Failed to create package",

	OpFetchShipments: "Failed to fetch shipments",
	OpFetchShipment:  "Failed to fetch shipment",
	OpTrackShipment:  "Failed to track shipment",
	OpCreateShipment: "Failed to create shipment",

	OpCalculateQuotes: "Failed to calculate quotes",
}

func (o Op) fallback() string {
	if m, ok := fallbackMessages[o]; ok {
		return m
	}
	return "Request failed"
}
