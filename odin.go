// Package odin provides a CLI for browsing the OpenWrt table of supported
// hardware. It downloads the device table, extracts a brand → model →
// hardware revision catalog from it and reports on the result.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package odin

const (
	// RootURL is the origin prefixed to every relative link found in the
	// device table.
	RootURL = "https://openwrt.org"

	// DevicesURL is the page carrying the table of supported hardware.
	DevicesURL = "https://openwrt.org/toh/start"
)
