// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package models

import (
	"regexp"
	"strings"
)

// VendorCategory is one fixed service type the survey asks about.
type VendorCategory struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Vendors     []string `json:"vendors"`
}

// VendorCategories is the fixed category registry. The survey flow asks the
// first SurveyedCategories of these; the last one is still accepted on
// import and exported in CSV.
var VendorCategories = []VendorCategory{
	{
		ID:          "pool_service",
		Title:       "Pool Service",
		Description: "Who keeps your pool sparkling?",
		Vendors: []string{
			"Aqua Blue Pool Service",
			"Crystal Clear Pools",
			"Sunshine Pool Care",
			"Paradise Pool Maintenance",
			"Emerald Waters Pools",
		},
	},
	{
		ID:          "hvac",
		Title:       "HVAC / Air Conditioning",
		Description: "Who keeps you cool in summer?",
		Vendors: []string{
			"Cool Breeze AC & Heating",
			"Precision Air Systems",
			"Climate Control Pros",
			"Arctic Air Solutions",
			"Comfort Zone HVAC",
		},
	},
	{
		ID:          "landscaping",
		Title:       "Landscaping / Lawn Care",
		Description: "Who maintains your yard?",
		Vendors: []string{
			"Green Thumb Landscaping",
			"Premier Lawn Service",
			"Tropical Gardens Care",
			"Elite Yard Maintenance",
			"Perfect Greens Landscaping",
		},
	},
	{
		ID:          "pest_control",
		Title:       "Pest Control",
		Description: "Who keeps the bugs away?",
		Vendors: []string{
			"Guardian Pest Control",
			"Bug-Free Solutions",
			"EcoSafe Pest Services",
			"Shield Pest Management",
			"ZeroBug Exterminators",
		},
	},
	{
		ID:          "electrician",
		Title:       "Electrician",
		Description: "Who handles your electrical work?",
		Vendors: []string{
			"Bright Electric Services",
			"PowerUp Electrical",
			"Reliable Electric Pros",
			"Spark Electrical Solutions",
			"Voltage Masters",
		},
	},
	{
		ID:          "plumber",
		Title:       "Plumber",
		Description: "Who fixes your plumbing?",
		Vendors: []string{
			"FastFlow Plumbing",
			"Crystal Plumbing Services",
			"DrainMaster Plumbers",
			"Aqua Works Plumbing",
			"PipeWorks Pros",
		},
	},
	{
		ID:          "handyman",
		Title:       "Handyman",
		Description: "Who does your home repairs?",
		Vendors: []string{
			"Fix-It Frank Services",
			"HandyPro Solutions",
			"Mr. Fix-It Home Repair",
			"All-Around Handyman",
			"The Repair Guy",
		},
	},
	{
		ID:          "cleaning",
		Title:       "Cleaning Service",
		Description: "Who cleans your home?",
		Vendors: []string{
			"Sparkle Clean Co",
			"Pristine Home Cleaning",
			"Fresh Start Cleaners",
			"Spotless Solutions",
			"Shine Bright Cleaning",
		},
	},
}

// SurveyedCategories is how many registry entries get their own question
// step. The flow is fixed at 10 steps total, which leaves room for seven
// category questions.
const SurveyedCategories = 7

// AdditionalCategories are the service types offered on the
// additional-category selection step.
var AdditionalCategories = []string{
	"Roofing",
	"Painting / Painters",
	"Window Cleaning",
	"Pressure Washing",
	"Gutter Cleaning",
	"Tree Service / Arborist",
	"Locksmith",
	"Garage Door Repair",
	"Flooring Installation",
	"Carpet Cleaning",
	"Home Security Systems",
	"Solar Panel Installation",
	"Appliance Repair",
	"Moving Company",
}

// CategoryByID looks up a fixed category by its id.
func CategoryByID(id string) (VendorCategory, bool) {
	for _, c := range VendorCategories {
		if c.ID == id {
			return c, true
		}
	}
	return VendorCategory{}, false
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonKeyChars   = regexp.MustCompile(`[^a-z0-9_]`)
)

// CategoryKey normalizes a free-text category name into the key used for
// additional-vendor maps: lowercase, whitespace runs become underscores,
// everything else non-alphanumeric is stripped. Both the producer (survey
// flow) and all consumers (CSV export, analytics, notifications) must use
// this same function; drift between them silently loses data.
func CategoryKey(name string) string {
	k := strings.ToLower(name)
	k = whitespaceRun.ReplaceAllString(k, "_")
	return nonKeyChars.ReplaceAllString(k, "")
}
