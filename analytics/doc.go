// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package analytics computes the admin dashboard aggregates.

All functions here are pure: they take the full session log and response
collection and return fresh aggregates. The dashboard recomputes from
scratch on every change notification rather than patching state, which
trades a little work for immunity to ordering bugs.

# Funnel

Compute produces the funnel view: starts, completions, abandonments,
conversion rate, per-category drop-off, average completion minutes, and
the email/phone contact split.

# Supplementary Views

  - CategoryInsights: per fixed category, completed/skipped/skip-reason
    counts plus vendor tallies (free-typed "Other: " entries split out)
  - AdditionalCategoryStats: demand for ad-hoc categories, most
    requested first
  - TopVendors: most-selected vendors overall
*/
package analytics
