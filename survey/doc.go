// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package survey implements the step flow controller: a linear state machine
of 10 fixed steps driving one survey attempt.

# Steps

	 1      contact info
	 2-8    category questions (the first seven fixed categories)
	 9      additional-category selection
	10      consolidated free-text vendor collection

# Transitions

Flow.Advance moves forward one step; at step 10 it finalizes instead
(persist response, complete session, fire notification) and is idempotent
thereafter. Flow.Retreat moves back one step and is a no-op at step 1.
Both persist the draft so a page reload restores the exact position.

The flow holds no state; the draft passed in is the single source of
truth, injected explicitly rather than read from ambient storage.

# Draft Edits

SetContact, AnswerCategory, SetAdditionalCategories, and
SetAdditionalVendors validate and apply the per-step mutations. Category
answers enforce the skip invariants (a skipped answer has a reason and no
vendors); additional categories are deduplicated by normalized key at
input time, so two names that collapse to the same key cannot both be
requested.

# Rendering

ViewFor derives the current step's render data purely from (step, draft),
pre-filling previously entered values on re-entry.
*/
package survey
