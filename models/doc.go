// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - UpdateContactRequest: name, contact, contact_method
  - AnswerCategoryRequest: vendors, skip_reason
  - UpdateAdditionalRequest: categories
  - UpdateAdditionalVendorsRequest: vendors

# Response Types

Types for JSON responses:

  - StartSurveyResponse: token, session_id, step, resumed
  - AdvanceResponse: step, finalized, already_submitted, response_id, storage
  - ImportBackupResponse: imported, message
  - CountResponse: count
  - MessageResponse: message
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - VendorCategory: one fixed service category and its known vendors
  - CategoryResponse: one answer (vendors, or skipped with a reason)
  - SurveyDraft: in-progress answer set, keyed by a client-held token
  - SurveyResponse: submitted survey, immutable once created
  - SurveySession: analytics record of one survey attempt

# Category Registry

VendorCategories holds the eight fixed categories in survey order;
AdditionalCategories lists the extra service types a respondent can request.
CategoryKey normalizes a free-typed category name into the stable map key
used for vendor lookups.
*/
package models
