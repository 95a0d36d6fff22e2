// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package csvexport serializes the response collection into the two flat
reports the admin dashboard offers for download.

ResponsesCSV is the main report: one row per response with per-category
vendor and skip-reason columns. AdditionalCategoriesCSV is the demand
report: request counts per ad-hoc category, most requested first.

Fields containing commas, quotes, or newlines get standard CSV quoting
(encoding/csv); fields whose first non-whitespace character is = + - or @
are prefixed with an apostrophe so opening the file in a spreadsheet
cannot execute a planted formula.
*/
package csvexport
