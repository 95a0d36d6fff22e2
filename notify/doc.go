// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package notify emails a plain-text summary of each new submission through
the Resend API.

Delivery is strictly best-effort: Notify swallows every failure after
logging it, never retries, and never blocks a submission. Without a
configured API key and recipients the client is disabled and Notify is a
no-op.

Send is the error-returning variant used by tests and anything that wants
the result.
*/
package notify
