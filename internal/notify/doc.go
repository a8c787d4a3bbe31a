// Package notify announces successful entries over email and SMS.
//
// The dispatcher treats delivery as a peripheral side effect of an already
// completed verification: every channel gets one attempt, failures are
// logged and swallowed, and nothing here can change or delay a published
// verification result.
package notify
