// Package columnsettings drives a column's display-settings session: it looks
// up the column's abstract type, seeds a form from the persisted display
// options, hands the form to a renderer, and converts the submitted values back
// into display options ready to persist.
//
// Sessions that end with an error, including an aborted prompt, never reach
// the determine transform, so the previously stored options stay untouched.
package columnsettings
