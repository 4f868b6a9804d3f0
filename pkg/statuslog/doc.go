// Package statuslog writes line-oriented status files for test harnesses.
//
// Opening a status log deletes any existing file at the path. Each message is
// appended as one line. Write failures are reported to the operational
// logger and never returned, so a broken status file cannot interrupt the
// run it is describing.
package statuslog
