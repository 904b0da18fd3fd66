// Package lib collects modules that do not fit strictly into other layers:
// background job processing (Redis/Asynq) and the transactional email
// client (Resend).
package lib
