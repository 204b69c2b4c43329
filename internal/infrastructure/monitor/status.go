package monitor

import "time"

type Status struct {
	PostgreSQL  bool      `json:"postgresql"`
	Redis       bool      `json:"redis"`
	Outbox      bool      `json:"outbox"`
	PendingMail int       `json:"pending_mail"`
	LastCheck   time.Time `json:"last_check"`
}
